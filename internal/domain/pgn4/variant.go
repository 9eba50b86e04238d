package pgn4

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Variant errors
var (
	ErrRepeatedTag    = errors.New("variant tag appears more than once")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownRule    = errors.New("unknown rule variant")
	ErrBadRule        = errors.New("rule variant is not key=value")
	ErrBadRuleValue   = errors.New("rule variant value is not a small integer")
	ErrBadTeammate    = errors.New("teammate must be 1, 2 or 3")
)

// Seat is one of the four players, in turn order. SeatNone marks "no teammate".
type Seat int

const (
	SeatNone Seat = iota
	Red
	Blue
	Yellow
	Green
)

func (s Seat) String() string {
	switch s {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	}
	return "None"
}

// Variant is the rule set a game was played under, read from its header tags.
// StartFen4 is kept verbatim; decoding the board is left to the caller.
type Variant struct {
	Mode        string
	RedTeammate Seat
	StartFen4   string

	KingOfTheHill     bool
	Antichess         bool
	DeadWall          bool
	EnPassant         bool
	CaptureTheKing    bool
	PromoteTo         []rune
	PawnPromotionRank int

	DeadKingWalking bool
	Takeover        bool
	PlayForMate     bool
	OppX            int
	PointsForMate   int
}

// TeamsVariant returns the defaults for a two versus two game.
func TeamsVariant() Variant {
	return Variant{
		Mode:              "Teams",
		RedTeammate:       Yellow,
		PromoteTo:         []rune{'Q', 'R', 'B', 'N'},
		PawnPromotionRank: 11,
	}
}

// FFAVariant returns the defaults for a free for all game.
func FFAVariant() Variant {
	return Variant{
		Mode:              "FFA",
		PromoteTo:         []rune{'D'},
		PawnPromotionRank: 8,
		OppX:              1,
		PointsForMate:     20,
	}
}

// Variant reads the Variant, RuleVariants and StartFen4 tags.
func (p *PGN4) Variant() (Variant, error) {
	seen := make(map[string]string, 3)
	for _, tag := range p.Tags {
		switch tag.Name {
		case "Variant", "RuleVariants", "StartFen4":
			if _, ok := seen[tag.Name]; ok {
				return Variant{}, fmt.Errorf("%w: %s", ErrRepeatedTag, tag.Name)
			}
			seen[tag.Name] = tag.Value
		}
	}

	var v Variant
	switch mode := seen["Variant"]; mode {
	case "Solo", "FFA":
		v = FFAVariant()
	case "Teams":
		v = TeamsVariant()
	default:
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, mode)
	}
	v.StartFen4 = seen["StartFen4"]

	for _, rule := range strings.Fields(seen["RuleVariants"]) {
		if err := v.applyRule(rule); err != nil {
			return Variant{}, err
		}
	}
	return v, nil
}

func (v *Variant) applyRule(rule string) error {
	if key, value, ok := strings.Cut(rule, "="); ok {
		return v.applyKeyedRule(key, value)
	}
	if strings.HasSuffix(rule, "check") {
		// n-check games need no flag here
		return nil
	}

	switch rule {
	case "EnPassant":
		v.EnPassant = true
	case "KotH":
		v.KingOfTheHill = true
	case "DeadWall":
		v.DeadWall = true
	case "CaptureTheKing":
		v.CaptureTheKing = true
	case "Antichess":
		v.Antichess = true
	case "DeadKingWalking":
		v.DeadKingWalking = true
	case "Play-4-Mate":
		v.PlayForMate = true
	case "Takeover":
		v.Takeover = true
	case "Anonymous", "Ghostboard", "SpectatorChat", "Diplomacy", "Blindfold":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}
	return nil
}

func (v *Variant) applyKeyedRule(key, value string) error {
	if strings.Contains(value, "=") {
		return fmt.Errorf("%w: %s=%s", ErrBadRule, key, value)
	}
	switch key {
	case "PromoteTo":
		v.PromoteTo = []rune(value)
		return nil
	case "Chess960":
		return nil
	}

	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return fmt.Errorf("%w: %s=%s", ErrBadRuleValue, key, value)
	}
	switch key {
	case "PointsForMate":
		v.PointsForMate = int(n)
	case "Prom":
		v.PawnPromotionRank = int(n)
	case "OppX":
		v.OppX = int(n)
	case "Teammate":
		switch n {
		case 1:
			v.RedTeammate = Green
		case 2:
			v.RedTeammate = Yellow
		case 3:
			v.RedTeammate = Blue
		default:
			return fmt.Errorf("%w: got %d", ErrBadTeammate, n)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRule, key)
	}
	return nil
}
