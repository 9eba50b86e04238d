package pgn4

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxChecks = 4
	// a fourth simultaneous mate ends the game, so three is the most a move can carry
	maxMates = 3
)

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// ParseBasicMove reads a piece move such as "Nn10-l9", "h2-h3+", "Bj13xRk14" or "δh7-g8=E+".
func ParseBasicMove(s string) (BasicMove, error) {
	first, size := utf8.DecodeRuneInString(s)
	if s == "" || first == utf8.RuneError {
		return BasicMove{}, fmt.Errorf("%w: empty move", ErrMalformedMove)
	}

	var b BasicMove
	pieceless := s
	if isLower(first) {
		b.Piece = 'P'
	} else {
		b.Piece = first
		pieceless = s[size:]
	}

	mateless := strings.TrimRight(pieceless, "#")
	checkless := strings.TrimRight(mateless, "+")
	b.Mates = len(pieceless) - len(mateless)
	b.Checks = len(mateless) - len(checkless)
	if b.Mates > maxMates || b.Checks > maxChecks {
		return BasicMove{}, fmt.Errorf("%w: %d checks and %d mates in %q", ErrMalformedMove, b.Checks, b.Mates, s)
	}

	squares := checkless
	if eq := strings.IndexByte(checkless, '='); eq >= 0 {
		promo := checkless[eq+1:]
		r, n := utf8.DecodeRuneInString(promo)
		if promo == "" || r == utf8.RuneError || n != len(promo) {
			return BasicMove{}, fmt.Errorf("%w: promotion in %q", ErrMalformedMove, s)
		}
		b.Promotion = r
		squares = checkless[:eq]
	}

	sep := strings.IndexByte(squares, '-')
	if sep < 0 {
		sep = strings.IndexByte(squares, 'x')
	}
	if sep < 0 {
		return BasicMove{}, fmt.Errorf("%w: no separator in %q", ErrMalformedMove, s)
	}

	from, err := ParsePosition(squares[:sep])
	if err != nil {
		return BasicMove{}, fmt.Errorf("unable to parse basic move %q: %w", s, err)
	}
	b.From = from

	right := squares[sep+1:]
	if squares[sep] == 'x' {
		r, n := utf8.DecodeRuneInString(right)
		if right == "" || r == utf8.RuneError {
			return BasicMove{}, fmt.Errorf("%w: missing capture target in %q", ErrMalformedMove, s)
		}
		if isLower(r) {
			b.Captured = 'P'
		} else {
			b.Captured = r
			right = right[n:]
		}
	}

	to, err := ParsePosition(right)
	if err != nil {
		return BasicMove{}, fmt.Errorf("unable to parse basic move %q: %w", s, err)
	}
	b.To = to
	return b, nil
}

// ParseMove reads any single move. Suffixes naming a separate modifier are not split
// off here; see ParseQuarterTurn.
func ParseMove(s string) (Move, error) {
	switch s {
	case "C":
		return SpecialMove(Claim), nil
	case "#":
		return SpecialMove(Checkmate), nil
	case "S":
		return SpecialMove(Stalemate), nil
	case "T":
		return SpecialMove(Timeout), nil
	case "R":
		return SpecialMove(Resign), nil
	case "T#":
		return SpecialMove(TimeoutMate), nil
	case "R#":
		return SpecialMove(ResignMate), nil
	}

	if strings.HasPrefix(s, "O-O") {
		mateless := strings.TrimRight(s, "#")
		mates := len(s) - len(mateless)
		if mates > maxMates {
			return Move{}, fmt.Errorf("%w: %q", ErrCastle, s)
		}
		switch mateless {
		case "O-O-O":
			return CastleMove(true, mates), nil
		case "O-O":
			return CastleMove(false, mates), nil
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrCastle, s)
		}
	}

	if len(s) > 2 && !escapedSuffix(s) {
		last := s[len(s)-1]
		if last == 'R' || last == 'T' {
			b, err := ParseBasicMove(s[:len(s)-1])
			if err == nil {
				if last == 'R' {
					return Move{Kind: ResignMove, Basic: b}, nil
				}
				return Move{Kind: TimeoutMove, Basic: b}, nil
			}
		}
	}

	b, err := ParseBasicMove(s)
	if err != nil {
		return Move{}, err
	}
	return NormalMove(b), nil
}

// escapedSuffix reports whether the last byte of s is a promotion letter ("=R").
func escapedSuffix(s string) bool {
	return len(s) >= 2 && s[len(s)-2] == '='
}

func (b BasicMove) String() string {
	var sb strings.Builder
	b.write(&sb)
	return sb.String()
}

func (b BasicMove) write(sb *strings.Builder) {
	if b.Piece != 'P' {
		sb.WriteRune(b.Piece)
	}
	sb.WriteString(b.From.String())
	if b.Captured != 0 {
		sb.WriteByte('x')
		if b.Captured != 'P' {
			sb.WriteRune(b.Captured)
		}
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(b.To.String())
	if b.Promotion != 0 {
		sb.WriteByte('=')
		sb.WriteRune(b.Promotion)
	}
	sb.WriteString(strings.Repeat("+", b.Checks))
	sb.WriteString(strings.Repeat("#", b.Mates))
}

func (m Move) String() string {
	var sb strings.Builder
	m.write(&sb)
	return sb.String()
}

func (m Move) write(sb *strings.Builder) {
	switch m.Kind {
	case Claim:
		sb.WriteString("C")
	case Checkmate:
		sb.WriteString("#")
	case Stalemate:
		sb.WriteString("S")
	case Timeout:
		sb.WriteString("T")
	case Resign:
		sb.WriteString("R")
	case TimeoutMate:
		sb.WriteString("T#")
	case ResignMate:
		sb.WriteString("R#")
	case KingCastle, QueenCastle:
		sb.WriteString("O-O")
		if m.Kind == QueenCastle {
			sb.WriteString("-O")
		}
		sb.WriteString(strings.Repeat("#", m.Mates))
	case ResignMove:
		m.Basic.write(sb)
		sb.WriteByte('R')
	case TimeoutMove:
		m.Basic.write(sb)
		sb.WriteByte('T')
	default:
		m.Basic.write(sb)
	}
}
