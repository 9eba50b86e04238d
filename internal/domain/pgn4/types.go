// Package pgn4 reads, writes and edits the four-player chess transcript notation.
//
// A document is a list of header tags followed by turns. Every turn holds up to four
// quarter-turns (one per seat) and every quarter-turn may carry a description and any
// number of alternatives, each alternative being a further list of turns.
package pgn4

// BoardSize is the width and height of the four-player board.
const BoardSize = 14

// Position is a board square. Row and Col are both in [0, BoardSize).
type Position struct {
	Row int
	Col int
}

// BasicMove is a piece moving from one square to another.
// Captured and Promotion are zero when absent.
type BasicMove struct {
	Piece     rune
	From      Position
	Captured  rune
	To        Position
	Promotion rune
	Checks    int
	Mates     int
}

// MoveKind tags the variants of Move.
type MoveKind int

const (
	Normal MoveKind = iota
	Checkmate
	Stalemate
	Timeout
	Resign
	Claim
	TimeoutMate
	ResignMate
	KingCastle
	QueenCastle
	ResignMove
	TimeoutMove
)

var moveKindNames = [...]string{
	Normal:      "Normal",
	Checkmate:   "Checkmate",
	Stalemate:   "Stalemate",
	Timeout:     "Timeout",
	Resign:      "Resign",
	Claim:       "Claim",
	TimeoutMate: "TimeoutMate",
	ResignMate:  "ResignMate",
	KingCastle:  "KingCastle",
	QueenCastle: "QueenCastle",
	ResignMove:  "ResignMove",
	TimeoutMove: "TimeoutMove",
}

func (k MoveKind) String() string {
	if k >= 0 && int(k) < len(moveKindNames) {
		return moveKindNames[k]
	}
	return "Unknown"
}

// Move is a tagged union. Basic is meaningful for Normal, ResignMove and TimeoutMove;
// Mates is meaningful for the castles.
type Move struct {
	Kind  MoveKind
	Basic BasicMove
	Mates int
}

// NormalMove wraps a basic move.
func NormalMove(b BasicMove) Move {
	return Move{Kind: Normal, Basic: b}
}

// SpecialMove builds one of the moves carrying no payload (Checkmate, Stalemate, ...).
func SpecialMove(kind MoveKind) Move {
	return Move{Kind: kind}
}

// CastleMove builds a king or queen side castle with the given number of mates.
func CastleMove(queenSide bool, mates int) Move {
	if queenSide {
		return Move{Kind: QueenCastle, Mates: mates}
	}
	return Move{Kind: KingCastle, Mates: mates}
}

// QuarterTurn is one seat's ply.
type QuarterTurn struct {
	Main           Move
	Modifier       *Move
	ExtraStalemate bool
	Description    *string
	Alternatives   [][]Turn
}

// NewQuarterTurn builds a bare quarter-turn around a move.
func NewQuarterTurn(main Move) QuarterTurn {
	return QuarterTurn{Main: main}
}

// SameMove reports whether two quarter-turns play the same main move and modifier,
// ignoring descriptions and alternatives.
func (q *QuarterTurn) SameMove(other *QuarterTurn) bool {
	if q.Main != other.Main {
		return false
	}
	if q.Modifier == nil || other.Modifier == nil {
		return q.Modifier == nil && other.Modifier == nil
	}
	return *q.Modifier == *other.Modifier
}

// Turn groups the quarter-turns sharing a turn number. Number 0 suppresses the number
// when written; MidTurn marks a fragment starting after the first seat.
type Turn struct {
	Number   int
	MidTurn  bool
	Quarters []QuarterTurn
}

// Tag is a header line: [Name "Value"].
type Tag struct {
	Name  string
	Value string
}

// PGN4 is the document root.
type PGN4 struct {
	Tags  []Tag
	Turns []Turn
}

// Tag returns the value of the first header with the given name.
func (p *PGN4) Tag(name string) (string, bool) {
	for _, t := range p.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// PlyCount counts the quarter-turns on the main line.
func (p *PGN4) PlyCount() int {
	return countPlies(p.Turns)
}

func countPlies(turns []Turn) int {
	n := 0
	for _, t := range turns {
		n += len(t.Quarters)
	}
	return n
}
