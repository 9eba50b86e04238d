package pgn4

import (
	"fmt"
	"strconv"
)

// ParsePosition reads a square such as "a1" or "n14".
func ParsePosition(s string) (Position, error) {
	if s == "" {
		return Position{}, fmt.Errorf("%w: empty", ErrInvalidPosition)
	}
	file := s[0]
	if file < 'a' || file >= 'a'+BoardSize {
		return Position{}, fmt.Errorf("%w: file %q in %q", ErrInvalidPosition, file, s)
	}
	digits := s[1:]
	if digits == "" {
		return Position{}, fmt.Errorf("%w: missing rank in %q", ErrInvalidPosition, s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Position{}, fmt.Errorf("%w: rank %q in %q", ErrInvalidPosition, digits, s)
		}
	}
	rank, err := strconv.Atoi(digits)
	if err != nil || rank < 1 || rank > BoardSize {
		return Position{}, fmt.Errorf("%w: rank %q in %q", ErrInvalidPosition, digits, s)
	}
	return Position{Row: rank - 1, Col: int(file - 'a')}, nil
}

func (p Position) String() string {
	return string(rune('a'+p.Col)) + strconv.Itoa(p.Row+1)
}

// Valid reports whether the square lies on the board.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}
