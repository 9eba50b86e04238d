package pgn4

import (
	"errors"
	"fmt"
)

// Token errors
var (
	// ErrInvalidPosition indicates a square that is not a file a..n followed by a rank 1..14.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrMalformedMove indicates a basic move that cannot be split into its parts.
	ErrMalformedMove = errors.New("basic move is malformed")

	// ErrCastle indicates a move starting with O-O that is not a castle.
	ErrCastle = errors.New("move starts with O-O but is not a correct type of move")
)

// Structural errors
var (
	ErrUnexpectedEnd       = errors.New("unexpected end of input")
	ErrBadTurnNumber       = errors.New("turn number is malformed")
	ErrTooManyQuarters     = errors.New("turn has more than four quarter-turns")
	ErrBadDescription      = errors.New("description is malformed")
	ErrUnclosedAlternative = errors.New("alternative is not closed")
	ErrEmptyAlternative    = errors.New("alternative has no turns")
	ErrTrailingInput       = errors.New("unexpected trailing input")
)

// Document errors
var (
	// ErrBadTag indicates a header line that is not [label "value"].
	ErrBadTag = errors.New("tag is malformed")

	// ErrBadMove wraps a move error with the offending text and its location.
	ErrBadMove = errors.New("move failed to parse")
)

// Path errors, shared by the editor and the visitors
var (
	ErrEvenPath           = errors.New("path has an even number of elements")
	ErrZeroInPath         = errors.New("zero in path; only [0] may contain a zero")
	ErrEmptyPath          = errors.New("path is empty")
	ErrInvalidAlternative = errors.New("alternative is not present on the hovered quarter-turn")
	ErrPathUnresolvable   = errors.New("path points past the end of the line")

	// ErrTurnOverflow indicates an edit that would put more than four quarter-turns in a turn.
	ErrTurnOverflow = errors.New("edit would overfill a turn")
)

// Visitor errors
var (
	ErrEndOfGame        = errors.New("tried to look one past the end of the line")
	ErrEmptyTurn        = errors.New("turn without quarter-turns")
	ErrPartialPathWrong = errors.New("partial path does not match the followed path")
	ErrNothingSaved     = errors.New("no saved cursor position to restore")

	// ErrInternal indicates a cursor in an impossible state (should not happen).
	ErrInternal = errors.New("internal visitor error")
)

// Location is where a parse failure happened. Line is 1-based, Column is a 0-based
// count of characters, Offset is the raw byte offset.
type Location struct {
	Line   int
	Column int
	Offset int
}

func (l Location) String() string {
	return fmt.Sprintf("line %d column %d", l.Line, l.Column)
}

// ParseError is returned by Parse. Err is one of the sentinels above, possibly wrapping
// a token level error; Text holds the offending move text for ErrBadMove.
type ParseError struct {
	Err  error
	Text string
	Location
}

func (e *ParseError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("move %q at %s: %v", e.Text, e.Location, e.Err)
	}
	return fmt.Sprintf("%v at %s", e.Err, e.Location)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// locate converts a byte offset into a Location within src.
func locate(src string, offset int) Location {
	if offset > len(src) {
		offset = len(src)
	}
	loc := Location{Line: 1, Offset: offset}
	for _, r := range src[:offset] {
		if r == '\n' {
			loc.Line++
			loc.Column = 0
			continue
		}
		loc.Column++
	}
	return loc
}
