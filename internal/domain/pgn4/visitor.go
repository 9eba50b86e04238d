package pgn4

import (
	"strconv"
	"strings"
)

// Cursor walks a line of turns one quarter-turn at a time. It starts before the first
// quarter-turn, where QTurn returns nil.
type Cursor interface {
	// Last reports whether no quarter-turn follows the hovered one.
	Last() bool
	// Alternatives is the number of alternatives on the hovered quarter-turn.
	Alternatives() int
	// QTurn returns the hovered quarter-turn, or nil before the first one.
	QTurn() *QuarterTurn
	// Next moves one quarter-turn forward, crossing turn boundaries.
	Next() error
	// IntoAlternative moves to the start of the alt-th (1-based) alternative of the
	// hovered quarter-turn.
	IntoAlternative(alt int) error
}

const beforeFirst = -1

// Visitor is a read-only cursor. It is a plain value, so copying one forks the walk.
// The quarter-turns it hands out must not be modified.
type Visitor struct {
	turns []Turn
	i, j  int
}

// NewVisitor returns a cursor at the start of the main line.
func NewVisitor(p *PGN4) *Visitor {
	return &Visitor{turns: p.Turns, j: beforeFirst}
}

// Clone returns an independent copy of the cursor.
func (v *Visitor) Clone() *Visitor {
	c := *v
	return &c
}

func (v *Visitor) Last() bool {
	return isLast(v.turns, v.i, v.j)
}

func (v *Visitor) Alternatives() int {
	if q := v.QTurn(); q != nil {
		return len(q.Alternatives)
	}
	return 0
}

func (v *Visitor) QTurn() *QuarterTurn {
	if v.j == beforeFirst {
		return nil
	}
	return &v.turns[v.i].Quarters[v.j]
}

func (v *Visitor) Next() error {
	i, j, err := step(v.turns, v.i, v.j)
	if err != nil {
		return err
	}
	v.i, v.j = i, j
	return nil
}

func (v *Visitor) IntoAlternative(alt int) error {
	q := v.QTurn()
	if q == nil || alt < 1 || alt > len(q.Alternatives) {
		return ErrInvalidAlternative
	}
	v.turns, v.i, v.j = q.Alternatives[alt-1], 0, beforeFirst
	return nil
}

type cursorState struct {
	turns *[]Turn
	i, j  int
}

// VisitorMut is a cursor that may change the line it walks. Save pushes the current
// position so a caller can descend further and come back with Restore.
type VisitorMut struct {
	cursorState
	saved []cursorState
}

// NewVisitorMut returns a mutable cursor at the start of the main line.
func NewVisitorMut(p *PGN4) *VisitorMut {
	return &VisitorMut{cursorState: cursorState{turns: &p.Turns, j: beforeFirst}}
}

// Save remembers the current position.
func (v *VisitorMut) Save() {
	v.saved = append(v.saved, v.cursorState)
}

// Restore returns to the most recently saved position.
func (v *VisitorMut) Restore() error {
	if len(v.saved) == 0 {
		return ErrNothingSaved
	}
	v.cursorState = v.saved[len(v.saved)-1]
	v.saved = v.saved[:len(v.saved)-1]
	return nil
}

// Line returns the turns the cursor is walking. Replacing *Line() replaces the line in
// the document.
func (v *VisitorMut) Line() *[]Turn {
	return v.turns
}

// Position returns the hovered turn and quarter indexes; quarter is -1 before the first
// quarter-turn.
func (v *VisitorMut) Position() (turn, quarter int) {
	return v.i, v.j
}

func (v *VisitorMut) Last() bool {
	return isLast(*v.turns, v.i, v.j)
}

func (v *VisitorMut) Alternatives() int {
	if q := v.QTurn(); q != nil {
		return len(q.Alternatives)
	}
	return 0
}

// QTurn returns the hovered quarter-turn. Changes through the pointer land in the
// document.
func (v *VisitorMut) QTurn() *QuarterTurn {
	if v.j == beforeFirst {
		return nil
	}
	return &(*v.turns)[v.i].Quarters[v.j]
}

func (v *VisitorMut) Next() error {
	i, j, err := step(*v.turns, v.i, v.j)
	if err != nil {
		return err
	}
	v.i, v.j = i, j
	return nil
}

func (v *VisitorMut) IntoAlternative(alt int) error {
	q := v.QTurn()
	if q == nil || alt < 1 || alt > len(q.Alternatives) {
		return ErrInvalidAlternative
	}
	v.cursorState = cursorState{turns: &q.Alternatives[alt-1], j: beforeFirst}
	return nil
}

func isLast(turns []Turn, i, j int) bool {
	if len(turns) == 0 {
		return true
	}
	return i == len(turns)-1 && j == len(turns[i].Quarters)-1
}

// step computes the position after (i, j).
func step(turns []Turn, i, j int) (int, int, error) {
	if i == 0 && j == beforeFirst {
		switch {
		case len(turns) == 0:
			return i, j, ErrEndOfGame
		case len(turns[0].Quarters) == 0:
			return i, j, ErrEmptyTurn
		}
		return 0, 0, nil
	}

	n := len(turns[i].Quarters)
	switch {
	case j < 0 || j >= n:
		return i, j, ErrInternal
	case j+1 < n:
		return i, j + 1, nil
	case i+1 == len(turns):
		return i, j, ErrEndOfGame
	case len(turns[i+1].Quarters) == 0:
		return i, j, ErrEmptyTurn
	}
	return i + 1, 0, nil
}

// PartialPath records how much of a path a cursor has already followed, so following
// a longer path can resume instead of walking again from the root.
type PartialPath struct {
	main []int
	last int
}

func (pp *PartialPath) String() string {
	var sb strings.Builder
	for _, n := range pp.main {
		sb.WriteString(strconv.Itoa(n))
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.Itoa(pp.last))
	return sb.String()
}

// Path returns the followed path.
func (pp *PartialPath) Path() []int {
	path := make([]int, 0, len(pp.main)+1)
	path = append(path, pp.main...)
	return append(path, pp.last)
}

func (pp *PartialPath) done(path []int) bool {
	if len(path) != len(pp.main)+1 || path[len(path)-1] != pp.last {
		return false
	}
	for i, n := range pp.main {
		if path[i] != n {
			return false
		}
	}
	return true
}

// FollowOnce advances c by one step towards path: one quarter-turn forward, or into
// an alternative once the branching ply is reached.
func FollowOnce(c Cursor, partial *PartialPath, path []int) error {
	n := len(partial.main)
	if n+1 > len(path) {
		return ErrPartialPathWrong
	}
	for i, v := range partial.main {
		if path[i] != v {
			return ErrPartialPathWrong
		}
	}

	target := path[n]
	if partial.last > target {
		return ErrPartialPathWrong
	}
	advanced := partial.last != target
	if advanced {
		if err := c.Next(); err != nil {
			return err
		}
		partial.last++
	}
	if partial.last != target {
		return nil
	}

	switch {
	case len(path) == n+1:
		if !advanced {
			return ErrEndOfGame
		}
	case len(path) == n+2:
		return ErrEvenPath
	default:
		if path[n+2] == 0 {
			return ErrZeroInPath
		}
		// descend and step onto the first quarter so QTurn is never nil afterwards
		if err := c.IntoAlternative(path[n+1]); err != nil {
			return err
		}
		if err := c.Next(); err != nil {
			return err
		}
		partial.main = append([]int(nil), path[:n+2]...)
		partial.last = 1
	}
	return nil
}

// FollowPath advances c until it hovers the quarter-turn addressed by path. [0] leaves
// the cursor where it is.
func FollowPath(c Cursor, partial *PartialPath, path []int) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if isStartPath(path) {
		return nil
	}
	for !partial.done(path) {
		if err := FollowOnce(c, partial, path); err != nil {
			return err
		}
	}
	return nil
}

func isStartPath(path []int) bool {
	return len(path) == 1 && path[0] == 0
}

// checkPath rejects empty and even paths, and any zero outside the [0] sentinel.
func checkPath(path []int) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	if len(path)%2 == 0 {
		return ErrEvenPath
	}
	if isStartPath(path) {
		return nil
	}
	for _, n := range path {
		if n < 1 {
			return ErrZeroInPath
		}
	}
	return nil
}
