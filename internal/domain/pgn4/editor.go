package pgn4

import (
	"errors"
	"fmt"
)

// AppendMove inserts q right after the quarter-turn addressed by path and returns
// where it ended up: 0 when it continues the line (or the same move already did),
// otherwise the 1-based index of the alternative holding it. [0] addresses the slot
// before the first ply.
func (p *PGN4) AppendMove(path []int, q QuarterTurn) (int, error) {
	if err := checkPath(path); err != nil {
		return 0, err
	}
	if isStartPath(path) && len(p.Turns) == 0 {
		p.Turns = []Turn{{Number: 1, Quarters: []QuarterTurn{q}}}
		return 0, nil
	}

	v := NewVisitorMut(p)
	if err := FollowPath(v, &PartialPath{}, path); err != nil {
		return 0, unresolvable(err)
	}
	ply := absolutePly(path)
	line := v.Line()

	if v.Last() {
		turns := *line
		tail := &turns[len(turns)-1]
		if len(tail.Quarters) < 4 && ply%4 != 0 {
			tail.Quarters = append(tail.Quarters, q)
		} else {
			*line = append(turns, Turn{Number: ply/4 + 1, Quarters: []QuarterTurn{q}})
		}
		return 0, nil
	}

	if err := v.Next(); err != nil {
		return 0, unresolvable(err)
	}
	slot := v.QTurn()
	if slot.SameMove(&q) {
		return 0, nil
	}
	for n, alt := range slot.Alternatives {
		if len(alt) > 0 && len(alt[0].Quarters) > 0 && alt[0].Quarters[0].SameMove(&q) {
			return n + 1, nil
		}
	}

	start := Turn{MidTurn: true, Quarters: []QuarterTurn{q}}
	if ply%4 == 0 {
		start.Number = ply/4 + 1
	}
	slot.Alternatives = append(slot.Alternatives, []Turn{start})
	return len(slot.Alternatives), nil
}

// PromoteToMainline makes the alternative the path descends through last the main
// continuation at its branching ply. The previous continuation becomes the first
// alternative there, so promoting twice with a single alternative restores the tree.
// A single element path promotes nothing.
func (p *PGN4) PromoteToMainline(path []int) error {
	v, alt, err := p.locateBranch(path)
	if err != nil || v == nil {
		return err
	}

	line := v.Line()
	i, j := v.Position()
	turns := *line
	q := &turns[i].Quarters[j]
	promoted := q.Alternatives[alt-1]

	first := cloneQuarter(promoted[0].Quarters[0])
	head := copyQuarters(turns[i].Quarters[:j])
	opening := Turn{Number: turns[i].Number, MidTurn: turns[i].MidTurn}
	opening.Quarters = append(append(head, first), promoted[0].Quarters[1:]...)
	if len(opening.Quarters) > 4 {
		return fmt.Errorf("%w: promoting at turn %d", ErrTurnOverflow, turns[i].Number)
	}

	demotedQ := cloneQuarter(*q)
	demotedQ.Alternatives = nil
	demotedOpening := Turn{Number: promoted[0].Number, MidTurn: promoted[0].MidTurn}
	demotedOpening.Quarters = append([]QuarterTurn{demotedQ}, turns[i].Quarters[j+1:]...)
	demoted := append([]Turn{demotedOpening}, turns[i+1:]...)

	alts := make([][]Turn, 0, len(q.Alternatives)+len(first.Alternatives))
	alts = append(alts, demoted)
	for n, a := range q.Alternatives {
		if n != alt-1 {
			alts = append(alts, a)
		}
	}
	first.Alternatives = append(alts, first.Alternatives...)
	opening.Quarters[j] = first

	rebuilt := make([]Turn, 0, i+len(promoted))
	rebuilt = append(rebuilt, turns[:i]...)
	rebuilt = append(rebuilt, opening)
	rebuilt = append(rebuilt, promoted[1:]...)
	*line = rebuilt
	return nil
}

// locateBranch resolves a promotion path to a cursor hovering the branching quarter-turn
// and the alternative to promote. It returns a nil cursor for single element paths.
func (p *PGN4) locateBranch(path []int) (*VisitorMut, int, error) {
	if err := checkPath(path); err != nil {
		return nil, 0, err
	}
	if isStartPath(path) {
		return nil, 0, ErrZeroInPath
	}

	v := NewVisitorMut(p)
	partial := &PartialPath{}
	if len(path) == 1 {
		if err := FollowPath(v, partial, path); err != nil {
			return nil, 0, unresolvable(err)
		}
		return nil, 0, nil
	}

	parent := path[:len(path)-2]
	if err := FollowPath(v, partial, parent); err != nil {
		return nil, 0, unresolvable(err)
	}
	v.Save()
	if err := FollowPath(v, partial, path); err != nil {
		return nil, 0, unresolvable(err)
	}
	if err := v.Restore(); err != nil {
		return nil, 0, err
	}
	return v, path[len(path)-2], nil
}

// DeleteFrom removes the addressed quarter-turn and everything after it in its line.
// When that quarter-turn has alternatives, the first one takes over the line and the
// rest hang off its opening quarter-turn. An alternative left empty is dropped from
// its parent.
func (p *PGN4) DeleteFrom(path []int) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if isStartPath(path) {
		return ErrZeroInPath
	}

	v := NewVisitorMut(p)
	partial := &PartialPath{}
	nested := len(path) > 1
	if nested {
		if err := FollowPath(v, partial, path[:len(path)-2]); err != nil {
			return unresolvable(err)
		}
		v.Save()
	}
	if err := FollowPath(v, partial, path); err != nil {
		return unresolvable(err)
	}

	line := v.Line()
	i, j := v.Position()
	turns := *line
	q := &turns[i].Quarters[j]

	var rebuilt []Turn
	if len(q.Alternatives) > 0 {
		successor := q.Alternatives[0]
		first := cloneQuarter(successor[0].Quarters[0])
		rest := append([][]Turn(nil), q.Alternatives[1:]...)
		first.Alternatives = append(rest, first.Alternatives...)

		opening := Turn{Number: turns[i].Number, MidTurn: turns[i].MidTurn}
		opening.Quarters = append(append(copyQuarters(turns[i].Quarters[:j]), first), successor[0].Quarters[1:]...)
		if len(opening.Quarters) > 4 {
			return fmt.Errorf("%w: deleting at turn %d", ErrTurnOverflow, turns[i].Number)
		}
		rebuilt = make([]Turn, 0, i+len(successor))
		rebuilt = append(rebuilt, turns[:i]...)
		rebuilt = append(rebuilt, opening)
		rebuilt = append(rebuilt, successor[1:]...)
	} else {
		rebuilt = make([]Turn, 0, i+1)
		rebuilt = append(rebuilt, turns[:i]...)
		if j > 0 {
			rebuilt = append(rebuilt, Turn{
				Number:   turns[i].Number,
				MidTurn:  turns[i].MidTurn,
				Quarters: copyQuarters(turns[i].Quarters[:j]),
			})
		}
	}

	if len(rebuilt) > 0 || !nested {
		*line = rebuilt
		return nil
	}

	if err := v.Restore(); err != nil {
		return err
	}
	parent := v.QTurn()
	alt := path[len(path)-2]
	alts := make([][]Turn, 0, len(parent.Alternatives)-1)
	alts = append(alts, parent.Alternatives[:alt-1]...)
	parent.Alternatives = append(alts, parent.Alternatives[alt:]...)
	if len(parent.Alternatives) == 0 {
		parent.Alternatives = nil
	}
	return nil
}

// absolutePly counts the plies from the start of the game to the addressed one,
// alternatives replacing the ply they branch at.
func absolutePly(path []int) int {
	ply := 0
	for n := 0; n+2 < len(path); n += 2 {
		ply += path[n] - 1
	}
	return ply + path[len(path)-1]
}

func unresolvable(err error) error {
	if errors.Is(err, ErrEndOfGame) || errors.Is(err, ErrEmptyTurn) {
		return fmt.Errorf("%w: %w", ErrPathUnresolvable, err)
	}
	return err
}

func copyQuarters(qs []QuarterTurn) []QuarterTurn {
	out := make([]QuarterTurn, len(qs), 4)
	copy(out, qs)
	return out
}

// cloneQuarter copies q with its own alternatives slice.
func cloneQuarter(q QuarterTurn) QuarterTurn {
	if q.Alternatives != nil {
		q.Alternatives = append([][]Turn(nil), q.Alternatives...)
	}
	return q
}
