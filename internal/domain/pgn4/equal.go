package pgn4

// Equal reports structural equality. Nil and empty slices compare equal.
func (p *PGN4) Equal(other *PGN4) bool {
	if len(p.Tags) != len(other.Tags) {
		return false
	}
	for i := range p.Tags {
		if p.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return turnsEqual(p.Turns, other.Turns)
}

// Equal reports structural equality of two turns.
func (t *Turn) Equal(other *Turn) bool {
	if t.Number != other.Number || t.MidTurn != other.MidTurn {
		return false
	}
	if len(t.Quarters) != len(other.Quarters) {
		return false
	}
	for i := range t.Quarters {
		if !t.Quarters[i].Equal(&other.Quarters[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two quarter-turns, alternatives included.
func (q *QuarterTurn) Equal(other *QuarterTurn) bool {
	if !q.SameMove(other) || q.ExtraStalemate != other.ExtraStalemate {
		return false
	}
	if (q.Description == nil) != (other.Description == nil) {
		return false
	}
	if q.Description != nil && *q.Description != *other.Description {
		return false
	}
	if len(q.Alternatives) != len(other.Alternatives) {
		return false
	}
	for i := range q.Alternatives {
		if !turnsEqual(q.Alternatives[i], other.Alternatives[i]) {
			return false
		}
	}
	return true
}

func turnsEqual(a, b []Turn) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}
