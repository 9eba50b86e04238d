package pgn4

import (
	"strconv"
	"strings"
)

// String writes the document back in the notation Parse reads.
func (p *PGN4) String() string {
	var sb strings.Builder
	for _, tag := range p.Tags {
		sb.WriteByte('[')
		sb.WriteString(tag.Name)
		sb.WriteString(` "`)
		sb.WriteString(tag.Value)
		sb.WriteString("\"]\n")
	}
	if len(p.Tags) != 0 {
		sb.WriteString("\n\n\n")
	}
	writeTurns(&sb, p.Turns)
	return sb.String()
}

func (t *Turn) String() string {
	var sb strings.Builder
	writeTurn(&sb, t)
	return sb.String()
}

func (q *QuarterTurn) String() string {
	var sb strings.Builder
	writeQuarter(&sb, q)
	return sb.String()
}

func writeTurns(sb *strings.Builder, turns []Turn) {
	for i := range turns {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeTurn(sb, &turns[i])
	}
}

func writeTurn(sb *strings.Builder, t *Turn) {
	if t.Number != 0 {
		sb.WriteString(strconv.Itoa(t.Number))
	}
	if t.MidTurn {
		sb.WriteString(".. ")
	} else {
		sb.WriteString(". ")
	}
	for i := range t.Quarters {
		if i > 0 {
			sb.WriteString(" .. ")
		}
		writeQuarter(sb, &t.Quarters[i])
	}
}

func writeQuarter(sb *strings.Builder, q *QuarterTurn) {
	q.Main.write(sb)
	if q.Modifier != nil {
		q.Modifier.write(sb)
	}
	if q.ExtraStalemate {
		sb.WriteByte('S')
	}
	if q.Description != nil {
		sb.WriteString(" { ")
		sb.WriteString(*q.Description)
		sb.WriteString(" }")
	}
	for _, alt := range q.Alternatives {
		if len(alt) == 0 {
			continue
		}
		// alternatives starting mid-turn stay on the same line
		if alt[0].Number == 0 {
			sb.WriteString(" ( ")
		} else {
			sb.WriteString("\n(")
		}
		writeTurns(sb, alt)
		sb.WriteString(" ) ")
	}
}
