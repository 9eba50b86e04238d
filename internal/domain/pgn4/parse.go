package pgn4

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse reads a whole document: header tags followed by turns.
func Parse(text string) (*PGN4, error) {
	p := &parser{src: text}
	doc := &PGN4{}

	p.skipSpace()
	for p.peek() == '[' {
		tag, err := p.parseTag()
		if err != nil {
			return nil, err
		}
		doc.Tags = append(doc.Tags, tag)
	}

	p.skipSpace()
	for !p.eof() {
		turn, err := p.parseTurn()
		if err != nil {
			return nil, err
		}
		doc.Turns = append(doc.Turns, turn)
		p.skipSpace()
	}
	return doc, nil
}

// ParseQuarterTurn reads a single quarter-turn, including its description and
// alternatives. The whole input must be consumed.
func ParseQuarterTurn(text string) (QuarterTurn, error) {
	p := &parser{src: text}
	q, err := p.parseQuarter()
	if err != nil {
		return QuarterTurn{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return QuarterTurn{}, p.fail(ErrTrailingInput, p.pos)
	}
	return q, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) rest() string {
	return p.src[p.pos:]
}

// peek returns the next byte, or 0 at the end of input.
func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		r, n := utf8.DecodeRuneInString(p.rest())
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += n
	}
}

func (p *parser) fail(err error, at int) error {
	return &ParseError{Err: err, Location: locate(p.src, at)}
}

func (p *parser) parseTag() (Tag, error) {
	start := p.pos
	p.pos++ // '['

	rest := p.rest()
	labelEnd := strings.IndexFunc(rest, unicode.IsSpace)
	if labelEnd < 0 {
		labelEnd = 0
	}
	label := rest[:labelEnd]
	p.pos += labelEnd
	p.skipSpace()

	if p.peek() != '"' {
		return Tag{}, p.fail(ErrBadTag, start)
	}
	p.pos++
	valueEnd := strings.IndexByte(p.rest(), '"')
	if valueEnd < 0 {
		return Tag{}, p.fail(ErrBadTag, start)
	}
	value := p.rest()[:valueEnd]
	p.pos += valueEnd

	if !strings.HasPrefix(p.rest(), `"]`) {
		return Tag{}, p.fail(ErrBadTag, start)
	}
	p.pos += 2
	p.skipSpace()
	return Tag{Name: label, Value: value}, nil
}

func (p *parser) parseTurn() (Turn, error) {
	p.skipSpace()
	start := p.pos
	if p.eof() {
		return Turn{}, p.fail(ErrUnexpectedEnd, start)
	}

	dot := strings.IndexByte(p.rest(), '.')
	if dot < 0 {
		return Turn{}, p.fail(ErrBadTurnNumber, start)
	}
	var turn Turn
	if digits := p.rest()[:dot]; digits != "" {
		n, err := parseTurnNumber(digits)
		if err != nil {
			return Turn{}, p.fail(err, start)
		}
		turn.Number = n
	}
	p.pos += dot + 1
	if p.peek() == '.' {
		turn.MidTurn = true
		p.pos++
	}

	q, err := p.parseQuarter()
	if err != nil {
		return Turn{}, err
	}
	turn.Quarters = append(turn.Quarters, q)
	p.skipSpace()

	for strings.HasPrefix(p.rest(), "..") {
		if len(turn.Quarters) == 4 {
			return Turn{}, p.fail(ErrTooManyQuarters, p.pos)
		}
		p.pos += 2
		q, err := p.parseQuarter()
		if err != nil {
			return Turn{}, err
		}
		turn.Quarters = append(turn.Quarters, q)
		p.skipSpace()
	}
	return turn, nil
}

func parseTurnNumber(digits string) (int, error) {
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrBadTurnNumber, digits)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTurnNumber, digits)
	}
	return n, nil
}

// endsMoveToken reports whether r terminates a move token.
func endsMoveToken(r rune) bool {
	switch r {
	case '.', '{', '(', ')':
		return true
	}
	return unicode.IsSpace(r)
}

func (p *parser) parseQuarter() (QuarterTurn, error) {
	p.skipSpace()
	start := p.pos
	if p.eof() {
		return QuarterTurn{}, p.fail(ErrUnexpectedEnd, start)
	}

	end := strings.IndexFunc(p.rest(), endsMoveToken)
	if end < 0 {
		end = len(p.rest())
	}
	token := p.rest()[:end]
	q, err := parseMovePair(token)
	if err != nil {
		return QuarterTurn{}, &ParseError{
			Err:      fmt.Errorf("%w: %w", ErrBadMove, err),
			Text:     token,
			Location: locate(p.src, start),
		}
	}
	p.pos += end
	p.skipSpace()

	if p.peek() == '{' {
		desc, err := p.parseDescription()
		if err != nil {
			return QuarterTurn{}, err
		}
		q.Description = &desc
	}

	for {
		p.skipSpace()
		if p.peek() != '(' {
			break
		}
		alt, err := p.parseAlternative()
		if err != nil {
			return QuarterTurn{}, err
		}
		q.Alternatives = append(q.Alternatives, alt)
	}
	return q, nil
}

func (p *parser) parseDescription() (string, error) {
	start := p.pos
	closing := strings.IndexByte(p.rest(), '}')
	if closing < 0 {
		return "", p.fail(ErrBadDescription, start)
	}
	body := p.rest()[:closing+1]
	if len(body) < 4 || !strings.HasPrefix(body, "{ ") || !strings.HasSuffix(body, " }") {
		return "", p.fail(ErrBadDescription, start)
	}
	p.pos += closing + 1
	return body[2 : len(body)-2], nil
}

func (p *parser) parseAlternative() ([]Turn, error) {
	open := p.pos
	p.pos++ // '('

	var turns []Turn
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.fail(ErrUnclosedAlternative, open)
		}
		if p.peek() == ')' {
			p.pos++
			if len(turns) == 0 {
				return nil, p.fail(ErrEmptyAlternative, open)
			}
			return turns, nil
		}
		turn, err := p.parseTurn()
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
}

// parseMovePair splits a token into its main move and optional modifier. A trailing
// R, S or T names a separate modifier unless it is a promotion ("=R"); two character
// tokens are always a pair since no single move is two characters long.
func parseMovePair(token string) (QuarterTurn, error) {
	runes := []rune(token)
	var q QuarterTurn

	if n := len(runes); n >= 3 && runes[n-1] == 'S' && isSuffixLetter(runes[n-2]) && runes[n-3] != '=' {
		q.ExtraStalemate = true
		runes = runes[:n-1]
	}

	split := 0
	switch n := len(runes); {
	case n == 2:
		split = 1
	case n > 2 && isSuffixLetter(runes[n-1]) && runes[n-2] != '=':
		split = n - 1
	}

	if split == 0 {
		main, err := ParseMove(string(runes))
		if err != nil {
			return QuarterTurn{}, err
		}
		q.Main = main
		return q, nil
	}

	main, err := ParseMove(string(runes[:split]))
	if err != nil {
		return QuarterTurn{}, err
	}
	modifier, err := ParseMove(string(runes[split:]))
	if err != nil {
		return QuarterTurn{}, err
	}
	q.Main = main
	q.Modifier = &modifier
	return q, nil
}

func isSuffixLetter(r rune) bool {
	return r == 'R' || r == 'S' || r == 'T'
}
