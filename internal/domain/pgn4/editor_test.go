package pgn4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basicGame = `1. d2-d3 .. b11-c11 .. k13-k12 .. m4-l4
2. h2-h3 .. b7-c7 .. g13-g12 .. m8-l8`

const toAdd = `1. j2-j3 .. b5-c5 .. e13-e12 .. m10-l10
2. e2-e3 .. b10-c10 .. j13-j12 .. m5-l5`

const addedOnFirst = `1. d2-d3
(1.. j2-j3 .. b5-c5 .. e13-e12 .. m10-l10
2. e2-e3 .. b10-c10 .. j13-j12 .. m5-l5 )  .. b11-c11 .. k13-k12 .. m4-l4
2. h2-h3 .. b7-c7 .. g13-g12 .. m8-l8`

const addedOnEach = `1. d2-d3
(1.. j2-j3 )  .. b11-c11 ( .. b5-c5 )  .. k13-k12 ( .. e13-e12 )  .. m4-l4 ( .. m10-l10 )
2. h2-h3
(2.. e2-e3 )  .. b7-c7 ( .. b10-c10 )  .. g13-g12 ( .. j13-j12 )  .. m8-l8 ( .. m5-l5 )`

func mustParse(t *testing.T, text string) *PGN4 {
	t.Helper()
	doc, err := Parse(text)
	require.NoError(t, err)
	return doc
}

func requireSameGame(t *testing.T, want, got *PGN4, msg string) {
	t.Helper()
	require.True(t, want.Equal(got), "%s\nwant:\n%s\ngot:\n%s", msg, want, got)
}

func quarters(doc *PGN4) []QuarterTurn {
	var out []QuarterTurn
	for _, turn := range doc.Turns {
		out = append(out, turn.Quarters...)
	}
	return out
}

func addEach(t *testing.T, work, add *PGN4) []int {
	t.Helper()
	var got []int
	for ply, q := range quarters(add) {
		n, err := work.AppendMove([]int{ply}, q)
		require.NoError(t, err)
		got = append(got, n)
	}
	return got
}

func addFirst(t *testing.T, work, add *PGN4) []int {
	t.Helper()
	var got []int
	for ply, q := range quarters(add) {
		path := []int{1, 1, ply}
		if ply == 0 {
			path = []int{0}
		}
		n, err := work.AppendMove(path, q)
		require.NoError(t, err)
		got = append(got, n)
	}
	return got
}

func TestAppendBuildsGame(t *testing.T) {
	base := mustParse(t, basicGame)
	built := &PGN4{}

	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0}, addEach(t, built, base))
	requireSameGame(t, base, built, "appending every move should rebuild the game")
	assert.Equal(t, basicGame, built.String())

	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0}, addEach(t, built, base))
	requireSameGame(t, base, built, "appending the same moves again should change nothing")
}

func TestAppendAlternatives(t *testing.T) {
	add := mustParse(t, toAdd)

	each := mustParse(t, basicGame)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1}, addEach(t, each, add))
	requireSameGame(t, mustParse(t, addedOnEach), each, "added on each")

	first := mustParse(t, basicGame)
	assert.Equal(t, []int{1, 0, 0, 0, 0, 0, 0, 0}, addFirst(t, first, add))
	requireSameGame(t, mustParse(t, addedOnFirst), first, "added on first")
	assert.Equal(t, addedOnFirst, first.String())
}

func TestAppendFirstAlternativeReadsAsTurnOne(t *testing.T) {
	doc := mustParse(t, basicGame)
	q, err := ParseQuarterTurn("j2-j3")
	require.NoError(t, err)

	n, err := doc.AppendMove([]int{0}, q)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	alts := doc.Turns[0].Quarters[0].Alternatives
	require.Len(t, alts, 1)
	require.Len(t, alts[0], 1)
	assert.Equal(t, "1.. j2-j3", alts[0][0].String())

	n, err = doc.AppendMove([]int{0}, q)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "matching an existing alternative returns its index")
	assert.Len(t, doc.Turns[0].Quarters[0].Alternatives, 1)

	other, err := ParseQuarterTurn("i2-i3")
	require.NoError(t, err)
	n, err = doc.AppendMove([]int{0}, other)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAppendMoveErrors(t *testing.T) {
	q, err := ParseQuarterTurn("j2-j3")
	require.NoError(t, err)

	tests := []struct {
		name string
		path []int
		want error
	}{
		{"even", []int{1, 1}, ErrEvenPath},
		{"empty", nil, ErrEmptyPath},
		{"zero", []int{1, 1, 0}, ErrZeroInPath},
		{"past end", []int{9}, ErrPathUnresolvable},
		{"missing alternative", []int{1, 1, 1}, ErrInvalidAlternative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, basicGame)
			_, err := doc.AppendMove(tt.path, q)
			assert.ErrorIs(t, err, tt.want)
			requireSameGame(t, mustParse(t, basicGame), doc, "failed append must not change the game")
		})
	}
}

func TestPromoteIsItsOwnInverse(t *testing.T) {
	first := mustParse(t, addedOnFirst)
	require.NoError(t, first.PromoteToMainline([]int{1, 1, 1}))
	assert.False(t, mustParse(t, addedOnFirst).Equal(first), "promotion should change the game")
	assert.Equal(t, "j2-j3", first.Turns[0].Quarters[0].Main.String())
	assert.Equal(t, 1, first.Turns[0].Number)
	assert.False(t, first.Turns[0].MidTurn)

	require.NoError(t, first.PromoteToMainline([]int{1, 1, 1}))
	requireSameGame(t, mustParse(t, addedOnFirst), first, "promoting twice with one alternative")
	assert.Equal(t, addedOnFirst, first.String())

	for _, ply := range []int{2, 4} {
		each := mustParse(t, addedOnEach)
		path := []int{ply, 1, 1}
		require.NoError(t, each.PromoteToMainline(path))
		assert.False(t, mustParse(t, addedOnEach).Equal(each), "promotion at %v should change the game", path)
		require.NoError(t, each.PromoteToMainline(path))
		requireSameGame(t, mustParse(t, addedOnEach), each, "promoting twice")
	}
}

func TestPromoteMidTurn(t *testing.T) {
	each := mustParse(t, addedOnEach)
	require.NoError(t, each.PromoteToMainline([]int{2, 1, 1}))

	assert.Equal(t, 2, each.PlyCount())
	slot := each.Turns[0].Quarters[1]
	assert.Equal(t, "b5-c5", slot.Main.String())
	require.Len(t, slot.Alternatives, 1)

	demoted := slot.Alternatives[0]
	require.Len(t, demoted, 2)
	assert.True(t, demoted[0].MidTurn)
	assert.Equal(t, 0, demoted[0].Number)
	assert.Equal(t, "b11-c11", demoted[0].Quarters[0].Main.String())
	assert.Empty(t, demoted[0].Quarters[0].Alternatives)
	assert.Len(t, demoted[0].Quarters, 3)
}

func TestPromoteKeepsOtherAlternatives(t *testing.T) {
	doc := mustParse(t, "1. d2-d3 ( .. e2-e3 )  ( .. f2-f3 ) ")
	require.NoError(t, doc.PromoteToMainline([]int{1, 2, 1}))

	slot := doc.Turns[0].Quarters[0]
	assert.Equal(t, "f2-f3", slot.Main.String())
	require.Len(t, slot.Alternatives, 2)
	assert.Equal(t, "d2-d3", slot.Alternatives[0][0].Quarters[0].Main.String())
	assert.Equal(t, "e2-e3", slot.Alternatives[1][0].Quarters[0].Main.String())
}

func TestPromoteErrors(t *testing.T) {
	tests := []struct {
		name string
		path []int
		want error
	}{
		{"even", []int{1, 1}, ErrEvenPath},
		{"zero", []int{0}, ErrZeroInPath},
		{"missing alternative", []int{1, 2, 1}, ErrInvalidAlternative},
		{"past alternative end", []int{1, 1, 9}, ErrPathUnresolvable},
		{"past line end", []int{12, 1, 1}, ErrPathUnresolvable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, addedOnFirst)
			err := doc.PromoteToMainline(tt.path)
			assert.ErrorIs(t, err, tt.want)
			requireSameGame(t, mustParse(t, addedOnFirst), doc, "failed promotion must not change the game")
		})
	}

	doc := mustParse(t, addedOnFirst)
	require.NoError(t, doc.PromoteToMainline([]int{3}))
	requireSameGame(t, mustParse(t, addedOnFirst), doc, "single element path promotes nothing")
}

func TestPromoteOverflow(t *testing.T) {
	// the alternative is a whole turn hanging off the third seat
	doc := mustParse(t, "1. d2-d3 .. b11-c11 .. k13-k12\n(1. j2-j3 .. b5-c5 .. e13-e12 .. m10-l10 )  .. m4-l4")
	err := doc.PromoteToMainline([]int{3, 1, 1})
	assert.ErrorIs(t, err, ErrTurnOverflow)
	assert.Equal(t, 4, doc.PlyCount())
}

func TestDeleteFrom(t *testing.T) {
	base := mustParse(t, basicGame)
	add := mustParse(t, toAdd)
	empty := &PGN4{}

	doc := mustParse(t, addedOnFirst)
	require.NoError(t, doc.DeleteFrom([]int{1}))
	requireSameGame(t, add, doc, "removing the main line leaves the first variation")

	doc = mustParse(t, addedOnFirst)
	require.NoError(t, doc.DeleteFrom([]int{1, 1, 1}))
	requireSameGame(t, base, doc, "removing the variation leaves the main line")
	require.NoError(t, doc.DeleteFrom([]int{1}))
	requireSameGame(t, empty, doc, "removing everything leaves nothing")

	doc = mustParse(t, addedOnEach)
	for ply := 1; ply <= 8; ply++ {
		require.NoError(t, doc.DeleteFrom([]int{ply, 1, 1}))
	}
	requireSameGame(t, base, doc, "removing every variation leaves the main line")

	doc = mustParse(t, addedOnFirst)
	require.NoError(t, doc.PromoteToMainline([]int{1, 1, 1}))
	require.NoError(t, doc.DeleteFrom([]int{1}))
	requireSameGame(t, base, doc, "promoting and deleting the main line restores it")
}

func TestDeleteTruncates(t *testing.T) {
	doc := mustParse(t, basicGame)
	require.NoError(t, doc.DeleteFrom([]int{6}))
	assert.Equal(t, "1. d2-d3 .. b11-c11 .. k13-k12 .. m4-l4\n2. h2-h3", doc.String())

	require.NoError(t, doc.DeleteFrom([]int{5}))
	assert.Equal(t, "1. d2-d3 .. b11-c11 .. k13-k12 .. m4-l4", doc.String())
}

func TestDeleteInsideAlternative(t *testing.T) {
	doc := mustParse(t, addedOnFirst)
	require.NoError(t, doc.DeleteFrom([]int{1, 1, 3}))

	alt := doc.Turns[0].Quarters[0].Alternatives[0]
	require.Len(t, alt, 1)
	assert.Equal(t, "1.. j2-j3 .. b5-c5", alt[0].String())
}

func TestDeleteMergesAlternatives(t *testing.T) {
	doc := mustParse(t, "1. d2-d3 ( .. e2-e3 ( .. g2-g3 ) )  ( .. f2-f3 )  .. b11-c11")
	require.NoError(t, doc.DeleteFrom([]int{1}))

	require.Len(t, doc.Turns, 1)
	slot := doc.Turns[0].Quarters[0]
	assert.Equal(t, "e2-e3", slot.Main.String())
	require.Len(t, slot.Alternatives, 2)
	assert.Equal(t, "f2-f3", slot.Alternatives[0][0].Quarters[0].Main.String())
	assert.Equal(t, "g2-g3", slot.Alternatives[1][0].Quarters[0].Main.String())
	assert.Equal(t, 1, doc.Turns[0].Number)
}

func TestAppendThenDeleteRestores(t *testing.T) {
	doc := mustParse(t, basicGame)
	add := mustParse(t, toAdd)
	addFirst(t, doc, add)
	require.NoError(t, doc.DeleteFrom([]int{1, 1, 1}))
	requireSameGame(t, mustParse(t, basicGame), doc, "deleting the appended line restores the game")

	addEach(t, doc, add)
	for ply := 1; ply <= 8; ply++ {
		require.NoError(t, doc.DeleteFrom([]int{ply, 1, 1}))
	}
	requireSameGame(t, mustParse(t, basicGame), doc, "deleting every appended alternative restores the game")
}

func TestDeleteErrors(t *testing.T) {
	tests := []struct {
		name string
		path []int
		want error
	}{
		{"even", []int{1, 1}, ErrEvenPath},
		{"zero", []int{0}, ErrZeroInPath},
		{"nested zero", []int{1, 0, 1}, ErrZeroInPath},
		{"past end", []int{20}, ErrPathUnresolvable},
		{"missing alternative", []int{2, 1, 1}, ErrInvalidAlternative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, addedOnFirst)
			err := doc.DeleteFrom(tt.path)
			assert.ErrorIs(t, err, tt.want)
			requireSameGame(t, mustParse(t, addedOnFirst), doc, "failed deletion must not change the game")
		})
	}
}
