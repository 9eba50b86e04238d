package pgn4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTags(tags ...string) *PGN4 {
	doc := &PGN4{}
	for i := 0; i+1 < len(tags); i += 2 {
		doc.Tags = append(doc.Tags, Tag{Name: tags[i], Value: tags[i+1]})
	}
	return doc
}

func TestVariantDefaults(t *testing.T) {
	v, err := withTags("Variant", "Teams").Variant()
	require.NoError(t, err)
	assert.Equal(t, TeamsVariant(), v)
	assert.Equal(t, Yellow, v.RedTeammate)

	v, err = withTags("Variant", "Solo").Variant()
	require.NoError(t, err)
	assert.Equal(t, FFAVariant(), v)
	assert.Equal(t, SeatNone, v.RedTeammate)
}

func TestVariantRules(t *testing.T) {
	doc := withTags(
		"Variant", "FFA",
		"RuleVariants", "EnPassant Prom=8 PromoteTo=VHE DeadKingWalking Play-4-Mate 3check Blindfold Teammate=1 Chess960=37",
		"StartFen4", "R-0,0,0,0",
	)
	v, err := doc.Variant()
	require.NoError(t, err)
	assert.True(t, v.EnPassant)
	assert.True(t, v.DeadKingWalking)
	assert.True(t, v.PlayForMate)
	assert.False(t, v.Antichess)
	assert.Equal(t, 8, v.PawnPromotionRank)
	assert.Equal(t, []rune("VHE"), v.PromoteTo)
	assert.Equal(t, Green, v.RedTeammate)
	assert.Equal(t, "R-0,0,0,0", v.StartFen4)
}

func TestVariantFromParsedHeaders(t *testing.T) {
	doc := mustParse(t, headerGame)
	v, err := doc.Variant()
	require.NoError(t, err)
	assert.Equal(t, "Teams", v.Mode)
	assert.True(t, v.EnPassant)
	assert.NotEmpty(t, v.StartFen4)
}

func TestVariantErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *PGN4
		want error
	}{
		{"missing", withTags(), ErrUnknownVariant},
		{"unknown", withTags("Variant", "Crazy"), ErrUnknownVariant},
		{"repeated", withTags("Variant", "FFA", "Variant", "Teams"), ErrRepeatedTag},
		{"unknown rule", withTags("Variant", "FFA", "RuleVariants", "Gravity"), ErrUnknownRule},
		{"unknown keyed rule", withTags("Variant", "FFA", "RuleVariants", "Gravity=3"), ErrUnknownRule},
		{"double equals", withTags("Variant", "FFA", "RuleVariants", "Prom=8=9"), ErrBadRule},
		{"bad int", withTags("Variant", "FFA", "RuleVariants", "Prom=eight"), ErrBadRuleValue},
		{"big int", withTags("Variant", "FFA", "RuleVariants", "OppX=300"), ErrBadRuleValue},
		{"teammate", withTags("Variant", "Teams", "RuleVariants", "Teammate=4"), ErrBadTeammate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Variant()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSeatString(t *testing.T) {
	assert.Equal(t, "Blue", Blue.String())
	assert.Equal(t, "None", SeatNone.String())
}
