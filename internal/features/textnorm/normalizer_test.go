package textnorm

import (
	"testing"

	"wordspotr/internal/features/filters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStemsWords(t *testing.T) {
	q, err := Parse("running cats moon")
	require.NoError(t, err)

	assert.Equal(t, []string{"run", "cat", "moon"}, q.Terms)
	assert.False(t, q.HasFilters())
}

func TestParseLowercasesAndStripsPunctuation(t *testing.T) {
	q, err := Parse("MOON, rocket!")
	require.NoError(t, err)

	assert.Equal(t, []string{"moon", "rocket"}, q.Terms)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestParseInlineExpressions(t *testing.T) {
	q, err := Parse("moon fdv>50000 liquidity<10000")
	require.NoError(t, err)

	assert.Equal(t, []string{"moon"}, q.Terms)
	require.True(t, q.HasFilters())

	require.NotNil(t, q.Filters.Fdv)
	assert.Equal(t, filters.OpGreater, q.Filters.Fdv.Op)
	assert.Equal(t, 50000.0, q.Filters.Fdv.Value)

	require.NotNil(t, q.Filters.Liquidity)
	assert.Equal(t, filters.OpLess, q.Filters.Liquidity.Op)
	assert.Equal(t, 10000.0, q.Filters.Liquidity.Value)
}

func TestParseExpressionCaseInsensitive(t *testing.T) {
	q, err := Parse("pepe FDV=100000")
	require.NoError(t, err)

	require.NotNil(t, q.Filters.Fdv)
	assert.Equal(t, filters.OpEqual, q.Filters.Fdv.Op)
}

func TestParsePriceAndVolumeExpressions(t *testing.T) {
	q, err := Parse("doge price<0.5 volume>1000")
	require.NoError(t, err)

	require.NotNil(t, q.Filters.Price)
	assert.Equal(t, 0.5, q.Filters.Price.Value)
	require.NotNil(t, q.Filters.Volume)
	assert.Equal(t, filters.OpGreater, q.Filters.Volume.Op)
}

func TestParseDropsMalformedExpressions(t *testing.T) {
	// unknown field, missing value, garbage operator sequence
	q, err := Parse("moon marketcap>5000 fdv> <=>")
	require.NoError(t, err)

	assert.Equal(t, []string{"moon"}, q.Terms)
	assert.False(t, q.HasFilters())
}

func TestParseOnlyExpressionsYieldsNoTerms(t *testing.T) {
	q, err := Parse("fdv>50000")
	require.NoError(t, err)

	assert.Empty(t, q.Terms)
	assert.True(t, q.HasFilters())
}
