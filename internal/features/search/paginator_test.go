package search

import (
	"testing"

	"wordspotr/internal/clients_api/dexscreener"

	"github.com/stretchr/testify/assert"
)

func makePairs(n int) []dexscreener.Pair {
	pairs := make([]dexscreener.Pair, n)
	for i := range pairs {
		pairs[i] = dexscreener.Pair{BaseToken: dexscreener.Token{Address: string(rune('a' + i))}}
	}
	return pairs
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 2},
		{12, 3},
	}
	for _, tt := range tests {
		rs := NewResultSet("q", makePairs(tt.n))
		assert.Equal(t, tt.want, rs.TotalPages(), "n=%d", tt.n)
	}
}

func TestPagePairsSlicing(t *testing.T) {
	rs := NewResultSet("q", makePairs(12))

	page1, start := rs.PagePairs(1)
	assert.Len(t, page1, 5)
	assert.Equal(t, 0, start)

	page3, start := rs.PagePairs(3)
	assert.Len(t, page3, 2)
	assert.Equal(t, 10, start)
}

func TestPagePairsOutOfRange(t *testing.T) {
	rs := NewResultSet("q", makePairs(12))

	for _, page := range []int{0, -1, 4, 100} {
		got, _ := rs.PagePairs(page)
		assert.Nil(t, got, "page=%d", page)
	}
}

func TestNavigationCursor(t *testing.T) {
	rs := NewResultSet("q", makePairs(12))
	assert.Equal(t, 1, rs.Page)
	assert.False(t, rs.HasPrev())
	assert.True(t, rs.HasNext())

	rs.Page = 3
	assert.True(t, rs.HasPrev())
	assert.False(t, rs.HasNext())
}

func TestSinglePageHasNoNavigation(t *testing.T) {
	rs := NewResultSet("q", makePairs(3))
	assert.False(t, rs.HasPrev())
	assert.False(t, rs.HasNext())
}
