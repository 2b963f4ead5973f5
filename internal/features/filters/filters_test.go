package filters

import (
	"testing"

	"wordspotr/internal/clients_api/dexscreener"

	"github.com/stretchr/testify/assert"
)

func pairWithLiquidity(usd float64) dexscreener.Pair {
	return dexscreener.Pair{
		ChainID:   "solana",
		BaseToken: dexscreener.Token{Address: "addr", Name: "Test", Symbol: "TST"},
		Liquidity: &dexscreener.Liquidity{USD: usd},
	}
}

func TestEmptySetPassesEverything(t *testing.T) {
	pairs := []dexscreener.Pair{
		{},
		pairWithLiquidity(0),
		{Fdv: 1_000_000},
	}
	for _, p := range pairs {
		assert.True(t, Matches(p, Set{}))
	}
}

func TestThresholdMatching(t *testing.T) {
	tests := []struct {
		name string
		pair dexscreener.Pair
		set  Set
		want bool
	}{
		{"fdv above threshold", dexscreener.Pair{Fdv: 60000}, Set{Fdv: Threshold(OpGreater, 50000)}, true},
		{"fdv at threshold fails strict greater", dexscreener.Pair{Fdv: 50000}, Set{Fdv: Threshold(OpGreater, 50000)}, false},
		{"fdv below less-than", dexscreener.Pair{Fdv: 40000}, Set{Fdv: Threshold(OpLess, 50000)}, true},
		{"missing fdv fails active filter", dexscreener.Pair{}, Set{Fdv: Threshold(OpLess, 50000)}, false},
		{"liquidity above", pairWithLiquidity(15000), Set{Liquidity: Threshold(OpGreater, 10000)}, true},
		{"liquidity below", pairWithLiquidity(5000), Set{Liquidity: Threshold(OpGreater, 10000)}, false},
		{"nil liquidity object fails", dexscreener.Pair{Fdv: 1}, Set{Liquidity: Threshold(OpGreater, 10000)}, false},
		{"volume buy", dexscreener.Pair{Volume: dexscreener.Volume{Buy: 2000}}, Set{VolumeBuy: Threshold(OpGreater, 1000)}, true},
		{"volume h24", dexscreener.Pair{Volume: dexscreener.Volume{H24: 500}}, Set{Volume: Threshold(OpLess, 1000)}, true},
		{"price parsed from string", dexscreener.Pair{PriceUsd: "0.5"}, Set{Price: Threshold(OpLess, 1)}, true},
		{"unparseable price fails", dexscreener.Pair{PriceUsd: "n/a"}, Set{Price: Threshold(OpLess, 1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.pair, tt.set))
		})
	}
}

func TestApproximateEquality(t *testing.T) {
	set := Set{Fdv: Threshold(OpEqual, 100000)}

	assert.True(t, Matches(dexscreener.Pair{Fdv: 100000}, set))
	assert.True(t, Matches(dexscreener.Pair{Fdv: 95000}, set))
	assert.True(t, Matches(dexscreener.Pair{Fdv: 109000}, set))
	// the band is open: exactly 10% off is out
	assert.False(t, Matches(dexscreener.Pair{Fdv: 110000}, set))
	assert.False(t, Matches(dexscreener.Pair{Fdv: 90000}, set))
	assert.False(t, Matches(dexscreener.Pair{Fdv: 150000}, set))
}

func TestRangeIsInclusive(t *testing.T) {
	set := Set{Liquidity: Range(10000, 50000)}

	assert.True(t, Matches(pairWithLiquidity(10000), set))
	assert.True(t, Matches(pairWithLiquidity(50000), set))
	assert.True(t, Matches(pairWithLiquidity(30000), set))
	assert.False(t, Matches(pairWithLiquidity(9999), set))
	assert.False(t, Matches(pairWithLiquidity(50001), set))
}

func TestChainSubstringMatch(t *testing.T) {
	tests := []struct {
		chainID string
		filter  string
		want    bool
	}{
		{"solana", "SOL", true},
		{"BNB Chain", "bnb", true},
		{"ethereum", "ETH", true},
		{"ton", "TON", true},
		{"solana", "eth", false},
		{"", "sol", false},
	}
	for _, tt := range tests {
		pair := dexscreener.Pair{ChainID: tt.chainID, Fdv: 1}
		assert.Equal(t, tt.want, Matches(pair, Set{Chain: tt.filter}), "chain %q filter %q", tt.chainID, tt.filter)
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	pairs := []dexscreener.Pair{
		pairWithLiquidity(5000),
		pairWithLiquidity(15000),
		pairWithLiquidity(0),
		pairWithLiquidity(25000),
	}
	got := Apply(pairs, Set{Liquidity: Threshold(OpGreater, 10000)})

	assert.Len(t, got, 2)
	assert.Equal(t, 15000.0, got[0].Liquidity.USD)
	assert.Equal(t, 25000.0, got[1].Liquidity.USD)
}

func TestConstraintString(t *testing.T) {
	assert.Equal(t, ">50.0K", Threshold(OpGreater, 50000).String())
	assert.Equal(t, "<1.5M", Threshold(OpLess, 1_500_000).String())
	assert.Equal(t, "10.0K - 50.0K", Range(10000, 50000).String())
	assert.Equal(t, "=500", Threshold(OpEqual, 500).String())
}

func TestSetGetAndSetConstraint(t *testing.T) {
	var s Set
	assert.True(t, s.IsEmpty())

	assert.True(t, s.SetConstraint(KeyFdv, Threshold(OpGreater, 1000)))
	assert.False(t, s.SetConstraint("bogus", Threshold(OpGreater, 1000)))

	assert.NotNil(t, s.Get(KeyFdv))
	assert.Nil(t, s.Get(KeyLiquidity))
	assert.Equal(t, 1, s.Count())
}
