package bot

import (
	"testing"

	"wordspotr/internal/features/filters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMenuPayloads(t *testing.T) {
	tests := []struct {
		data string
		kind actionKind
	}{
		{cbMenuMain, actionMainMenu},
		{cbMenuSearch, actionSearchMenu},
		{cbMenuFilters, actionFiltersMenu},
		{cbMenuWords, actionWordsMenu},
		{cbMenuStats, actionStatsMenu},
		{cbMenuHelp, actionHelpMenu},
		{cbFilterDone, actionFilterDone},
		{cbFilterBack, actionFilterBack},
		{cbFilterChain, actionChainMenu},
		{cbClearFilters, actionClearFilters},
		{cbViewWords, actionViewWords},
		{cbAddWords, actionWordsHelp},
		{cbWordsHelp, actionWordsHelp},
		{cbClearWords, actionClearWords},
		{cbConfirmClearWords, actionConfirmClearWords},
	}
	for _, tt := range tests {
		action, ok := decodeCallback(tt.data)
		require.True(t, ok, tt.data)
		assert.Equal(t, tt.kind, action.Kind, tt.data)
	}
}

func TestDecodeFilterSelect(t *testing.T) {
	action, ok := decodeCallback(cbSetFilterPrefix + filters.KeyLiquidity)
	require.True(t, ok)
	assert.Equal(t, actionFilterSelect, action.Kind)
	assert.Equal(t, filters.KeyLiquidity, action.FilterKey)

	_, ok = decodeCallback(cbSetFilterPrefix + "bogus")
	assert.False(t, ok)
}

func TestDecodeNumPreset(t *testing.T) {
	action, ok := decodeCallback(encodeNumPreset(filters.KeyFdv, "gt", 50000))
	require.True(t, ok)
	assert.Equal(t, actionNumPreset, action.Kind)
	assert.Equal(t, filters.KeyFdv, action.FilterKey)
	assert.Equal(t, filters.OpGreater, action.Op)
	assert.Equal(t, 50000.0, action.Value)

	action, ok = decodeCallback(encodeNumPreset(filters.KeyVolumeSell, "lt", 10000))
	require.True(t, ok)
	assert.Equal(t, filters.OpLess, action.Op)
}

func TestDecodeNumCustom(t *testing.T) {
	action, ok := decodeCallback(cbNumFilterPrefix + filters.KeyLiquidity + "_custom")
	require.True(t, ok)
	assert.Equal(t, actionNumCustom, action.Kind)
	assert.Equal(t, filters.KeyLiquidity, action.FilterKey)
}

func TestDecodeChain(t *testing.T) {
	action, ok := decodeCallback(cbChainPrefix + "SOL")
	require.True(t, ok)
	assert.Equal(t, actionChooseChain, action.Kind)
	assert.Equal(t, "SOL", action.Chain)

	_, ok = decodeCallback(cbChainPrefix)
	assert.False(t, ok)
}

func TestDecodePage(t *testing.T) {
	action, ok := decodeCallback(encodePage(3))
	require.True(t, ok)
	assert.Equal(t, actionPage, action.Kind)
	assert.Equal(t, 3, action.Page)

	for _, data := range []string{"page_0", "page_-1", "page_abc"} {
		_, ok := decodeCallback(data)
		assert.False(t, ok, data)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"",
		"totally_unknown",
		"numfilter_fdv_badop_5",
		"numfilter_bogus_gt_5",
		"numfilter_fdv_gt_notanumber",
	} {
		_, ok := decodeCallback(data)
		assert.False(t, ok, data)
	}
}

func TestCustomRangeRegexp(t *testing.T) {
	assert.True(t, customRangeRe.MatchString("min 10000 max 50000"))
	assert.True(t, customRangeRe.MatchString("MIN 0.5 MAX 2.5"))
	assert.False(t, customRangeRe.MatchString("10000 50000"))
	assert.False(t, customRangeRe.MatchString("min max"))
	assert.False(t, customRangeRe.MatchString("max 50000 min 10000"))
}
