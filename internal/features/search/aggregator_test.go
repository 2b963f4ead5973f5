package search

import (
	"context"
	"errors"
	"testing"

	"wordspotr/internal/clients_api/dexscreener"

	"github.com/stretchr/testify/assert"
)

type fakeSearcher struct {
	results map[string][]dexscreener.Pair
	err     map[string]error
	calls   []string
}

func (f *fakeSearcher) Search(ctx context.Context, term string) ([]dexscreener.Pair, error) {
	f.calls = append(f.calls, term)
	if err := f.err[term]; err != nil {
		return nil, err
	}
	return f.results[term], nil
}

func pair(addr string) dexscreener.Pair {
	return dexscreener.Pair{BaseToken: dexscreener.Token{Address: addr}}
}

func TestAggregateMergesAndDeduplicates(t *testing.T) {
	s := &fakeSearcher{results: map[string][]dexscreener.Pair{
		"moon":   {pair("A"), pair("B"), pair("C")},
		"rocket": {pair("B"), pair("D")},
	}}

	got := Aggregate(context.Background(), s, []string{"moon", "rocket"})

	assert.Equal(t, []string{"moon", "rocket"}, s.calls)
	addrs := make([]string, len(got))
	for i, p := range got {
		addrs[i] = p.BaseToken.Address
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, addrs)
}

func TestAggregateSkipsFailedTerms(t *testing.T) {
	s := &fakeSearcher{
		results: map[string][]dexscreener.Pair{"ok": {pair("A")}},
		err:     map[string]error{"bad": errors.New("upstream down")},
	}

	got := Aggregate(context.Background(), s, []string{"bad", "ok"})

	assert.Len(t, got, 1)
	assert.Equal(t, "A", got[0].BaseToken.Address)
}

func TestDeduplicateDropsEmptyAddresses(t *testing.T) {
	got := Deduplicate([]dexscreener.Pair{pair(""), pair("A"), pair(""), pair("A")})

	assert.Len(t, got, 1)
	assert.Equal(t, "A", got[0].BaseToken.Address)
}
