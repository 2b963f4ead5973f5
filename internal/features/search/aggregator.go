package search

// Package search aggregates DexScreener results across terms and slices
// them into pages for one conversation.

import (
	"context"

	"wordspotr/internal/clients_api/dexscreener"
	"wordspotr/internal/infra/log"

	"go.uber.org/zap"
)

// Searcher is the slice of the API client the aggregator needs.
type Searcher interface {
	Search(ctx context.Context, term string) ([]dexscreener.Pair, error)
}

// Aggregate issues one search per term and merges the results,
// deduplicated by base token address in first-seen order. A failed term
// is logged and skipped; partial results are acceptable.
func Aggregate(ctx context.Context, s Searcher, terms []string) []dexscreener.Pair {
	var all []dexscreener.Pair
	for _, term := range terms {
		pairs, err := s.Search(ctx, term)
		if err != nil {
			log.LogWarn("Search term failed, skipping",
				zap.String("term", term),
				zap.Error(err))
			continue
		}
		all = append(all, pairs...)
	}

	return Deduplicate(all)
}

// Deduplicate keeps the first occurrence of each base token address.
// Pairs without an address are dropped.
func Deduplicate(pairs []dexscreener.Pair) []dexscreener.Pair {
	seen := make(map[string]struct{}, len(pairs))
	unique := make([]dexscreener.Pair, 0, len(pairs))
	for _, pair := range pairs {
		addr := pair.BaseToken.Address
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		unique = append(unique, pair)
	}
	return unique
}
