package search

import "wordspotr/internal/clients_api/dexscreener"

// PageSize is the fixed number of tokens per result page.
const PageSize = 5

// ResultSet is the stored outcome of one search session. The pair list
// is immutable for the life of the session; a new search replaces the
// whole set.
type ResultSet struct {
	Query string
	Pairs []dexscreener.Pair
	Page  int // current page, 1-based
}

// NewResultSet stores filtered pairs with the cursor reset to page 1.
func NewResultSet(query string, pairs []dexscreener.Pair) *ResultSet {
	return &ResultSet{Query: query, Pairs: pairs, Page: 1}
}

// TotalPages returns ceil(len/PageSize); zero for an empty set.
func (r *ResultSet) TotalPages() int {
	if r == nil || len(r.Pairs) == 0 {
		return 0
	}
	return (len(r.Pairs) + PageSize - 1) / PageSize
}

// PagePairs returns the slice for the given 1-based page along with the
// 0-based index of its first element. An out-of-range page yields nil.
func (r *ResultSet) PagePairs(page int) ([]dexscreener.Pair, int) {
	if r == nil || page < 1 || page > r.TotalPages() {
		return nil, 0
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(r.Pairs) {
		end = len(r.Pairs)
	}
	return r.Pairs[start:end], start
}

// HasPrev reports whether a previous page exists.
func (r *ResultSet) HasPrev() bool { return r != nil && r.Page > 1 }

// HasNext reports whether a next page exists.
func (r *ResultSet) HasNext() bool { return r != nil && r.Page < r.TotalPages() }
