package textnorm

// Package textnorm splits a free-text query into stemmed search terms
// and inline filter expressions like "fdv>50000".

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/kljensen/snowball/english"

	"wordspotr/internal/features/filters"
)

// ErrEmptyQuery signals that the input contained no usable text.
var ErrEmptyQuery = errors.New("no query provided")

// Query is the normalized form of one search input.
type Query struct {
	Terms   []string    // stemmed phrase words, original order
	Filters filters.Set // constraints parsed from inline expressions
}

// HasFilters reports whether any inline expression parsed successfully.
func (q Query) HasFilters() bool {
	return !q.Filters.IsEmpty()
}

var exprRe = regexp.MustCompile(`(?i)(fdv|liquidity|price|volume)([<>=])(\d+(?:\.\d+)?)`)

var wordRe = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Parse normalizes raw input. Tokens containing >, < or = are treated
// as filter expressions; malformed ones are silently dropped. The rest
// form the search phrase, tokenized into words and reduced to stems.
func Parse(input string) (Query, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}, ErrEmptyQuery
	}

	var q Query
	var phrase []string
	for _, tok := range strings.Fields(input) {
		if strings.ContainsAny(tok, "<>=") {
			parseExpression(tok, &q.Filters)
			continue
		}
		phrase = append(phrase, tok)
	}

	for _, word := range wordRe.FindAllString(strings.Join(phrase, " "), -1) {
		stem := english.Stem(word, true)
		if stem == "" {
			continue
		}
		q.Terms = append(q.Terms, stem)
	}

	return q, nil
}

func parseExpression(tok string, set *filters.Set) {
	m := exprRe.FindStringSubmatch(tok)
	if m == nil {
		return
	}
	value, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return
	}
	key := normalizeKey(strings.ToLower(m[1]))
	set.SetConstraint(key, filters.Threshold(filters.Op(m[2]), value))
}

func normalizeKey(name string) string {
	switch name {
	case "fdv":
		return filters.KeyFdv
	case "liquidity":
		return filters.KeyLiquidity
	case "price":
		return filters.KeyPrice
	case "volume":
		return filters.KeyVolume
	}
	return name
}
