package filters

// Package filters holds the per-conversation search constraints and the
// matching predicate applied to aggregated pairs.

import (
	"fmt"
	"strconv"
	"strings"

	"wordspotr/internal/clients_api/dexscreener"
)

// Op is a comparison operator for a numeric constraint.
type Op string

const (
	OpGreater Op = ">"
	OpLess    Op = "<"
	OpEqual   Op = "="
)

// Constraint is one numeric filter: either an operator with a threshold
// or an inclusive min/max range. The range form is active when both Min
// and Max are set.
type Constraint struct {
	Op    Op       `json:"op,omitempty"`
	Value float64  `json:"value,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Range builds an inclusive range constraint.
func Range(min, max float64) *Constraint {
	return &Constraint{Min: &min, Max: &max}
}

// Threshold builds an operator constraint.
func Threshold(op Op, value float64) *Constraint {
	return &Constraint{Op: op, Value: value}
}

// IsRange reports whether the constraint is the min/max form.
func (c *Constraint) IsRange() bool {
	return c != nil && c.Min != nil && c.Max != nil
}

// String renders the constraint for user-facing filter summaries.
func (c *Constraint) String() string {
	if c == nil {
		return ""
	}
	if c.IsRange() {
		return fmt.Sprintf("%s - %s", formatAmount(*c.Min), formatAmount(*c.Max))
	}
	return fmt.Sprintf("%s%s", c.Op, formatAmount(c.Value))
}

func formatAmount(v float64) string {
	switch {
	case v >= 1_000_000:
		return strconv.FormatFloat(v/1_000_000, 'f', 1, 64) + "M"
	case v >= 1_000:
		return strconv.FormatFloat(v/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Set is the collection of active constraints for one conversation.
// Unset members impose no restriction.
type Set struct {
	Fdv        *Constraint `json:"fdv,omitempty"`
	Liquidity  *Constraint `json:"liquidity,omitempty"`
	VolumeBuy  *Constraint `json:"volumeBuy,omitempty"`
	VolumeSell *Constraint `json:"volumeSell,omitempty"`
	Price      *Constraint `json:"price,omitempty"`
	Volume     *Constraint `json:"volume,omitempty"`
	Chain      string      `json:"blockchain,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (s Set) IsEmpty() bool {
	return s.Fdv == nil && s.Liquidity == nil && s.VolumeBuy == nil &&
		s.VolumeSell == nil && s.Price == nil && s.Volume == nil && s.Chain == ""
}

// Count returns the number of active constraints.
func (s Set) Count() int {
	n := 0
	for _, c := range []*Constraint{s.Fdv, s.Liquidity, s.VolumeBuy, s.VolumeSell, s.Price, s.Volume} {
		if c != nil {
			n++
		}
	}
	if s.Chain != "" {
		n++
	}
	return n
}

// Matches reports whether the pair passes every set constraint.
// A missing or zero underlying field fails an active numeric constraint.
func Matches(pair dexscreener.Pair, s Set) bool {
	if s.Fdv != nil && !matchNumeric(pair.Fdv, s.Fdv) {
		return false
	}
	if s.Liquidity != nil {
		var liq float64
		if pair.Liquidity != nil {
			liq = pair.Liquidity.USD
		}
		if !matchNumeric(liq, s.Liquidity) {
			return false
		}
	}
	if s.VolumeBuy != nil && !matchNumeric(pair.Volume.Buy, s.VolumeBuy) {
		return false
	}
	if s.VolumeSell != nil && !matchNumeric(pair.Volume.Sell, s.VolumeSell) {
		return false
	}
	if s.Volume != nil && !matchNumeric(pair.Volume.H24, s.Volume) {
		return false
	}
	if s.Price != nil {
		price, err := strconv.ParseFloat(pair.PriceUsd, 64)
		if err != nil {
			price = 0
		}
		if !matchNumeric(price, s.Price) {
			return false
		}
	}
	if s.Chain != "" {
		chain := strings.ToLower(pair.ChainID)
		if !strings.Contains(chain, strings.ToLower(s.Chain)) {
			return false
		}
	}
	return true
}

func matchNumeric(value float64, c *Constraint) bool {
	if value == 0 {
		// no data for this field, token excluded while the filter is set
		return false
	}
	if c.IsRange() {
		return value >= *c.Min && value <= *c.Max
	}
	switch c.Op {
	case OpGreater:
		return value > c.Value
	case OpLess:
		return value < c.Value
	case OpEqual:
		// approximate-equality band: source fields fluctuate continuously
		diff := value - c.Value
		if diff < 0 {
			diff = -diff
		}
		return diff < 0.1*c.Value
	}
	return true
}

// Apply filters pairs against the set, preserving order.
func Apply(pairs []dexscreener.Pair, s Set) []dexscreener.Pair {
	if s.IsEmpty() {
		return pairs
	}
	out := make([]dexscreener.Pair, 0, len(pairs))
	for _, pair := range pairs {
		if Matches(pair, s) {
			out = append(out, pair)
		}
	}
	return out
}
