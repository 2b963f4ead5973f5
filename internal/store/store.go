package store

// Package store owns all per-conversation state: filters, saved alert
// words, the last search session and the notified set. In-memory state
// is authoritative; persistence is best-effort and debounced (dirty
// flag + periodic flush), so a crash may lose the most recent writes.

import (
	"errors"
	"strings"
	"sync"

	"wordspotr/internal/features/filters"
	"wordspotr/internal/features/search"
)

// MaxSavedWords caps the alert word list per conversation.
const MaxSavedWords = 5

var (
	// ErrNoWords is returned when a word submission is empty after trimming.
	ErrNoWords = errors.New("no valid words provided")
	// ErrTooManyWords is returned when a submission exceeds MaxSavedWords.
	ErrTooManyWords = errors.New("too many words")
)

// Conversation holds everything the bot remembers about one chat.
// Session fields (Results, PageMessageIDs, AwaitingCustomRange) are
// never persisted.
type Conversation struct {
	Filters        filters.Set
	SavedWords     []string
	LastSearch     string
	TokensFound    int
	AlertsReceived int

	Results             *search.ResultSet
	PageMessageIDs      []int
	AwaitingCustomRange string // filter key expecting a "min X max Y" reply
}

// Store is a concurrency-safe keyed state container. The bot update
// loop and the alert scanner goroutine interleave on it; last writer
// wins, no transactional guarantee.
type Store struct {
	mu       sync.Mutex
	dataDir  string
	convs    map[int64]*Conversation
	notified map[string]bool
	dirty    bool
}

// New creates an empty store persisting under dataDir.
func New(dataDir string) *Store {
	return &Store{
		dataDir:  dataDir,
		convs:    make(map[int64]*Conversation),
		notified: make(map[string]bool),
	}
}

// conv returns the conversation for chatID, creating it lazily.
// Callers must hold s.mu.
func (s *Store) conv(chatID int64) *Conversation {
	c, ok := s.convs[chatID]
	if !ok {
		c = &Conversation{}
		s.convs[chatID] = c
	}
	return c
}

// Filters returns a copy of the conversation's filter set.
func (s *Store) Filters(chatID int64) filters.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv(chatID).Filters
}

// SetConstraint stores one numeric constraint under the given key.
func (s *Store) SetConstraint(chatID int64, key string, c *filters.Constraint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.conv(chatID).Filters.SetConstraint(key, c)
	if ok {
		s.dirty = true
	}
	return ok
}

// SetChain stores the chain substring filter.
func (s *Store) SetChain(chatID int64, chain string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(chatID).Filters.Chain = chain
	s.dirty = true
}

// ClearFilters drops every constraint for the conversation.
func (s *Store) ClearFilters(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(chatID).Filters = filters.Set{}
	s.dirty = true
}

// SavedWords returns a copy of the conversation's alert words.
func (s *Store) SavedWords(chatID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	words := s.conv(chatID).SavedWords
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// SetSavedWords replaces the word list. Words are trimmed and
// lowercased; an invalid submission leaves the previous list untouched.
func (s *Store) SetSavedWords(chatID int64, words []string) error {
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		cleaned = append(cleaned, w)
	}
	if len(cleaned) == 0 {
		return ErrNoWords
	}
	if len(cleaned) > MaxSavedWords {
		return ErrTooManyWords
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(chatID).SavedWords = cleaned
	s.dirty = true
	return nil
}

// ClearSavedWords empties the word list.
func (s *Store) ClearSavedWords(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(chatID).SavedWords = nil
	s.dirty = true
}

// WordsSnapshot returns the saved words of every conversation that has
// any, copied so the scanner can iterate without holding the lock.
func (s *Store) WordsSnapshot() map[int64][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64][]string)
	for chatID, c := range s.convs {
		if len(c.SavedWords) == 0 {
			continue
		}
		words := make([]string, len(c.SavedWords))
		copy(words, c.SavedWords)
		out[chatID] = words
	}
	return out
}

// MarkNotified records the (conversation, token) pair. It returns false
// when the pair was already marked, enforcing at-most-once alerts.
func (s *Store) MarkNotified(chatID int64, address string) bool {
	key := notifiedKey(chatID, address)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notified[key] {
		return false
	}
	s.notified[key] = true
	s.dirty = true
	return true
}

// Results returns the current search session, nil when none exists.
func (s *Store) Results(chatID int64) *search.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv(chatID).Results
}

// SetResults replaces the search session and records the query text.
func (s *Store) SetResults(chatID int64, rs *search.ResultSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.conv(chatID)
	c.Results = rs
	if rs != nil {
		c.LastSearch = rs.Query
		c.TokensFound += len(rs.Pairs)
	}
}

// SetPage moves the pagination cursor of the current session.
func (s *Store) SetPage(chatID int64, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rs := s.conv(chatID).Results; rs != nil {
		rs.Page = page
	}
}

// PageMessageIDs returns the message ids of the currently rendered page.
func (s *Store) PageMessageIDs(chatID int64) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.conv(chatID).PageMessageIDs
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// SetPageMessageIDs replaces the rendered-page message ids.
func (s *Store) SetPageMessageIDs(chatID int64, ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(chatID).PageMessageIDs = ids
}

// AwaitingCustomRange returns the filter key waiting for a range reply,
// empty when none.
func (s *Store) AwaitingCustomRange(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv(chatID).AwaitingCustomRange
}

// SetAwaitingCustomRange marks (or clears, with "") the pending key.
func (s *Store) SetAwaitingCustomRange(chatID int64, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(chatID).AwaitingCustomRange = key
}

// IncAlerts bumps the conversation's alert counter.
func (s *Store) IncAlerts(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(chatID).AlertsReceived++
}

// Snapshot returns a copy of the conversation's durable fields for
// stats rendering.
func (s *Store) Snapshot(chatID int64) Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.conv(chatID)
	words := make([]string, len(c.SavedWords))
	copy(words, c.SavedWords)
	return Conversation{
		Filters:        c.Filters,
		SavedWords:     words,
		LastSearch:     c.LastSearch,
		TokensFound:    c.TokensFound,
		AlertsReceived: c.AlertsReceived,
	}
}
