package alerts

// Package alerts implements the recurring scan of the token feed
// against every conversation's saved words.

import (
	"context"
	"strings"
	"time"

	"wordspotr/internal/clients_api/dexscreener"
	"wordspotr/internal/infra/log"
	"wordspotr/internal/store"

	"go.uber.org/zap"
)

// FeedFetcher supplies the current token feed.
type FeedFetcher interface {
	LatestTokens(ctx context.Context) ([]dexscreener.FeedToken, error)
}

// Notifier dispatches one alert message to a conversation. All matched
// words for a token go out in a single message.
type Notifier interface {
	Notify(chatID int64, token dexscreener.FeedToken, matched []string) error
}

// Scanner tests feed tokens against saved words and dispatches
// at-most-once alerts per (conversation, token) pair.
type Scanner struct {
	feed     FeedFetcher
	store    *store.Store
	notifier Notifier
	delay    time.Duration // spacing between dispatches
}

// New builds a scanner. delay throttles consecutive dispatches to stay
// under the messaging platform's burst limits.
func New(feed FeedFetcher, st *store.Store, notifier Notifier, delay time.Duration) *Scanner {
	return &Scanner{feed: feed, store: st, notifier: notifier, delay: delay}
}

// MatchWords returns every saved word that is a case-insensitive
// substring of the token name or symbol.
func MatchWords(name, symbol string, words []string) []string {
	name = strings.ToLower(name)
	symbol = strings.ToLower(symbol)

	var matched []string
	for _, word := range words {
		if word == "" {
			continue
		}
		if strings.Contains(name, word) || strings.Contains(symbol, word) {
			matched = append(matched, word)
		}
	}
	return matched
}

// RunOnce performs a single scan pass and returns the number of alerts
// dispatched. Feed errors and empty feeds end the run with no side
// effects. One conversation's dispatch failure never blocks the rest.
func (s *Scanner) RunOnce(ctx context.Context) int {
	tokens, err := s.feed.LatestTokens(ctx)
	if err != nil {
		log.LogWarn("Failed to fetch token feed", zap.Error(err))
		return 0
	}
	if len(tokens) == 0 {
		log.LogDebug("Token feed is empty")
		return 0
	}

	wordsByChat := s.store.WordsSnapshot()
	if len(wordsByChat) == 0 {
		return 0
	}

	alertsSent := 0
	for chatID, words := range wordsByChat {
		for _, token := range tokens {
			if ctx.Err() != nil {
				return alertsSent
			}

			matched := MatchWords(token.Name, token.Symbol, words)
			if len(matched) == 0 {
				continue
			}

			// at most one alert per (conversation, token) ever
			if !s.store.MarkNotified(chatID, token.Address) {
				continue
			}

			if err := s.notifier.Notify(chatID, token, matched); err != nil {
				log.LogError("Failed to send alert",
					zap.Int64("chatID", chatID),
					zap.String("address", token.Address),
					zap.Error(err))
				continue
			}

			s.store.IncAlerts(chatID)
			alertsSent++

			if s.delay > 0 {
				select {
				case <-ctx.Done():
					return alertsSent
				case <-time.After(s.delay):
				}
			}
		}
	}

	if alertsSent > 0 {
		log.LogSuccess("Token alerts sent", zap.Int("count", alertsSent))
	}
	return alertsSent
}

// Run drives RunOnce on a fixed interval, with one initial pass shortly
// after startup.
func (s *Scanner) Run(ctx context.Context, interval, initialDelay time.Duration) {
	log.LogInfo("Starting alert scanner",
		zap.Duration("interval", interval),
		zap.Duration("initialDelay", initialDelay))

	select {
	case <-ctx.Done():
		return
	case <-time.After(initialDelay):
	}
	s.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
