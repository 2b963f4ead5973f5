package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"wordspotr/internal/features/filters"
	"wordspotr/internal/infra/log"

	"go.uber.org/zap"
)

// Three independent keyed records, each a flat JSON mapping.
const (
	filtersFile  = "filters.json"
	wordsFile    = "words.json"
	notifiedFile = "notified.json"
)

func notifiedKey(chatID int64, address string) string {
	return strconv.FormatInt(chatID, 10) + "_" + address
}

// Load reads persisted state from the data directory. Missing files
// yield empty state; a corrupt file is logged and skipped so the bot
// still starts.
func (s *Store) Load() error {
	var filtersByChat map[string]filters.Set
	if err := readJSONFile(filepath.Join(s.dataDir, filtersFile), &filtersByChat); err != nil {
		log.LogWarn("Failed to load filters state, starting empty", zap.Error(err))
	}

	var wordsByChat map[string][]string
	if err := readJSONFile(filepath.Join(s.dataDir, wordsFile), &wordsByChat); err != nil {
		log.LogWarn("Failed to load words state, starting empty", zap.Error(err))
	}

	var notified map[string]bool
	if err := readJSONFile(filepath.Join(s.dataDir, notifiedFile), &notified); err != nil {
		log.LogWarn("Failed to load notified state, starting empty", zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, set := range filtersByChat {
		chatID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		s.conv(chatID).Filters = set
	}
	for key, words := range wordsByChat {
		chatID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		s.conv(chatID).SavedWords = words
	}
	if notified != nil {
		s.notified = notified
	}

	log.LogInfo("State loaded",
		zap.Int("conversations", len(s.convs)),
		zap.Int("notified", len(s.notified)))
	return nil
}

// Flush writes all durable records if anything changed since the last
// flush. Write errors are returned but in-memory state stays
// authoritative.
func (s *Store) Flush() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}

	filtersByChat := make(map[string]filters.Set)
	wordsByChat := make(map[string][]string)
	for chatID, c := range s.convs {
		key := strconv.FormatInt(chatID, 10)
		if !c.Filters.IsEmpty() {
			filtersByChat[key] = c.Filters
		}
		if len(c.SavedWords) > 0 {
			words := make([]string, len(c.SavedWords))
			copy(words, c.SavedWords)
			wordsByChat[key] = words
		}
	}
	notified := make(map[string]bool, len(s.notified))
	for k, v := range s.notified {
		notified[k] = v
	}
	s.dirty = false
	s.mu.Unlock()

	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := writeJSONFile(filepath.Join(s.dataDir, filtersFile), filtersByChat); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(s.dataDir, wordsFile), wordsByChat); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(s.dataDir, notifiedFile), notified); err != nil {
		return err
	}

	log.LogDebug("State flushed",
		zap.Int("filters", len(filtersByChat)),
		zap.Int("words", len(wordsByChat)),
		zap.Int("notified", len(notified)))
	return nil
}

// RunFlusher periodically flushes dirty state until ctx is done, then
// performs one final flush.
func (s *Store) RunFlusher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.Flush(); err != nil {
				log.LogError("Final state flush failed", zap.Error(err))
			}
			return
		case <-ticker.C:
			if err := s.Flush(); err != nil {
				log.LogError("State flush failed", zap.Error(err))
			}
		}
	}
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s: %w", tempPath, err)
	}
	return nil
}
