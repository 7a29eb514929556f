package memory

import (
	"context"
	"sync"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
)

// Ensure VocabStore implements the interface.
var _ driven.VocabStore = (*VocabStore)(nil)

// VocabStore is an in-memory implementation of driven.VocabStore.
type VocabStore struct {
	mu     sync.RWMutex
	manual map[string]struct{}
	synced map[string]domain.WordStatus
}

// NewVocabStore creates a new in-memory vocabulary store.
func NewVocabStore() *VocabStore {
	return &VocabStore{
		manual: make(map[string]struct{}),
		synced: make(map[string]domain.WordStatus),
	}
}

// ListManual returns every manually added word.
func (s *VocabStore) ListManual(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words := make([]string, 0, len(s.manual))
	for w := range s.manual {
		words = append(words, w)
	}
	return words, nil
}

// AddManual inserts manual words, ignoring those already present.
func (s *VocabStore) AddManual(_ context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range words {
		s.manual[w] = struct{}{}
	}
	return nil
}

// DeleteManual removes manual words.
func (s *VocabStore) DeleteManual(_ context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range words {
		delete(s.manual, w)
	}
	return nil
}

// ListSynced returns every synced entry.
func (s *VocabStore) ListSynced(_ context.Context) ([]domain.KnownWordEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.KnownWordEntry, 0, len(s.synced))
	for w, status := range s.synced {
		entries = append(entries, domain.KnownWordEntry{
			Word:   w,
			Source: domain.SourceSynced,
			Status: status,
		})
	}
	return entries, nil
}

// UpsertSynced inserts synced entries or refreshes their status.
func (s *VocabStore) UpsertSynced(_ context.Context, entries []domain.KnownWordEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.synced[e.Word] = e.Status
	}
	return nil
}

// MarkSyncedMissing flips the given synced words to unknown status.
func (s *VocabStore) MarkSyncedMissing(_ context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range words {
		if _, ok := s.synced[w]; ok {
			s.synced[w] = domain.StatusUnknown
		}
	}
	return nil
}
