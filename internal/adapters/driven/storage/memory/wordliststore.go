package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
)

// Ensure WordListStore implements the interface.
var _ driven.WordListStore = (*WordListStore)(nil)

// WordListStore is an in-memory implementation of driven.WordListStore.
type WordListStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]domain.WordListRecord
}

// NewWordListStore creates a new in-memory word-list store.
func NewWordListStore() *WordListStore {
	return &WordListStore{
		nextID:  1,
		records: make(map[int64]domain.WordListRecord),
	}
}

// Save inserts a new word list and returns its assigned id.
func (s *WordListStore) Save(_ context.Context, record *domain.WordListRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *record
	stored.ID = s.nextID
	s.nextID++
	s.records[stored.ID] = stored
	return stored.ID, nil
}

// Get retrieves a word list by id.
func (s *WordListStore) Get(_ context.Context, id int64) (*domain.WordListRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns word lists matching the filter, newest first, without
// their serialised content.
func (s *WordListStore) List(_ context.Context, filter domain.WordListFilter) ([]domain.WordListRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.WordListRecord
	for _, record := range s.records {
		if filter.BookName != "" && record.BookName != filter.BookName {
			continue
		}
		if filter.AuthorName != "" && record.AuthorName != filter.AuthorName {
			continue
		}
		if !filter.Since.IsZero() && record.CreateTime.Before(filter.Since) {
			continue
		}
		record.ListJSON = ""
		result = append(result, record)
	}

	sort.Slice(result, func(a, b int) bool {
		if !result[a].CreateTime.Equal(result[b].CreateTime) {
			return result[a].CreateTime.After(result[b].CreateTime)
		}
		return result[a].ID > result[b].ID
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Delete removes a stored word list.
func (s *WordListStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
