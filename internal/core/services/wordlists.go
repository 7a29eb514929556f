package services

import (
	"context"
	"fmt"
	"os"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
)

// Ensure WordListService implements the interface.
var _ driving.WordListService = (*WordListService)(nil)

// WordListService manages persisted word lists.
type WordListService struct {
	listStore driven.WordListStore
}

// NewWordListService creates a new word-list service.
func NewWordListService(listStore driven.WordListStore) *WordListService {
	return &WordListService{listStore: listStore}
}

// History lists stored word-list metadata matching the filter, newest
// first.
func (s *WordListService) History(ctx context.Context, filter domain.WordListFilter) ([]domain.WordListRecord, error) {
	if s.listStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.listStore.List(ctx, filter)
}

// Get loads one stored list including its serialised content.
func (s *WordListService) Get(ctx context.Context, id int64) (*domain.WordListRecord, error) {
	if s.listStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.listStore.Get(ctx, id)
}

// Export writes a stored list's serialised content to path. The stored
// bytes are written as-is, so exporting the same list twice yields
// identical files.
func (s *WordListService) Export(ctx context.Context, id int64, path string) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(record.ListJSON), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Delete removes a stored list.
func (s *WordListService) Delete(ctx context.Context, id int64) error {
	if s.listStore == nil {
		return domain.ErrNotImplemented
	}
	return s.listStore.Delete(ctx, id)
}
