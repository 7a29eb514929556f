package driven

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// WordListStore persists generated word lists.
type WordListStore interface {
	// Save inserts a new word list and returns its assigned id.
	Save(ctx context.Context, record *domain.WordListRecord) (int64, error)

	// Get retrieves a word list by id, including its serialised content.
	// Returns domain.ErrNotFound if no such list is stored.
	Get(ctx context.Context, id int64) (*domain.WordListRecord, error)

	// List returns word lists matching the filter, newest first. The
	// serialised content is omitted; use Get for the full record.
	List(ctx context.Context, filter domain.WordListFilter) ([]domain.WordListRecord, error)

	// Delete removes a stored word list.
	// Returns domain.ErrNotFound if no such list is stored.
	Delete(ctx context.Context, id int64) error
}
