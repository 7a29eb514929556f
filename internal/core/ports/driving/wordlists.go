package driving

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// WordListService manages persisted word lists.
type WordListService interface {
	// History lists stored word-list metadata matching the filter,
	// newest first.
	History(ctx context.Context, filter domain.WordListFilter) ([]domain.WordListRecord, error)

	// Get loads one stored list including its serialised content.
	Get(ctx context.Context, id int64) (*domain.WordListRecord, error)

	// Export writes a stored list's serialised content to path. The
	// output is byte-identical across exports of the same list.
	Export(ctx context.Context, id int64, path string) error

	// Delete removes a stored list.
	Delete(ctx context.Context, id int64) error
}
