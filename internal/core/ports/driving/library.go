package driving

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// LibraryService manages the stored-book library. Segmenting is the
// expensive step, so imported books are stored segmented and reused by
// every later analysis.
type LibraryService interface {
	// ImportFile parses, segments and stores an ebook file.
	ImportFile(ctx context.Context, path string, mode domain.SegmentationMode) (*domain.Book, error)

	// Books lists the identities of stored books.
	Books(ctx context.Context) ([]domain.BookRef, error)

	// Book loads one stored book.
	Book(ctx context.Context, title, author string) (*domain.Book, error)

	// Remove deletes a stored book.
	Remove(ctx context.Context, title, author string) error
}
