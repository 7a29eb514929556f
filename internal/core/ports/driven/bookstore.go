package driven

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// BookStore persists segmented books, keyed by title and author.
type BookStore interface {
	// Save stores a book, replacing any previous segmentation under the
	// same key.
	Save(ctx context.Context, book *domain.Book) error

	// Get retrieves a book by title and author.
	// Returns domain.ErrNotFound if no such book is stored.
	Get(ctx context.Context, title, author string) (*domain.Book, error)

	// Delete removes a stored book.
	// Returns domain.ErrNotFound if no such book is stored.
	Delete(ctx context.Context, title, author string) error

	// List returns the identities of all stored books, ordered by title
	// then author.
	List(ctx context.Context) ([]domain.BookRef, error)
}
