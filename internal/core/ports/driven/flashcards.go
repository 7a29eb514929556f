package driven

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// FlashcardSource reads vocabulary out of the user's flashcard
// collection.
type FlashcardSource interface {
	// ReadEntries extracts the configured note fields and returns one
	// entry per distinct word, with the status derived from the card
	// state. Returns domain.ErrCollectionUnavailable when the collection
	// cannot be opened.
	ReadEntries(ctx context.Context) ([]domain.KnownWordEntry, error)

	// CollectionPath returns the collection file being read, so callers
	// can watch it for changes.
	CollectionPath() string
}
