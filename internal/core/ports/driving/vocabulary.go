package driving

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// VocabularyService manages the user's known-word vocabulary.
type VocabularyService interface {
	// Snapshot loads both word tables into an immutable point-in-time
	// view.
	Snapshot(ctx context.Context) (*domain.KnownSnapshot, error)

	// AddWords adds manual words and reports how many were new.
	AddWords(ctx context.Context, words []string) (*domain.AddReport, error)

	// RemoveWords removes manual words. Synced words cannot be removed.
	RemoveWords(ctx context.Context, words []string) error

	// Words lists the whole vocabulary in lexicographic order.
	Words(ctx context.Context) ([]domain.KnownWordEntry, error)

	// Chars lists the known characters in lexicographic order.
	Chars(ctx context.Context) ([]string, error)

	// Classify reports for each word whether it is known, and from where.
	Classify(ctx context.Context, words []string) ([]domain.Classification, error)

	// Stats summarises the vocabulary by source and status.
	Stats(ctx context.Context) (*domain.VocabularyStats, error)
}
