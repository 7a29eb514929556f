package driven

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// VocabStore persists the two known-word tables. The manual table holds
// words added by hand; the synced table mirrors the flashcard collection
// and carries a status per word.
type VocabStore interface {
	// ListManual returns every manually added word.
	ListManual(ctx context.Context) ([]string, error)

	// AddManual inserts manual words. Words already present are ignored.
	AddManual(ctx context.Context, words []string) error

	// DeleteManual removes manual words. Missing words are not an error.
	DeleteManual(ctx context.Context, words []string) error

	// ListSynced returns every synced entry, including unknown-status ones.
	ListSynced(ctx context.Context) ([]domain.KnownWordEntry, error)

	// UpsertSynced inserts synced entries or refreshes their status.
	UpsertSynced(ctx context.Context, entries []domain.KnownWordEntry) error

	// MarkSyncedMissing flips the given synced words to unknown status.
	// Words never synced before are left alone.
	MarkSyncedMissing(ctx context.Context, words []string) error
}
