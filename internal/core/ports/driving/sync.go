package driving

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// SyncService imports flashcard vocabulary into the synced word table.
type SyncService interface {
	// Sync reads the flashcard collection and reconciles the synced
	// table: collection words are upserted with their current status,
	// and previously synced words missing from the collection are marked
	// unknown-status.
	Sync(ctx context.Context) (*domain.SyncReport, error)

	// Watch blocks and re-syncs whenever the collection file changes,
	// until the context is cancelled. Each completed sync is passed to
	// report, which may be nil.
	Watch(ctx context.Context, report func(*domain.SyncReport)) error
}
