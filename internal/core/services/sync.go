package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
	"github.com/hanci-tools/hanci-cli/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncService = (*SyncService)(nil)

// resyncInterval throttles change-triggered resyncs. The flashcard app
// writes the collection and its journal in bursts, and one resync per
// burst is enough.
const resyncInterval = 2 * time.Second

// SyncService imports flashcard vocabulary into the synced word table.
type SyncService struct {
	vocabStore driven.VocabStore
	flashcards driven.FlashcardSource
}

// NewSyncService creates a new sync service.
// The flashcard source is optional - if nil, sync reports the collection
// as unavailable.
func NewSyncService(vocabStore driven.VocabStore, flashcards driven.FlashcardSource) *SyncService {
	return &SyncService{
		vocabStore: vocabStore,
		flashcards: flashcards,
	}
}

// Sync reads the flashcard collection and reconciles the synced table:
// collection words are upserted with their current status, and
// previously synced words missing from the collection are marked
// unknown-status.
func (s *SyncService) Sync(ctx context.Context) (*domain.SyncReport, error) {
	if s.vocabStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if s.flashcards == nil {
		return nil, fmt.Errorf("%w: no flashcard collection configured", domain.ErrCollectionUnavailable)
	}

	logger.Section("Flashcard Sync")
	entries, err := s.flashcards.ReadEntries(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Collection entries: %d", len(entries))

	previous, err := s.vocabStore.ListSynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading synced words: %w", err)
	}

	current := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		current[e.Word] = struct{}{}
	}

	// Words that vanished from the collection are marked, never deleted,
	// so a word once known stays known.
	var missing []string
	for _, e := range previous {
		if e.Status == domain.StatusUnknown {
			continue
		}
		if _, ok := current[e.Word]; !ok {
			missing = append(missing, e.Word)
		}
	}

	if err := s.vocabStore.UpsertSynced(ctx, entries); err != nil {
		return nil, fmt.Errorf("saving synced words: %w", err)
	}
	if len(missing) > 0 {
		if err := s.vocabStore.MarkSyncedMissing(ctx, missing); err != nil {
			return nil, fmt.Errorf("marking missing words: %w", err)
		}
	}

	report := &domain.SyncReport{
		CollectionWords: len(entries),
		Upserted:        len(entries),
		MarkedMissing:   len(missing),
	}
	logger.Info("Synced %d words, marked %d missing", report.Upserted, report.MarkedMissing)
	return report, nil
}

// Watch blocks and re-syncs whenever the collection file changes, until
// the context is cancelled.
func (s *SyncService) Watch(ctx context.Context, report func(*domain.SyncReport)) error {
	if s.flashcards == nil {
		return fmt.Errorf("%w: no flashcard collection configured", domain.ErrCollectionUnavailable)
	}
	path := s.flashcards.CollectionPath()
	if path == "" {
		return fmt.Errorf("%w: no flashcard collection configured", domain.ErrCollectionUnavailable)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: the flashcard app replaces the collection
	// file on save, which would drop a watch set on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	limiter := rate.NewLimiter(rate.Every(resyncInterval), 1)
	logger.Info("Watching %s", path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !limiter.Allow() {
				logger.Debug("Skipping change burst on %s", event.Name)
				continue
			}
			r, err := s.Sync(ctx)
			if err != nil {
				logger.Warn("Resync failed: %v", err)
				continue
			}
			if report != nil {
				report(r)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
