package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
)

// Ensure VocabularyService implements the interface.
var _ driving.VocabularyService = (*VocabularyService)(nil)

// VocabularyService manages the user's known-word vocabulary.
type VocabularyService struct {
	vocabStore driven.VocabStore
}

// NewVocabularyService creates a new vocabulary service.
func NewVocabularyService(vocabStore driven.VocabStore) *VocabularyService {
	return &VocabularyService{vocabStore: vocabStore}
}

// Snapshot loads both word tables into a point-in-time view.
func (s *VocabularyService) Snapshot(ctx context.Context) (*domain.KnownSnapshot, error) {
	if s.vocabStore == nil {
		return nil, domain.ErrNotImplemented
	}
	manual, err := s.vocabStore.ListManual(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading manual words: %w", err)
	}
	synced, err := s.vocabStore.ListSynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading synced words: %w", err)
	}
	return domain.NewKnownSnapshot(manual, synced), nil
}

// AddWords adds manual words and reports how many were new. Words
// already known through either table are counted, not re-added.
func (s *VocabularyService) AddWords(ctx context.Context, words []string) (*domain.AddReport, error) {
	if s.vocabStore == nil {
		return nil, domain.ErrNotImplemented
	}
	cleaned := cleanWords(words)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: no words given", domain.ErrInvalidInput)
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.AddReport{Submitted: len(cleaned)}
	fresh := make([]string, 0, len(cleaned))
	for _, w := range cleaned {
		if snapshot.Known(w) {
			report.AlreadyKnown++
			continue
		}
		fresh = append(fresh, w)
	}

	if len(fresh) > 0 {
		if err := s.vocabStore.AddManual(ctx, fresh); err != nil {
			return nil, fmt.Errorf("saving words: %w", err)
		}
	}
	report.Added = len(fresh)
	return report, nil
}

// RemoveWords removes manual words. Synced words are untouched.
func (s *VocabularyService) RemoveWords(ctx context.Context, words []string) error {
	if s.vocabStore == nil {
		return domain.ErrNotImplemented
	}
	cleaned := cleanWords(words)
	if len(cleaned) == 0 {
		return fmt.Errorf("%w: no words given", domain.ErrInvalidInput)
	}
	return s.vocabStore.DeleteManual(ctx, cleaned)
}

// Words lists the whole vocabulary in lexicographic order.
func (s *VocabularyService) Words(ctx context.Context) ([]domain.KnownWordEntry, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	words := snapshot.Words()
	entries := make([]domain.KnownWordEntry, 0, len(words))
	for _, w := range words {
		e, _ := snapshot.Lookup(w)
		entries = append(entries, e)
	}
	return entries, nil
}

// Chars lists the known characters in lexicographic order.
func (s *VocabularyService) Chars(ctx context.Context) ([]string, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewCharIndex(snapshot).Chars(), nil
}

// Classify reports for each word whether it is known, and from where.
func (s *VocabularyService) Classify(ctx context.Context, words []string) ([]domain.Classification, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Classify(words), nil
}

// Stats summarises the vocabulary by source and status.
func (s *VocabularyService) Stats(ctx context.Context) (*domain.VocabularyStats, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	stats := snapshot.Stats()
	return &stats, nil
}

// cleanWords trims whitespace and drops empties and duplicates, keeping
// first-seen order.
func cleanWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
