package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
	"github.com/hanci-tools/hanci-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs the vocabulary analysis pipeline over a book and
// persists the resulting word lists.
type AnalysisService struct {
	vocab     driving.VocabularyService
	bookStore driven.BookStore
	ebooks    driven.EbookParser
	segmenter driven.Segmenter
	listStore driven.WordListStore

	// Injectable for tests.
	now   func() time.Time
	newID func() string
}

// NewAnalysisService creates a new analysis service.
// The parser and segmenter are optional - if nil, only stored or
// pre-segmented books can be analysed.
func NewAnalysisService(
	vocab driving.VocabularyService,
	bookStore driven.BookStore,
	ebooks driven.EbookParser,
	segmenter driven.Segmenter,
	listStore driven.WordListStore,
) *AnalysisService {
	return &AnalysisService{
		vocab:     vocab,
		bookStore: bookStore,
		ebooks:    ebooks,
		segmenter: segmenter,
		listStore: listStore,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// AnalyzeBook aggregates an already segmented book against the current
// vocabulary. The snapshot is taken once here; later vocabulary changes
// do not affect the returned session.
func (s *AnalysisService) AnalyzeBook(ctx context.Context, book *domain.Book) (*domain.AnalysisSession, error) {
	if s.vocab == nil {
		return nil, domain.ErrNotImplemented
	}
	if book == nil {
		return nil, fmt.Errorf("%w: nil book", domain.ErrInvalidInput)
	}

	logger.Section("Analysis Run")
	snapshot, err := s.vocab.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Vocabulary snapshot: %d words", snapshot.Len())

	session, err := domain.NewAnalysisSession(s.newID(), s.now(), book, snapshot)
	if err != nil {
		return nil, err
	}
	logger.Info("Aggregated %q: %d chapters, %d distinct words",
		book.Title, len(book.Chapters), len(session.Tables.Words))
	return session, nil
}

// AnalyzeFile parses and segments an ebook file, then analyses it. The
// book is not added to the library; use the library import for that.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string, mode domain.SegmentationMode) (*domain.AnalysisSession, error) {
	if s.ebooks == nil {
		return nil, fmt.Errorf("%w: no ebook parser available", domain.ErrNotImplemented)
	}
	if s.segmenter == nil {
		return nil, fmt.Errorf("%w: no segmenter configured", domain.ErrSegmenterUnavailable)
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: segmentation mode %q", domain.ErrInvalidInput, mode)
	}

	raw, err := s.ebooks.Parse(ctx, path)
	if err != nil {
		return nil, err
	}
	book, err := s.segmenter.Segment(ctx, raw, mode)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeBook(ctx, book)
}

// AnalyzeStored loads a book from the library and analyses it.
func (s *AnalysisService) AnalyzeStored(ctx context.Context, title, author string) (*domain.AnalysisSession, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}
	book, err := s.bookStore.Get(ctx, title, author)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeBook(ctx, book)
}

// SaveWordList builds the word list for the criteria and persists it.
// When the criteria select nothing and allowEmpty is false, nothing is
// persisted and domain.ErrEmptySelection is returned. A failed save
// leaves the session untouched, so it can be retried without re-running
// the analysis.
func (s *AnalysisService) SaveWordList(ctx context.Context, session *domain.AnalysisSession, criteria domain.FilterCriteria, allowEmpty bool) (int64, error) {
	if s.listStore == nil {
		return 0, domain.ErrNotImplemented
	}
	if session == nil {
		return 0, fmt.Errorf("%w: nil session", domain.ErrInvalidInput)
	}

	list, err := session.WordList(criteria)
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		if !allowEmpty {
			return 0, err
		}
		logger.Warn("Criteria (%s) selected no words, saving empty list", criteria)
	case err != nil:
		return 0, err
	}

	record, err := list.Record()
	if err != nil {
		return 0, err
	}
	id, err := s.listStore.Save(ctx, record)
	if err != nil {
		return 0, fmt.Errorf("saving word list: %w", err)
	}
	logger.Info("Saved word list %d: %d words across %d chapters", id, len(list.Entries), len(list.Chapters))
	return id, nil
}
