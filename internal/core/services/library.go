package services

import (
	"context"
	"fmt"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
	"github.com/hanci-tools/hanci-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages the stored-book library.
type LibraryService struct {
	bookStore driven.BookStore
	ebooks    driven.EbookParser
	segmenter driven.Segmenter
}

// NewLibraryService creates a new library service.
// The parser and segmenter are optional - if nil, importing is
// unavailable but stored books can still be listed and loaded.
func NewLibraryService(bookStore driven.BookStore, ebooks driven.EbookParser, segmenter driven.Segmenter) *LibraryService {
	return &LibraryService{
		bookStore: bookStore,
		ebooks:    ebooks,
		segmenter: segmenter,
	}
}

// ImportFile parses, segments and stores an ebook file. Re-importing a
// book replaces its stored segmentation.
func (s *LibraryService) ImportFile(ctx context.Context, path string, mode domain.SegmentationMode) (*domain.Book, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if s.ebooks == nil {
		return nil, fmt.Errorf("%w: no ebook parser available", domain.ErrNotImplemented)
	}
	if s.segmenter == nil {
		return nil, fmt.Errorf("%w: no segmenter configured", domain.ErrSegmenterUnavailable)
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: segmentation mode %q", domain.ErrInvalidInput, mode)
	}

	logger.Section("Book Import")
	raw, err := s.ebooks.Parse(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed %q by %q: %d chapters", raw.Title, raw.Author, len(raw.Chapters))

	book, err := s.segmenter.Segment(ctx, raw, mode)
	if err != nil {
		return nil, err
	}
	logger.Debug("Segmented into %d words", book.WordCount())

	if err := s.bookStore.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("saving book: %w", err)
	}
	logger.Info("Stored %s", book.Ref())
	return book, nil
}

// Books lists the identities of stored books.
func (s *LibraryService) Books(ctx context.Context) ([]domain.BookRef, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.bookStore.List(ctx)
}

// Book loads one stored book.
func (s *LibraryService) Book(ctx context.Context, title, author string) (*domain.Book, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if title == "" {
		return nil, fmt.Errorf("%w: empty book title", domain.ErrInvalidInput)
	}
	return s.bookStore.Get(ctx, title, author)
}

// Remove deletes a stored book.
func (s *LibraryService) Remove(ctx context.Context, title, author string) error {
	if s.bookStore == nil {
		return domain.ErrNotImplemented
	}
	if title == "" {
		return fmt.Errorf("%w: empty book title", domain.ErrInvalidInput)
	}
	return s.bookStore.Delete(ctx, title, author)
}
