package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
)

// Ensure BookStore implements the interface.
var _ driven.BookStore = (*BookStore)(nil)

// BookStore is an in-memory implementation of driven.BookStore.
type BookStore struct {
	mu    sync.RWMutex
	books map[domain.BookRef]domain.Book
}

// NewBookStore creates a new in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{
		books: make(map[domain.BookRef]domain.Book),
	}
}

// Save stores a book, replacing any previous segmentation.
func (s *BookStore) Save(_ context.Context, book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.Ref()] = *book
	return nil
}

// Get retrieves a book by title and author.
func (s *BookStore) Get(_ context.Context, title, author string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[domain.BookRef{Title: title, Author: author}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &book, nil
}

// Delete removes a stored book.
func (s *BookStore) Delete(_ context.Context, title, author string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := domain.BookRef{Title: title, Author: author}
	if _, ok := s.books[ref]; !ok {
		return domain.ErrNotFound
	}
	delete(s.books, ref)
	return nil
}

// List returns the identities of all stored books, ordered by title then
// author.
func (s *BookStore) List(_ context.Context) ([]domain.BookRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]domain.BookRef, 0, len(s.books))
	for ref := range s.books {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(a, b int) bool {
		if refs[a].Title != refs[b].Title {
			return refs[a].Title < refs[b].Title
		}
		return refs[a].Author < refs[b].Author
	})
	return refs, nil
}
