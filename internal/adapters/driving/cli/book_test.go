package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
)

// mockLibraryService stands in for the import pipeline, which needs an
// EPUB parser and a segmenter command.
type mockLibraryService struct {
	book *domain.Book
	err  error
	mode domain.SegmentationMode
}

var _ driving.LibraryService = (*mockLibraryService)(nil)

func (m *mockLibraryService) ImportFile(_ context.Context, _ string, mode domain.SegmentationMode) (*domain.Book, error) {
	m.mode = mode
	return m.book, m.err
}

func (m *mockLibraryService) Books(_ context.Context) ([]domain.BookRef, error) {
	if m.book == nil {
		return nil, m.err
	}
	return []domain.BookRef{m.book.Ref()}, m.err
}

func (m *mockLibraryService) Book(_ context.Context, _, _ string) (*domain.Book, error) {
	return m.book, m.err
}

func (m *mockLibraryService) Remove(_ context.Context, _, _ string) error {
	return m.err
}

func TestBookAddCommand(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	mock := &mockLibraryService{
		book: &domain.Book{
			Title:  "围城",
			Author: "钱锺书",
			Chapters: []domain.Chapter{
				{Title: "第一章", Words: []string{"方鸿渐", "回国"}},
				{Title: "第二章", Words: []string{"苏文纨"}},
			},
		},
	}
	libraryService = mock

	output, err := execute("book", "add", "weicheng.epub")

	require.NoError(t, err)
	assert.Contains(t, output, "Stored 围城 (钱锺书): 2 chapters, 3 words.")
	assert.Equal(t, domain.SegmentationDefault, mock.mode)
}

func TestBookAddCommandDictOnly(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	mock := &mockLibraryService{book: &domain.Book{Title: "围城"}}
	libraryService = mock

	_, err := execute("book", "add", "--dict-only", "weicheng.epub")

	require.NoError(t, err)
	assert.Equal(t, domain.SegmentationDictOnly, mock.mode)
}

func TestBookAddCommandNoParser(t *testing.T) {
	// setupTestServices wires the real service without an EPUB parser.
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("book", "add", "weicheng.epub")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "importing book")
}

func TestBookListCommand(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	require.NoError(t, env.books.Save(context.Background(), &domain.Book{Title: "围城", Author: "钱锺书"}))
	require.NoError(t, env.books.Save(context.Background(), &domain.Book{Title: "呐喊", Author: "鲁迅"}))

	output, err := execute("book", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "Stored books:")
	assert.Contains(t, output, "  呐喊 (鲁迅)\n")
	assert.Contains(t, output, "  围城 (钱锺书)\n")
}

func TestBookListCommandEmpty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	output, err := execute("book", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "No stored books.")
}

func TestBookRemoveCommand(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	require.NoError(t, env.books.Save(context.Background(), &domain.Book{Title: "围城", Author: "钱锺书"}))

	output, err := execute("book", "remove", "围城", "钱锺书")

	require.NoError(t, err)
	assert.Contains(t, output, "Removed 围城 (钱锺书).")

	refs, err := env.books.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestBookRemoveCommandNotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("book", "remove", "围城")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookCommandsNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	libraryService = nil

	_, err := execute("book", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "library service not configured")
}
