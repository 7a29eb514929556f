package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanci-tools/hanci-cli/internal/adapters/driven/storage/memory"
	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

const testListJSON = `{"0000-第一章":[{"word":"猫","total_occurrence":3}]}`

func saveListRecord(t *testing.T, store *memory.WordListStore, book, author string, created time.Time) int64 {
	t.Helper()
	id, err := store.Save(context.Background(), &domain.WordListRecord{
		BookName:   book,
		AuthorName: author,
		CreateTime: created,
		Criteria:   domain.FilterCriteria{MinOccurrenceWords: 3},
		ListJSON:   testListJSON,
	})
	require.NoError(t, err)
	return id
}

// seedListStore stores three lists: two for 围城 and one for 活着, one
// day apart each.
func seedListStore(t *testing.T) (*memory.WordListStore, []int64) {
	t.Helper()
	store := memory.NewWordListStore()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ids := []int64{
		saveListRecord(t, store, "围城", "钱锺书", base),
		saveListRecord(t, store, "活着", "余华", base.AddDate(0, 0, 1)),
		saveListRecord(t, store, "围城", "钱锺书", base.AddDate(0, 0, 2)),
	}
	return store, ids
}

func TestWordListService_History_NewestFirst(t *testing.T) {
	store, ids := seedListStore(t)
	service := NewWordListService(store)

	records, err := service.History(context.Background(), domain.WordListFilter{})

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[1], records[1].ID)
	assert.Equal(t, ids[0], records[2].ID)
	assert.Empty(t, records[0].ListJSON, "history omits the serialised content")
}

func TestWordListService_History_FilterByBook(t *testing.T) {
	store, ids := seedListStore(t)
	service := NewWordListService(store)

	records, err := service.History(context.Background(), domain.WordListFilter{BookName: "围城"})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[0], records[1].ID)
}

func TestWordListService_History_Since(t *testing.T) {
	store, ids := seedListStore(t)
	service := NewWordListService(store)

	since := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	records, err := service.History(context.Background(), domain.WordListFilter{Since: since})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[1], records[1].ID)
}

func TestWordListService_History_Limit(t *testing.T) {
	store, ids := seedListStore(t)
	service := NewWordListService(store)

	records, err := service.History(context.Background(), domain.WordListFilter{Limit: 1})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, ids[2], records[0].ID)
}

func TestWordListService_Get_IncludesContent(t *testing.T) {
	store, ids := seedListStore(t)
	service := NewWordListService(store)

	record, err := service.Get(context.Background(), ids[0])

	require.NoError(t, err)
	assert.Equal(t, testListJSON, record.ListJSON)
}

func TestWordListService_Get_NotFound(t *testing.T) {
	service := NewWordListService(memory.NewWordListStore())

	_, err := service.Get(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWordListService_Export_WritesStoredBytes(t *testing.T) {
	store, ids := seedListStore(t)
	service := NewWordListService(store)
	path := filepath.Join(t.TempDir(), "list.json")

	err := service.Export(context.Background(), ids[0], path)

	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testListJSON, string(content))
}

func TestWordListService_Export_NotFound(t *testing.T) {
	service := NewWordListService(memory.NewWordListStore())

	err := service.Export(context.Background(), 42, filepath.Join(t.TempDir(), "list.json"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWordListService_Delete(t *testing.T) {
	store, ids := seedListStore(t)
	service := NewWordListService(store)

	err := service.Delete(context.Background(), ids[0])

	require.NoError(t, err)
	_, err = service.Get(context.Background(), ids[0])
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = service.Delete(context.Background(), ids[0])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWordListService_NilStore(t *testing.T) {
	service := NewWordListService(nil)

	_, err := service.History(context.Background(), domain.WordListFilter{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	err = service.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
