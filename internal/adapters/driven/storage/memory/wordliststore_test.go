package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

func testRecord(book, author string, created time.Time) *domain.WordListRecord {
	return &domain.WordListRecord{
		BookName:   book,
		AuthorName: author,
		CreateTime: created,
		Criteria:   domain.FilterCriteria{MinOccurrenceWords: 3},
		ListJSON:   `{"0000-第一章":[{"word":"猫","total_occurrence":3}]}`,
	}
}

func TestNewWordListStore(t *testing.T) {
	store := NewWordListStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.records)
}

func TestWordListStore_Save_AssignsIncreasingIDs(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()
	now := time.Now()

	id1, err := store.Save(ctx, testRecord("围城", "钱锺书", now))
	require.NoError(t, err)
	id2, err := store.Save(ctx, testRecord("围城", "钱锺书", now))
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
}

func TestWordListStore_Save_DoesNotMutateInput(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()

	record := testRecord("围城", "钱锺书", time.Now())
	_, err := store.Save(ctx, record)
	require.NoError(t, err)

	assert.Zero(t, record.ID, "the caller's record keeps its zero ID")
}

func TestWordListStore_Get_Success(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()

	id, err := store.Save(ctx, testRecord("围城", "钱锺书", time.Now()))
	require.NoError(t, err)

	record, err := store.Get(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.Equal(t, "围城", record.BookName)
	assert.NotEmpty(t, record.ListJSON)
}

func TestWordListStore_Get_NotFound(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()

	record, err := store.Get(ctx, 42)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, record)
}

func TestWordListStore_List_NewestFirst(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := store.Save(ctx, testRecord("围城", "钱锺书", base))
	require.NoError(t, err)
	_, err = store.Save(ctx, testRecord("活着", "余华", base.AddDate(0, 0, 2)))
	require.NoError(t, err)
	_, err = store.Save(ctx, testRecord("家", "巴金", base.AddDate(0, 0, 1)))
	require.NoError(t, err)

	records, err := store.List(ctx, domain.WordListFilter{})

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "活着", records[0].BookName)
	assert.Equal(t, "家", records[1].BookName)
	assert.Equal(t, "围城", records[2].BookName)
}

func TestWordListStore_List_SameTimestampOrderedByID(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	id1, _ := store.Save(ctx, testRecord("围城", "钱锺书", now))
	id2, _ := store.Save(ctx, testRecord("围城", "钱锺书", now))

	records, err := store.List(ctx, domain.WordListFilter{})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, id2, records[0].ID)
	assert.Equal(t, id1, records[1].ID)
}

func TestWordListStore_List_OmitsContent(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()

	_, err := store.Save(ctx, testRecord("围城", "钱锺书", time.Now()))
	require.NoError(t, err)

	records, err := store.List(ctx, domain.WordListFilter{})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].ListJSON)

	// The stored record keeps its content
	full, err := store.Get(ctx, records[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, full.ListJSON)
}

func TestWordListStore_List_FilterByBookAndAuthor(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()
	now := time.Now()

	_, _ = store.Save(ctx, testRecord("围城", "钱锺书", now))
	_, _ = store.Save(ctx, testRecord("活着", "余华", now))

	records, err := store.List(ctx, domain.WordListFilter{BookName: "围城", AuthorName: "钱锺书"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "围城", records[0].BookName)
}

func TestWordListStore_List_FilterSince(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, _ = store.Save(ctx, testRecord("围城", "钱锺书", base))
	_, _ = store.Save(ctx, testRecord("活着", "余华", base.AddDate(0, 0, 5)))

	records, err := store.List(ctx, domain.WordListFilter{Since: base.AddDate(0, 0, 1)})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "活着", records[0].BookName)
}

func TestWordListStore_List_SinceIsInclusive(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, _ = store.Save(ctx, testRecord("围城", "钱锺书", now))

	records, err := store.List(ctx, domain.WordListFilter{Since: now})

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWordListStore_List_Limit(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, _ = store.Save(ctx, testRecord("围城", "钱锺书", base.AddDate(0, 0, i)))
	}

	records, err := store.List(ctx, domain.WordListFilter{Limit: 2})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, base.AddDate(0, 0, 4), records[0].CreateTime)
}

func TestWordListStore_Delete_Success(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()

	id, err := store.Save(ctx, testRecord("围城", "钱锺书", time.Now()))
	require.NoError(t, err)

	err = store.Delete(ctx, id)
	require.NoError(t, err)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWordListStore_Delete_NotFound(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()

	err := store.Delete(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWordListStore_Delete_IDsAreNotReused(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()

	id1, _ := store.Save(ctx, testRecord("围城", "钱锺书", time.Now()))
	require.NoError(t, store.Delete(ctx, id1))

	id2, err := store.Save(ctx, testRecord("围城", "钱锺书", time.Now()))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)
}

func TestWordListStore_Concurrency_SaveAndList(t *testing.T) {
	store := NewWordListStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			_, _ = store.Save(ctx, testRecord("围城", "钱锺书", time.Now()))
			_, _ = store.List(ctx, domain.WordListFilter{})
		}()
	}
	wg.Wait()

	records, err := store.List(ctx, domain.WordListFilter{})
	require.NoError(t, err)
	assert.Len(t, records, numGoroutines)
}
