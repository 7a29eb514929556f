package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

func TestNewVocabStore(t *testing.T) {
	store := NewVocabStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.manual)
	assert.NotNil(t, store.synced)
}

func TestVocabStore_AddManual_Success(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	err := store.AddManual(ctx, []string{"爱", "猫"})
	require.NoError(t, err)

	words, err := store.ListManual(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"爱", "猫"}, words)
}

func TestVocabStore_AddManual_Idempotent(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	require.NoError(t, store.AddManual(ctx, []string{"爱"}))
	require.NoError(t, store.AddManual(ctx, []string{"爱"}))

	words, err := store.ListManual(ctx)
	require.NoError(t, err)
	assert.Len(t, words, 1)
}

func TestVocabStore_DeleteManual(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	require.NoError(t, store.AddManual(ctx, []string{"爱", "猫"}))
	require.NoError(t, store.DeleteManual(ctx, []string{"爱"}))

	words, err := store.ListManual(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"猫"}, words)
}

func TestVocabStore_DeleteManual_NonExistent(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	// Deleting words that were never added should not error
	err := store.DeleteManual(ctx, []string{"爱"})
	assert.NoError(t, err)
}

func TestVocabStore_DeleteManual_LeavesSyncedAlone(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertSynced(ctx, []domain.KnownWordEntry{
		{Word: "爱", Status: domain.StatusActive},
	}))
	require.NoError(t, store.DeleteManual(ctx, []string{"爱"}))

	synced, err := store.ListSynced(ctx)
	require.NoError(t, err)
	assert.Len(t, synced, 1)
}

func TestVocabStore_UpsertSynced_Success(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	err := store.UpsertSynced(ctx, []domain.KnownWordEntry{
		{Word: "爱", Status: domain.StatusActive},
		{Word: "猫", Status: domain.StatusSuspended},
	})
	require.NoError(t, err)

	entries, err := store.ListSynced(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, domain.SourceSynced, e.Source)
	}
}

func TestVocabStore_UpsertSynced_RefreshesStatus(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertSynced(ctx, []domain.KnownWordEntry{
		{Word: "爱", Status: domain.StatusActive},
	}))
	require.NoError(t, store.UpsertSynced(ctx, []domain.KnownWordEntry{
		{Word: "爱", Status: domain.StatusSuspended},
	}))

	entries, err := store.ListSynced(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StatusSuspended, entries[0].Status)
}

func TestVocabStore_MarkSyncedMissing(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertSynced(ctx, []domain.KnownWordEntry{
		{Word: "爱", Status: domain.StatusActive},
		{Word: "猫", Status: domain.StatusActive},
	}))

	err := store.MarkSyncedMissing(ctx, []string{"猫"})
	require.NoError(t, err)

	entries, err := store.ListSynced(ctx)
	require.NoError(t, err)
	statuses := make(map[string]domain.WordStatus)
	for _, e := range entries {
		statuses[e.Word] = e.Status
	}
	assert.Equal(t, domain.StatusActive, statuses["爱"])
	assert.Equal(t, domain.StatusUnknown, statuses["猫"])
}

func TestVocabStore_MarkSyncedMissing_IgnoresUnseenWords(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	err := store.MarkSyncedMissing(ctx, []string{"爱"})
	require.NoError(t, err)

	// Marking must not create entries
	entries, err := store.ListSynced(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVocabStore_ManualAndSyncedAreIndependent(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	require.NoError(t, store.AddManual(ctx, []string{"爱"}))
	require.NoError(t, store.UpsertSynced(ctx, []domain.KnownWordEntry{
		{Word: "爱", Status: domain.StatusActive},
	}))

	manual, err := store.ListManual(ctx)
	require.NoError(t, err)
	assert.Len(t, manual, 1)

	synced, err := store.ListSynced(ctx)
	require.NoError(t, err)
	assert.Len(t, synced, 1)
}

func TestVocabStore_Concurrency_MixedOperations(t *testing.T) {
	store := NewVocabStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	numOperations := 100

	wg.Add(numOperations)
	for i := 0; i < numOperations; i++ {
		go func(id int) {
			defer wg.Done()
			word := fmt.Sprintf("词%d", id%10)
			switch id % 5 {
			case 0:
				_ = store.AddManual(ctx, []string{word})
			case 1:
				_ = store.DeleteManual(ctx, []string{word})
			case 2:
				_ = store.UpsertSynced(ctx, []domain.KnownWordEntry{{Word: word, Status: domain.StatusActive}})
			case 3:
				_, _ = store.ListManual(ctx)
			case 4:
				_, _ = store.ListSynced(ctx)
			}
		}(i)
	}
	wg.Wait()

	// Should not panic or deadlock
	_, err := store.ListManual(ctx)
	assert.NoError(t, err)
}
