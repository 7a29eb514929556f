package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

const fixtureListJSON = `{"0000-第一章":[{"word":"仿佛","total_occurrence":3},{"word":"鸿渐","total_occurrence":2}]}`

func seedWordList(t *testing.T, env *testEnv) int64 {
	t.Helper()
	id, err := env.lists.Save(context.Background(), &domain.WordListRecord{
		BookName:   "围城",
		AuthorName: "钱锺书",
		CreateTime: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Criteria:   domain.FilterCriteria{MinOccurrenceWords: 3},
		ListJSON:   fixtureListJSON,
	})
	require.NoError(t, err)
	return id
}

func TestListsCommand(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	seedWordList(t, env)

	output, err := execute("lists")

	require.NoError(t, err)
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Created")
	assert.Contains(t, output, "2024-03-01 10:30")
	assert.Contains(t, output, "围城 (钱锺书)")
	assert.Contains(t, output, "min words 3")
}

func TestListsCommandEmpty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	output, err := execute("lists")

	require.NoError(t, err)
	assert.Contains(t, output, "No saved word lists.")
}

func TestListsCommandBookFilter(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	seedWordList(t, env)

	output, err := execute("lists", "--book", "呐喊")

	require.NoError(t, err)
	assert.Contains(t, output, "No saved word lists.")
}

func TestListsCommandLimit(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	seedWordList(t, env)
	seedWordList(t, env)

	output, err := execute("lists", "--limit", "1")

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(output, "围城"))
}

func TestListsShowCommand(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	id := seedWordList(t, env)
	require.EqualValues(t, 1, id)

	output, err := execute("lists", "show", "1")

	require.NoError(t, err)
	assert.Contains(t, output, "Word list 1: 围城 (钱锺书), created 2024-03-01 10:30, min words 3")
	assert.Contains(t, output, "0000-第一章 (2 words)")
	assert.Contains(t, output, "  仿佛 (3)")
	assert.Contains(t, output, "  鸿渐 (2)")
}

func TestListsShowCommandNotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("lists", "show", "99")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListsShowCommandBadID(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("lists", "show", "abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid word list id "abc"`)
}

func TestListsExportCommandStdout(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	seedWordList(t, env)

	output, err := execute("lists", "export", "1")

	require.NoError(t, err)
	assert.Equal(t, fixtureListJSON, strings.TrimSpace(output))
}

func TestListsExportCommandFile(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	seedWordList(t, env)
	path := filepath.Join(t.TempDir(), "list.json")

	output, err := execute("lists", "export", "1", "-o", path)

	require.NoError(t, err)
	assert.Contains(t, output, "Exported word list 1 to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixtureListJSON, string(data))
}

func TestListsDeleteCommand(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	seedWordList(t, env)

	output, err := execute("lists", "delete", "1")

	require.NoError(t, err)
	assert.Contains(t, output, "Deleted word list 1.")

	_, err = env.lists.Get(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListsCommandNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	wordListService = nil

	_, err := execute("lists")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "word list service not configured")
}
