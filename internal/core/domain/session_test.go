package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionTestTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// sessionFixture analyses a two-chapter book against the known words 我
// and 爱. The unknown words are 猫 (three occurrences) and 狗 (one).
func sessionFixture(t *testing.T) *AnalysisSession {
	t.Helper()
	book := &Book{
		Title:  "围城",
		Author: "钱锺书",
		Chapters: []Chapter{
			{Title: "第一章", Words: []string{"我", "爱", "猫", "猫"}},
			{Title: "第二章", Words: []string{"猫", "狗"}},
		},
	}
	snapshot := NewKnownSnapshot([]string{"我", "爱"}, nil)
	session, err := NewAnalysisSession("run-1", sessionTestTime, book, snapshot)
	require.NoError(t, err)
	return session
}

// TestNewAnalysisSession tests that construction aggregates the book
func TestNewAnalysisSession(t *testing.T) {
	session := sessionFixture(t)

	assert.Equal(t, "run-1", session.ID)
	assert.Equal(t, sessionTestTime, session.StartedAt)
	assert.Len(t, session.Tables.Words, 4)
	assert.Equal(t, 2, session.Tables.ChapterTotal)
	assert.True(t, session.Chars.Known("我"))
	assert.False(t, session.Chars.Known("猫"))
}

// TestAnalysisSession_Summary_Memoised tests that repeated criteria hit
// the cache instead of recomputing
func TestAnalysisSession_Summary_Memoised(t *testing.T) {
	session := sessionFixture(t)

	first := session.Summary(AllWords())
	// Wipe the tables; a memoised summary must not recompute
	session.Tables.Words = map[string]*WordOccurrence{}
	second := session.Summary(AllWords())

	assert.Equal(t, first, second)
}

// TestAnalysisSession_Summary_DistinctCriteria tests that different
// thresholds yield different figures
func TestAnalysisSession_Summary_DistinctCriteria(t *testing.T) {
	session := sessionFixture(t)

	all := session.Summary(AllWords())
	filtered := session.Summary(FilterCriteria{MinOccurrenceWords: 2})

	assert.Equal(t, 4, all.UniqueWords)
	assert.Equal(t, 1, filtered.UniqueWords, "only 猫 passes the threshold")
}

// TestAnalysisSession_Select tests that known words are never selected
func TestAnalysisSession_Select(t *testing.T) {
	session := sessionFixture(t)

	selected := session.Select(AllWords())

	assert.Len(t, selected, 2)
	assert.Contains(t, selected, "猫")
	assert.Contains(t, selected, "狗")
}

// TestAnalysisSession_WordList tests that the list carries the run's
// timestamp and criteria
func TestAnalysisSession_WordList(t *testing.T) {
	session := sessionFixture(t)
	criteria := FilterCriteria{MinOccurrenceWords: 2}

	list, err := session.WordList(criteria)

	require.NoError(t, err)
	assert.Equal(t, "围城", list.BookName)
	assert.Equal(t, sessionTestTime, list.CreateTime)
	assert.Equal(t, criteria, list.Criteria)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "猫", list.Entries[0].Word)
	require.Len(t, list.Chapters, 2)
	assert.Equal(t, "0000-第一章", list.Chapters[0].Title)
	assert.Equal(t, "0001-第二章", list.Chapters[1].Title)
}

// TestAnalysisSession_WordList_EmptySelection tests that an empty
// selection is reported but still usable
func TestAnalysisSession_WordList_EmptySelection(t *testing.T) {
	session := sessionFixture(t)

	list, err := session.WordList(FilterCriteria{MinOccurrenceWords: 100})

	assert.ErrorIs(t, err, ErrEmptySelection)
	require.NotNil(t, list)
	assert.Equal(t, "围城", list.BookName)
	assert.Empty(t, list.Entries)
}

// TestAnalysisSession_Ratios tests the before/after shares for one
// criteria against hand counts
func TestAnalysisSession_Ratios(t *testing.T) {
	session := sessionFixture(t)

	rows := session.Ratios(FilterCriteria{MinOccurrenceWords: 2})

	require.Len(t, rows, 4)
	// 4 of 6 word occurrences are unknown; learning 猫 leaves only 狗
	assert.Equal(t, "total words", rows[0].Label)
	assert.InDelta(t, 1.0/3.0, rows[0].Before, 1e-9)
	assert.InDelta(t, 5.0/6.0, rows[0].After, 1e-9)
}
