package domain

import (
	"sync"
	"time"
)

// AnalysisSession holds one analysis run: the book, the vocabulary
// snapshot frozen at run start, and the occurrence tables aggregated from
// them. Everything downstream (summaries, selections, word lists) derives
// from these tables without touching storage again, so a run's view stays
// consistent even while the vocabulary changes underneath it.
type AnalysisSession struct {
	// ID uniquely identifies the run.
	ID string

	// StartedAt is the run timestamp. Word lists built from this session
	// carry it as their create time, persisted immediately or not.
	StartedAt time.Time

	// Book is the segmented book under analysis.
	Book *Book

	// Snapshot is the vocabulary view taken at run start.
	Snapshot *KnownSnapshot

	// Chars indexes the characters of the snapshot's words.
	Chars CharIndex

	// Tables holds the aggregated occurrence counts.
	Tables *OccurrenceTables

	mu        sync.Mutex
	summaries map[string]AnalysisInfo
}

// NewAnalysisSession aggregates the book's Han tokens against the
// snapshot and wraps the result. Returns ErrInvalidInput when the book's
// token stream is malformed.
func NewAnalysisSession(id string, startedAt time.Time, book *Book, snapshot *KnownSnapshot) (*AnalysisSession, error) {
	chars := NewCharIndex(snapshot)
	tables, err := Aggregate(book.HanTokens(), len(book.Chapters), snapshot, chars)
	if err != nil {
		return nil, err
	}
	return &AnalysisSession{
		ID:        id,
		StartedAt: startedAt,
		Book:      book,
		Snapshot:  snapshot,
		Chars:     chars,
		Tables:    tables,
		summaries: make(map[string]AnalysisInfo),
	}, nil
}

// Summary returns the analysis figures under the criteria, memoised so
// repeated threshold changes only pay for the first computation.
func (s *AnalysisSession) Summary(criteria FilterCriteria) AnalysisInfo {
	key := criteria.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if info, ok := s.summaries[key]; ok {
		return info
	}
	info := Summarize(s.Tables, s.Snapshot, s.Chars, criteria)
	s.summaries[key] = info
	return info
}

// Select returns the unknown words passing the criteria.
func (s *AnalysisSession) Select(criteria FilterCriteria) map[string]struct{} {
	return Select(s.Tables, s.Snapshot, criteria)
}

// WordList builds the chapter-partitioned list for the criteria. An
// empty selection returns a usable empty list alongside
// ErrEmptySelection.
func (s *AnalysisSession) WordList(criteria FilterCriteria) (*WordList, error) {
	return BuildWordList(s.Select(criteria), s.Tables, s.Book, criteria, s.StartedAt)
}

// Ratios compares known shares before and after learning the words the
// criteria select.
func (s *AnalysisSession) Ratios(criteria FilterCriteria) []RatioRow {
	return KnownRatios(s.Summary(AllWords()), s.Summary(criteria))
}
