package mcp

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// mockVocabularyService is a mock implementation of driving.VocabularyService.
type mockVocabularyService struct {
	snapshot *domain.KnownSnapshot
	report   *domain.AddReport
	entries  []domain.KnownWordEntry
	chars    []string
	results  []domain.Classification
	stats    *domain.VocabularyStats
	err      error
}

func (m *mockVocabularyService) Snapshot(_ context.Context) (*domain.KnownSnapshot, error) {
	return m.snapshot, m.err
}

func (m *mockVocabularyService) AddWords(_ context.Context, _ []string) (*domain.AddReport, error) {
	return m.report, m.err
}

func (m *mockVocabularyService) RemoveWords(_ context.Context, _ []string) error {
	return m.err
}

func (m *mockVocabularyService) Words(_ context.Context) ([]domain.KnownWordEntry, error) {
	return m.entries, m.err
}

func (m *mockVocabularyService) Chars(_ context.Context) ([]string, error) {
	return m.chars, m.err
}

func (m *mockVocabularyService) Classify(_ context.Context, _ []string) ([]domain.Classification, error) {
	return m.results, m.err
}

func (m *mockVocabularyService) Stats(_ context.Context) (*domain.VocabularyStats, error) {
	return m.stats, m.err
}

// mockWordListService is a mock implementation of driving.WordListService.
type mockWordListService struct {
	records []domain.WordListRecord
	record  *domain.WordListRecord
	err     error
}

func (m *mockWordListService) History(_ context.Context, _ domain.WordListFilter) ([]domain.WordListRecord, error) {
	return m.records, m.err
}

func (m *mockWordListService) Get(_ context.Context, _ int64) (*domain.WordListRecord, error) {
	if m.record == nil && m.err == nil {
		return nil, domain.ErrNotFound
	}
	return m.record, m.err
}

func (m *mockWordListService) Export(_ context.Context, _ int64, _ string) error {
	return m.err
}

func (m *mockWordListService) Delete(_ context.Context, _ int64) error {
	return m.err
}
