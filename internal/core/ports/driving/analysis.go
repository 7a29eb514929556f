package driving

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// AnalysisService runs the vocabulary analysis pipeline over a book and
// persists the resulting word lists.
type AnalysisService interface {
	// AnalyzeBook aggregates an already segmented book against the
	// current vocabulary and returns the run session.
	AnalyzeBook(ctx context.Context, book *domain.Book) (*domain.AnalysisSession, error)

	// AnalyzeFile parses and segments an ebook file, then analyses it.
	AnalyzeFile(ctx context.Context, path string, mode domain.SegmentationMode) (*domain.AnalysisSession, error)

	// AnalyzeStored loads a book from the library and analyses it.
	AnalyzeStored(ctx context.Context, title, author string) (*domain.AnalysisSession, error)

	// SaveWordList builds the word list for the criteria and persists it,
	// returning the assigned id. When the criteria select nothing and
	// allowEmpty is false, nothing is persisted and
	// domain.ErrEmptySelection is returned. The session stays valid after
	// a domain.ErrStorageFailure, so the save can be retried without
	// re-running the analysis.
	SaveWordList(ctx context.Context, session *domain.AnalysisSession, criteria domain.FilterCriteria, allowEmpty bool) (int64, error)
}
