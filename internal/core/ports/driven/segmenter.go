package driven

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// Segmenter cuts raw chapter text into positioned word tokens.
type Segmenter interface {
	// Segment turns a raw book into a segmented one, preserving chapter
	// boundaries and titles. Returns domain.ErrSegmenterUnavailable when
	// the segmenter cannot be invoked.
	Segment(ctx context.Context, raw *domain.RawBook, mode domain.SegmentationMode) (*domain.Book, error)
}
