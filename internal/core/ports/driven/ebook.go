package driven

import (
	"context"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// EbookParser extracts raw chapter text from an ebook file.
type EbookParser interface {
	// Parse reads the ebook at path into its title, author and chapter
	// texts. Returns domain.ErrMalformedBook when the file cannot be
	// interpreted.
	Parse(ctx context.Context, path string) (*domain.RawBook, error)
}
