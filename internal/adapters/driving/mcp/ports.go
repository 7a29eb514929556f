package mcp

import (
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Vocabulary answers known-word queries.
	Vocabulary driving.VocabularyService

	// WordLists serves the saved word lists.
	WordLists driving.WordListService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Vocabulary == nil {
		return ErrMissingVocabularyService
	}
	// WordLists is optional; without it the list tools report not found.
	return nil
}
