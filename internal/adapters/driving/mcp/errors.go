// Package mcp provides an MCP (Model Context Protocol) server adapter for hanci.
// It enables AI assistants like Claude to query the known vocabulary and the
// saved word lists.
package mcp

import "errors"

// ErrMissingVocabularyService is returned when the vocabulary service is not provided.
var ErrMissingVocabularyService = errors.New("mcp: vocabulary service is required")
