package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for hanci resources.
	uriScheme = "hanci://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the known characters.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "vocabulary/chars",
		Name:        "known-chars",
		Description: "Characters appearing in at least one known word",
		MIMEType:    "application/json",
	}, s.handleKnownCharsResource)

	// Static resource for the word-list history.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "wordlists",
		Name:        "wordlists",
		Description: "Metadata of the saved word lists, newest first",
		MIMEType:    "application/json",
	}, s.handleWordListsResource)

	// Template for one word list's stored content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "wordlists/{id}",
		Name:        "wordlist-content",
		Description: "One saved word list's stored JSON, keyed by numbered chapter",
		MIMEType:    "application/json",
	}, s.handleWordListContentResource)
}

// handleKnownCharsResource returns the known characters as a JSON array.
func (s *Server) handleKnownCharsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	chars, err := s.ports.Vocabulary.Chars(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	if chars == nil {
		chars = []string{}
	}

	data, err := json.Marshal(chars)
	if err != nil {
		return nil, fmt.Errorf("marshalling characters: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleWordListsResource returns the metadata of all saved word lists.
func (s *Server) handleWordListsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.WordLists == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	records, err := s.ports.WordLists.History(ctx, domain.WordListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing word lists: %w", err)
	}

	// Build simplified list metadata.
	type listInfo struct {
		ID      int64  `json:"id"`
		Book    string `json:"book"`
		Author  string `json:"author,omitempty"`
		Created string `json:"created"`
	}

	infos := make([]listInfo, len(records))
	for i, r := range records {
		infos[i] = listInfo{
			ID:      r.ID,
			Book:    r.BookName,
			Author:  r.AuthorName,
			Created: r.CreateTime.Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling word lists: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleWordListContentResource returns one word list's stored JSON.
func (s *Server) handleWordListContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.WordLists == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract the id from a URI like hanci://wordlists/{id}
	id, ok := extractWordListID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.WordLists.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading word list %d: %w", id, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     record.ListJSON,
		}},
	}, nil
}

// extractWordListID extracts the numeric id from a URI like hanci://wordlists/{id}.
func extractWordListID(uri string) (int64, bool) {
	const prefix = uriScheme + "wordlists/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
