// Package exec invokes the external word-segmenter command.
//
// The contract matches han-segmenter: the raw book is written to a
// temp file as JSON, the command runs with `-j <file>` (plus `-d` in
// dictionary-only mode), and stdout carries the segmented book JSON.
package exec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

// Segmenter runs the configured segmentation command.
type Segmenter struct {
	settings domain.SegmenterSettings
}

// NewSegmenter creates a segmenter around the configured command.
func NewSegmenter(settings domain.SegmenterSettings) *Segmenter {
	return &Segmenter{settings: settings}
}

// Command returns the configured executable.
func (s *Segmenter) Command() string {
	return s.settings.Command
}

// bookDoc is the JSON handed to the segmenter command.
type bookDoc struct {
	Title    string       `json:"title"`
	Author   string       `json:"author"`
	Chapters []chapterDoc `json:"chapters"`
}

type chapterDoc struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// segmentationDoc is the JSON the command prints on stdout.
type segmentationDoc struct {
	TitleCut    []string     `json:"title_cut"`
	ChapterCuts []chapterCut `json:"chapter_cuts"`
}

type chapterCut struct {
	Title string   `json:"title"`
	Cut   []string `json:"cut"`
}

// Segment turns a raw book into a segmented one by round-tripping it
// through the external command.
func (s *Segmenter) Segment(ctx context.Context, raw *domain.RawBook, mode domain.SegmentationMode) (*domain.Book, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if s.settings.Command == "" {
		return nil, fmt.Errorf("%w: no command configured", domain.ErrSegmenterUnavailable)
	}

	doc := bookDoc{
		Title:    raw.Title,
		Author:   raw.Author,
		Chapters: make([]chapterDoc, 0, len(raw.Chapters)),
	}
	for _, ch := range raw.Chapters {
		doc.Chapters = append(doc.Chapters, chapterDoc{Title: ch.Title, Text: ch.Text})
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling book: %w", err)
	}

	input := filepath.Join(os.TempDir(), "hanci-book-"+uuid.New().String()+".json")
	if err := os.WriteFile(input, payload, 0o600); err != nil {
		return nil, fmt.Errorf("writing segmenter input: %w", err)
	}
	defer os.Remove(input) //nolint:errcheck

	args := append([]string{}, s.settings.Args...)
	args = append(args, "-j", input)
	if mode == domain.SegmentationDictOnly {
		args = append(args, "-d")
	}

	cmd := osexec.CommandContext(ctx, s.settings.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, runErr(err, stderr.String())
	}

	var seg segmentationDoc
	if err := json.Unmarshal(stdout.Bytes(), &seg); err != nil {
		return nil, fmt.Errorf("parsing segmenter output: %w", err)
	}

	book := &domain.Book{
		Title:    raw.Title,
		Author:   raw.Author,
		Chapters: make([]domain.Chapter, 0, len(seg.ChapterCuts)),
	}
	for _, cut := range seg.ChapterCuts {
		book.Chapters = append(book.Chapters, domain.Chapter{Title: cut.Title, Words: cut.Cut})
	}
	return book, nil
}

// runErr wraps a failed run, keeping whatever the command wrote to
// stderr.
func runErr(err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return fmt.Errorf("%w: %v", domain.ErrSegmenterUnavailable, err)
	}
	return fmt.Errorf("%w: %v: %s", domain.ErrSegmenterUnavailable, err, stderr)
}
