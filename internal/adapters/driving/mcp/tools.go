package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

// VocabStatsInput is the input schema for the vocab_stats tool.
type VocabStatsInput struct{}

// VocabStatsOutput is the output schema for the vocab_stats tool.
type VocabStatsOutput struct {
	TotalWords         int `json:"total_words"`
	ManualWords        int `json:"manual_words"`
	ActiveWords        int `json:"active_words"`
	SuspendedWords     int `json:"suspended_words"`
	UnknownStatusWords int `json:"unknown_status_words"`
	KnownChars         int `json:"known_chars"`
	ActiveChars        int `json:"active_chars"`
}

// ClassifyWordsInput is the input schema for the classify_words tool.
type ClassifyWordsInput struct {
	Words []string `json:"words" jsonschema:"the words to look up in the vocabulary"`
}

// ClassifyWordsOutput is the output schema for the classify_words tool.
type ClassifyWordsOutput struct {
	Results []ClassificationOutput `json:"results"`
	Count   int                    `json:"count"`
}

// ClassificationOutput represents one word's classification.
type ClassificationOutput struct {
	Word   string `json:"word"`
	Known  bool   `json:"known"`
	Source string `json:"source,omitempty"`
	Status string `json:"status,omitempty"`
}

// ListWordListsInput is the input schema for the list_word_lists tool.
type ListWordListsInput struct {
	Book   string `json:"book,omitempty" jsonschema:"only lists for this book title"`
	Author string `json:"author,omitempty" jsonschema:"only lists for this author"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of lists to return (default 20)"`
}

// ListWordListsOutput is the output schema for the list_word_lists tool.
type ListWordListsOutput struct {
	Lists []WordListInfo `json:"lists"`
	Count int            `json:"count"`
}

// WordListInfo represents one saved word list's metadata.
type WordListInfo struct {
	ID       int64  `json:"id"`
	Book     string `json:"book"`
	Author   string `json:"author,omitempty"`
	Created  string `json:"created"`
	Criteria string `json:"criteria"`
}

// GetWordListInput is the input schema for the get_word_list tool.
type GetWordListInput struct {
	ID int64 `json:"id" jsonschema:"the word list id, as reported by list_word_lists"`
}

// GetWordListOutput is the output schema for the get_word_list tool.
type GetWordListOutput struct {
	WordListInfo
	Chapters []ChapterWordsOutput `json:"chapters"`
}

// ChapterWordsOutput represents one chapter's selected words.
type ChapterWordsOutput struct {
	Chapter int               `json:"chapter"`
	Title   string            `json:"title"`
	Entries []WordEntryOutput `json:"entries"`
}

// WordEntryOutput represents one selected word.
type WordEntryOutput struct {
	Word            string `json:"word"`
	TotalOccurrence int    `json:"total_occurrence"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vocab_stats",
		Description: "Summarise the known vocabulary by source and flashcard status",
	}, s.handleVocabStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_words",
		Description: "Report whether words are known and where they come from",
	}, s.handleClassifyWords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_word_lists",
		Description: "List saved word lists from past analysis runs",
	}, s.handleListWordLists)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_word_list",
		Description: "Fetch one saved word list, partitioned by chapter",
	}, s.handleGetWordList)
}

// handleVocabStats handles the vocab_stats tool invocation.
func (s *Server) handleVocabStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ VocabStatsInput,
) (*mcp.CallToolResult, VocabStatsOutput, error) {
	stats, err := s.ports.Vocabulary.Stats(ctx)
	if err != nil {
		return nil, VocabStatsOutput{}, err
	}

	output := VocabStatsOutput{
		TotalWords:         stats.TotalWords,
		ManualWords:        stats.ManualWords,
		ActiveWords:        stats.ActiveWords,
		SuspendedWords:     stats.SuspendedWords,
		UnknownStatusWords: stats.UnknownStatusWords,
		KnownChars:         stats.KnownChars,
		ActiveChars:        stats.ActiveChars,
	}
	return nil, output, nil
}

// handleClassifyWords handles the classify_words tool invocation.
func (s *Server) handleClassifyWords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyWordsInput,
) (*mcp.CallToolResult, ClassifyWordsOutput, error) {
	if len(input.Words) == 0 {
		return nil, ClassifyWordsOutput{}, fmt.Errorf("%w: no words given", domain.ErrInvalidInput)
	}

	results, err := s.ports.Vocabulary.Classify(ctx, input.Words)
	if err != nil {
		return nil, ClassifyWordsOutput{}, err
	}

	output := ClassifyWordsOutput{
		Results: make([]ClassificationOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = ClassificationOutput{
			Word:  results[i].Word,
			Known: results[i].Known,
		}
		if results[i].Known {
			output.Results[i].Source = string(results[i].Source)
			output.Results[i].Status = results[i].Status.String()
		}
	}
	return nil, output, nil
}

// handleListWordLists handles the list_word_lists tool invocation.
func (s *Server) handleListWordLists(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListWordListsInput,
) (*mcp.CallToolResult, ListWordListsOutput, error) {
	if s.ports.WordLists == nil {
		return nil, ListWordListsOutput{}, fmt.Errorf("%w: word lists unavailable", domain.ErrNotFound)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := domain.WordListFilter{
		BookName:   input.Book,
		AuthorName: input.Author,
		Limit:      limit,
	}
	records, err := s.ports.WordLists.History(ctx, filter)
	if err != nil {
		return nil, ListWordListsOutput{}, err
	}

	output := ListWordListsOutput{
		Lists: make([]WordListInfo, len(records)),
		Count: len(records),
	}
	for i := range records {
		output.Lists[i] = wordListInfo(&records[i])
	}
	return nil, output, nil
}

// handleGetWordList handles the get_word_list tool invocation.
func (s *Server) handleGetWordList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetWordListInput,
) (*mcp.CallToolResult, GetWordListOutput, error) {
	if s.ports.WordLists == nil {
		return nil, GetWordListOutput{}, fmt.Errorf("%w: word lists unavailable", domain.ErrNotFound)
	}

	record, err := s.ports.WordLists.Get(ctx, input.ID)
	if err != nil {
		return nil, GetWordListOutput{}, err
	}
	chapters, err := record.ChapterWords()
	if err != nil {
		return nil, GetWordListOutput{}, err
	}

	output := GetWordListOutput{
		WordListInfo: wordListInfo(record),
		Chapters:     make([]ChapterWordsOutput, len(chapters)),
	}
	for i, ch := range chapters {
		entries := make([]WordEntryOutput, len(ch.Entries))
		for j, e := range ch.Entries {
			entries[j] = WordEntryOutput{Word: e.Word, TotalOccurrence: e.TotalOccurrence}
		}
		output.Chapters[i] = ChapterWordsOutput{
			Chapter: ch.ChapterIndex,
			Title:   ch.Title,
			Entries: entries,
		}
	}
	return nil, output, nil
}

func wordListInfo(record *domain.WordListRecord) WordListInfo {
	return WordListInfo{
		ID:       record.ID,
		Book:     record.BookName,
		Author:   record.AuthorName,
		Created:  record.CreateTime.Format(time.RFC3339),
		Criteria: record.Criteria.String(),
	}
}
