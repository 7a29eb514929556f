package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [epub-file]",
	Short: "Analyse a book against the known vocabulary",
	Long: `Runs the vocabulary analysis over a book and prints how much of it
you already know, before and after learning the filtered unknown words.

The book is either an EPUB file, segmented on the fly, or a stored book
addressed with --book "title/author". The word filter keeps unknown
words occurring at least --min-words times; with --min-chars, words
containing an unknown character that frequent are kept as well.

With --save the filtered selection is persisted as a word list for
later export. --strict makes an empty selection an error instead of an
empty result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

// Flags for analyze.
var (
	analyzeBook     string
	analyzeMinWords int
	analyzeMinChars int
	analyzeDictOnly bool
	analyzeSave     bool
	analyzeStrict   bool
	analyzeJSON     bool
)

// Below this width the two summary columns no longer fit next to each
// other and the tables print stacked.
const sideBySideMinWidth = 56

func init() {
	analyzeCmd.Flags().StringVar(&analyzeBook, "book", "", `analyse a stored book, "title/author"`)
	analyzeCmd.Flags().IntVar(&analyzeMinWords, "min-words", -1, "minimum word occurrence (default from configuration)")
	analyzeCmd.Flags().IntVar(&analyzeMinChars, "min-chars", -1, "also keep words with an unknown character this frequent")
	analyzeCmd.Flags().BoolVar(&analyzeDictOnly, "dict-only", false, "segment with dictionary words only")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the selection as a word list")
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false, "fail when the criteria select no words")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	if analyzeBook != "" && len(args) > 0 {
		return errors.New("give either an epub file or --book, not both")
	}
	if analyzeBook == "" && len(args) == 0 {
		return errors.New(`give an epub file or --book "title/author"`)
	}

	ctx := cmd.Context()

	var (
		session *domain.AnalysisSession
		err     error
	)
	if analyzeBook != "" {
		title, author := splitBookRef(analyzeBook)
		session, err = analysisService.AnalyzeStored(ctx, title, author)
	} else {
		mode := domain.SegmentationDefault
		if analyzeDictOnly {
			mode = domain.SegmentationDictOnly
		}
		session, err = analysisService.AnalyzeFile(ctx, args[0], mode)
	}
	if err != nil {
		return fmt.Errorf("analysing book: %w", err)
	}

	criteria := analysisCriteria()
	all := session.Summary(domain.AllWords())
	filtered := session.Summary(criteria)
	selected := len(session.Select(criteria))

	if analyzeStrict && selected == 0 {
		return fmt.Errorf("criteria (%s) selected no words", criteria)
	}

	var listID int64
	if analyzeSave {
		listID, err = analysisService.SaveWordList(ctx, session, criteria, !analyzeStrict)
		if err != nil {
			return fmt.Errorf("saving word list: %w", err)
		}
	}

	if analyzeJSON {
		return printAnalysisJSON(cmd, session, criteria, all, filtered, selected, listID)
	}

	printAnalysisReport(cmd, session, criteria, all, filtered, selected, terminalWidth())
	if analyzeSave {
		cmd.Printf("Saved word list %d.\n", listID)
	}
	return nil
}

// analysisCriteria builds the filter from the flags, falling back to
// the configured word threshold when --min-words is not given.
func analysisCriteria() domain.FilterCriteria {
	minWords := analyzeMinWords
	if minWords < 0 {
		minWords = domain.DefaultAppSettings().Analysis.MinOccurrenceWords
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				minWords = settings.Analysis.MinOccurrenceWords
			}
		}
	}

	criteria := domain.FilterCriteria{MinOccurrenceWords: minWords}
	if analyzeMinChars >= 0 {
		criteria = criteria.WithCharThreshold(analyzeMinChars)
	}
	return criteria
}

// splitBookRef splits "title/author" at the first slash. Without a
// slash the whole string is the title.
func splitBookRef(s string) (title, author string) {
	title, author, _ = strings.Cut(s, "/")
	return title, author
}

func printAnalysisReport(cmd *cobra.Command, session *domain.AnalysisSession, criteria domain.FilterCriteria, all, filtered domain.AnalysisInfo, selected, width int) {
	cmd.Printf("%s: %d chapters\n", session.Book.Ref(), len(session.Book.Chapters))
	cmd.Printf("Filter: %s\n\n", criteria)

	if width >= sideBySideMinWidth {
		printSummaryColumns(cmd, all, filtered)
	} else {
		printSummaryStacked(cmd, all, filtered)
	}

	cmd.Println()
	cmd.Printf("Known now -> after learning the %d selected words:\n", selected)
	for _, row := range session.Ratios(criteria) {
		cmd.Printf("  %-14s %5.1f%% -> %5.1f%%\n", row.Label, row.Before*100, row.After*100)
	}
}

// summaryRow pairs one figure of the two views for tabular output.
type summaryRow struct {
	label         string
	all, filtered int
}

func summaryRows(all, filtered domain.AnalysisInfo) []summaryRow {
	return []summaryRow{
		{"Total words", all.TotalWords, filtered.TotalWords},
		{"  unknown", all.UnknownTotalWords, filtered.UnknownTotalWords},
		{"Unique words", all.UniqueWords, filtered.UniqueWords},
		{"  unknown", all.UnknownUniqueWords, filtered.UnknownUniqueWords},
		{"Total chars", all.TotalChars, filtered.TotalChars},
		{"  unknown", all.UnknownTotalChars, filtered.UnknownTotalChars},
		{"Unique chars", all.UniqueChars, filtered.UniqueChars},
		{"  unknown", all.UnknownUniqueChars, filtered.UnknownUniqueChars},
	}
}

func printSummaryColumns(cmd *cobra.Command, all, filtered domain.AnalysisInfo) {
	cmd.Printf("%-14s%10s%10s\n", "", "All", "Filtered")
	for _, row := range summaryRows(all, filtered) {
		cmd.Printf("%-14s%10d%10d\n", row.label, row.all, row.filtered)
	}
}

func printSummaryStacked(cmd *cobra.Command, all, filtered domain.AnalysisInfo) {
	rows := summaryRows(all, filtered)
	cmd.Println("All:")
	for _, row := range rows {
		cmd.Printf("  %-14s%8d\n", row.label, row.all)
	}
	cmd.Println("Filtered:")
	for _, row := range rows {
		cmd.Printf("  %-14s%8d\n", row.label, row.filtered)
	}
}

// analysisFigures is the wire form of one summary view in --json mode.
type analysisFigures struct {
	TotalWords         int `json:"total_words"`
	UniqueWords        int `json:"unique_words"`
	TotalChars         int `json:"total_chars"`
	UniqueChars        int `json:"unique_chars"`
	UnknownTotalWords  int `json:"unknown_total_words"`
	UnknownUniqueWords int `json:"unknown_unique_words"`
	UnknownTotalChars  int `json:"unknown_total_chars"`
	UnknownUniqueChars int `json:"unknown_unique_chars"`
}

type analysisCriteriaDoc struct {
	MinOccurrenceWords int  `json:"min_occurrence_words"`
	MinOccurrenceChars *int `json:"min_occurrence_chars,omitempty"`
}

type analysisDoc struct {
	Book          string              `json:"book"`
	Author        string              `json:"author,omitempty"`
	Chapters      int                 `json:"chapters"`
	Criteria      analysisCriteriaDoc `json:"criteria"`
	All           analysisFigures     `json:"all"`
	Filtered      analysisFigures     `json:"filtered"`
	SelectedWords int                 `json:"selected_words"`
	WordListID    int64               `json:"word_list_id,omitempty"`
}

func printAnalysisJSON(cmd *cobra.Command, session *domain.AnalysisSession, criteria domain.FilterCriteria, all, filtered domain.AnalysisInfo, selected int, listID int64) error {
	doc := analysisDoc{
		Book:          session.Book.Title,
		Author:        session.Book.Author,
		Chapters:      len(session.Book.Chapters),
		Criteria:      analysisCriteriaDoc{MinOccurrenceWords: criteria.MinOccurrenceWords, MinOccurrenceChars: criteria.MinOccurrenceChars},
		All:           figuresDoc(all),
		Filtered:      figuresDoc(filtered),
		SelectedWords: selected,
		WordListID:    listID,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func figuresDoc(info domain.AnalysisInfo) analysisFigures {
	return analysisFigures{
		TotalWords:         info.TotalWords,
		UniqueWords:        info.UniqueWords,
		TotalChars:         info.TotalChars,
		UniqueChars:        info.UniqueChars,
		UnknownTotalWords:  info.UnknownTotalWords,
		UnknownUniqueWords: info.UnknownUniqueWords,
		UnknownTotalChars:  info.UnknownTotalChars,
		UnknownUniqueChars: info.UnknownUniqueChars,
	}
}

// terminalWidth reports the stdout width, defaulting to 80 when stdout
// is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
