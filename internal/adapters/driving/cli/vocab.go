package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the known-word vocabulary",
	Long: `Add, remove and inspect the words you know.

Manually added words always count as known. Words synchronised from a
flashcard collection carry a status: active, suspended, or
unknown-status for words that later vanished from the collection.`,
}

var vocabAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add known words from a file",
	Long:  `Reads words from a file, one per line, and adds them to the manual vocabulary.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runVocabAdd,
}

var vocabRemoveCmd = &cobra.Command{
	Use:   "remove [file]",
	Short: "Remove manually added words listed in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runVocabRemove,
}

var vocabShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the known vocabulary",
	RunE:  runVocabShow,
}

var vocabClassifyCmd = &cobra.Command{
	Use:   "classify [words...]",
	Short: "Report whether words are known and where they come from",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVocabClassify,
}

var vocabStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vocabulary statistics",
	RunE:  runVocabStats,
}

// Flags for vocab show.
var (
	vocabShowKind   string
	vocabShowStatus string
)

func init() {
	vocabShowCmd.Flags().StringVar(&vocabShowKind, "kind", "words", "what to list: words or chars")
	vocabShowCmd.Flags().StringVar(&vocabShowStatus, "status", "", "only words with this status: active, suspended or unknown-status")

	vocabCmd.AddCommand(vocabAddCmd)
	vocabCmd.AddCommand(vocabRemoveCmd)
	vocabCmd.AddCommand(vocabShowCmd)
	vocabCmd.AddCommand(vocabClassifyCmd)
	vocabCmd.AddCommand(vocabStatsCmd)
	rootCmd.AddCommand(vocabCmd)
}

func runVocabAdd(cmd *cobra.Command, args []string) error {
	if vocabularyService == nil {
		return errors.New("vocabulary service not configured")
	}

	words, err := readWordFile(args[0])
	if err != nil {
		return err
	}

	report, err := vocabularyService.AddWords(cmd.Context(), words)
	if err != nil {
		return fmt.Errorf("adding words: %w", err)
	}

	cmd.Printf("Submitted %d words: %d already known, %d added.\n",
		report.Submitted, report.AlreadyKnown, report.Added)
	return nil
}

func runVocabRemove(cmd *cobra.Command, args []string) error {
	if vocabularyService == nil {
		return errors.New("vocabulary service not configured")
	}

	words, err := readWordFile(args[0])
	if err != nil {
		return err
	}

	if err := vocabularyService.RemoveWords(cmd.Context(), words); err != nil {
		return fmt.Errorf("removing words: %w", err)
	}

	cmd.Printf("Removed %d words from the manual vocabulary.\n", len(words))
	return nil
}

func runVocabShow(cmd *cobra.Command, _ []string) error {
	if vocabularyService == nil {
		return errors.New("vocabulary service not configured")
	}

	switch vocabShowKind {
	case "chars":
		chars, err := vocabularyService.Chars(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing characters: %w", err)
		}
		for _, c := range chars {
			cmd.Println(c)
		}
		return nil
	case "words":
		// Handled below.
	default:
		return fmt.Errorf("unknown kind %q: use words or chars", vocabShowKind)
	}

	var wantStatus domain.WordStatus
	filtered := vocabShowStatus != ""
	if filtered {
		status, err := parseWordStatus(vocabShowStatus)
		if err != nil {
			return err
		}
		wantStatus = status
	}

	entries, err := vocabularyService.Words(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing words: %w", err)
	}
	for _, e := range entries {
		if filtered && e.Status != wantStatus {
			continue
		}
		cmd.Println(e.Word)
	}
	return nil
}

func runVocabClassify(cmd *cobra.Command, args []string) error {
	if vocabularyService == nil {
		return errors.New("vocabulary service not configured")
	}

	results, err := vocabularyService.Classify(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("classifying words: %w", err)
	}

	for _, c := range results {
		if !c.Known {
			cmd.Printf("%s\tunknown\n", c.Word)
			continue
		}
		cmd.Printf("%s\tknown\t%s\t%s\n", c.Word, c.Source, c.Status)
	}
	return nil
}

func runVocabStats(cmd *cobra.Command, _ []string) error {
	if vocabularyService == nil {
		return errors.New("vocabulary service not configured")
	}

	stats, err := vocabularyService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("computing statistics: %w", err)
	}

	cmd.Println("Words")
	cmd.Printf("  Total:          %d\n", stats.TotalWords)
	cmd.Printf("  Manual:         %d\n", stats.ManualWords)
	cmd.Printf("  Active:         %d\n", stats.ActiveWords)
	cmd.Printf("  Suspended:      %d\n", stats.SuspendedWords)
	cmd.Printf("  Unknown status: %d\n", stats.UnknownStatusWords)
	cmd.Println("Characters")
	cmd.Printf("  Known:          %d\n", stats.KnownChars)
	cmd.Printf("  Active:         %d\n", stats.ActiveChars)
	return nil
}

// readWordFile reads one word per line, skipping blanks.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word file: %w", err)
	}
	return words, nil
}

func parseWordStatus(s string) (domain.WordStatus, error) {
	switch s {
	case "active":
		return domain.StatusActive, nil
	case "suspended":
		return domain.StatusSuspended, nil
	case "unknown-status":
		return domain.StatusUnknown, nil
	}
	return 0, fmt.Errorf("unknown status %q: use active, suspended or unknown-status", s)
}
