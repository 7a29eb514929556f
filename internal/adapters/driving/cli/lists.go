package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Browse saved word lists",
	Long: `Shows the history of word lists saved from analysis runs.

Use the subcommands to inspect one list's chapter-partitioned words or
to export its stored JSON.`,
	RunE: runListsHistory,
}

var listsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print one word list, partitioned by chapter",
	Args:  cobra.ExactArgs(1),
	RunE:  runListsShow,
}

var listsExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a word list's stored JSON",
	Long: `Writes the list's stored JSON, byte for byte, to the output file.
Without --output the JSON goes to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runListsExport,
}

var listsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved word list",
	Args:  cobra.ExactArgs(1),
	RunE:  runListsDelete,
}

// Flags for lists.
var (
	listsBook   string
	listsAuthor string
	listsLimit  int
	listsOutput string
)

func init() {
	listsCmd.Flags().StringVar(&listsBook, "book", "", "only lists for this book title")
	listsCmd.Flags().StringVar(&listsAuthor, "author", "", "only lists for this author")
	listsCmd.Flags().IntVar(&listsLimit, "limit", 0, "maximum number of lists (0 = all)")
	listsExportCmd.Flags().StringVarP(&listsOutput, "output", "o", "", "output file (default stdout)")

	listsCmd.AddCommand(listsShowCmd)
	listsCmd.AddCommand(listsExportCmd)
	listsCmd.AddCommand(listsDeleteCmd)
	rootCmd.AddCommand(listsCmd)
}

func runListsHistory(cmd *cobra.Command, _ []string) error {
	if wordListService == nil {
		return errors.New("word list service not configured")
	}

	filter := domain.WordListFilter{
		BookName:   listsBook,
		AuthorName: listsAuthor,
		Limit:      listsLimit,
	}
	records, err := wordListService.History(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No saved word lists.")
		return nil
	}

	cmd.Printf("%-6s%-20s%-24s%s\n", "ID", "Created", "Book", "Filter")
	for _, r := range records {
		book := r.BookName
		if r.AuthorName != "" {
			book = fmt.Sprintf("%s (%s)", r.BookName, r.AuthorName)
		}
		cmd.Printf("%-6d%-20s%-24s%s\n",
			r.ID, r.CreateTime.Format("2006-01-02 15:04"), book, r.Criteria)
	}
	return nil
}

func runListsShow(cmd *cobra.Command, args []string) error {
	if wordListService == nil {
		return errors.New("word list service not configured")
	}

	id, err := parseListID(args[0])
	if err != nil {
		return err
	}

	record, err := wordListService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("loading word list %d: %w", id, err)
	}
	chapters, err := record.ChapterWords()
	if err != nil {
		return err
	}

	author := ""
	if record.AuthorName != "" {
		author = fmt.Sprintf(" (%s)", record.AuthorName)
	}
	cmd.Printf("Word list %d: %s%s, created %s, %s\n",
		record.ID, record.BookName, author,
		record.CreateTime.Format("2006-01-02 15:04"), record.Criteria)

	for _, ch := range chapters {
		cmd.Printf("\n%s (%d words)\n", ch.Title, len(ch.Entries))
		for _, e := range ch.Entries {
			cmd.Printf("  %s (%d)\n", e.Word, e.TotalOccurrence)
		}
	}
	return nil
}

func runListsExport(cmd *cobra.Command, args []string) error {
	if wordListService == nil {
		return errors.New("word list service not configured")
	}

	id, err := parseListID(args[0])
	if err != nil {
		return err
	}

	if listsOutput == "" {
		record, err := wordListService.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("loading word list %d: %w", id, err)
		}
		cmd.Println(record.ListJSON)
		return nil
	}

	if err := wordListService.Export(cmd.Context(), id, listsOutput); err != nil {
		return fmt.Errorf("exporting word list %d: %w", id, err)
	}
	cmd.Printf("Exported word list %d to %s.\n", id, listsOutput)
	return nil
}

func runListsDelete(cmd *cobra.Command, args []string) error {
	if wordListService == nil {
		return errors.New("word list service not configured")
	}

	id, err := parseListID(args[0])
	if err != nil {
		return err
	}

	if err := wordListService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("deleting word list %d: %w", id, err)
	}
	cmd.Printf("Deleted word list %d.\n", id)
	return nil
}

func parseListID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid word list id %q", s)
	}
	return id, nil
}
