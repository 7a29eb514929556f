package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the stored-book library",
	Long: `Import, list and remove segmented books.

Imported books are parsed from EPUB, segmented once by the configured
segmenter command, and stored. Later analyses of a stored book reuse
the stored segmentation instead of running the segmenter again.`,
}

var bookAddCmd = &cobra.Command{
	Use:   "add [epub-file]",
	Short: "Parse, segment and store an ebook",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookAdd,
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored books",
	RunE:  runBookList,
}

var bookRemoveCmd = &cobra.Command{
	Use:   "remove [title] [author]",
	Short: "Remove a stored book",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runBookRemove,
}

var bookDictOnly bool

func init() {
	bookAddCmd.Flags().BoolVar(&bookDictOnly, "dict-only", false, "segment with dictionary words only")

	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookRemoveCmd)
	rootCmd.AddCommand(bookCmd)
}

func runBookAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	mode := domain.SegmentationDefault
	if bookDictOnly {
		mode = domain.SegmentationDictOnly
	}

	book, err := libraryService.ImportFile(cmd.Context(), args[0], mode)
	if err != nil {
		return fmt.Errorf("importing book: %w", err)
	}

	cmd.Printf("Stored %s: %d chapters, %d words.\n",
		book.Ref(), len(book.Chapters), book.WordCount())
	return nil
}

func runBookList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	refs, err := libraryService.Books(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}

	if len(refs) == 0 {
		cmd.Println("No stored books.")
		return nil
	}

	cmd.Println("Stored books:")
	for _, ref := range refs {
		cmd.Printf("  %s\n", ref)
	}
	return nil
}

func runBookRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	title := args[0]
	author := ""
	if len(args) > 1 {
		author = args[1]
	}

	if err := libraryService.Remove(cmd.Context(), title, author); err != nil {
		return fmt.Errorf("removing book: %w", err)
	}

	cmd.Printf("Removed %s.\n", domain.BookRef{Title: title, Author: author})
	return nil
}
