package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise vocabulary from the flashcard collection",
	Long: `Reads the configured flashcard collection and reconciles the synced
vocabulary: collection words are inserted or refreshed with their
current status, and previously synced words that vanished from the
collection are marked unknown-status instead of deleted.

With --watch, hanci keeps running and re-syncs whenever the collection
file changes.`,
	RunE: runSync,
}

var syncWatch bool

func init() {
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "keep watching the collection and re-sync on change")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	report, err := syncService.Sync(cmd.Context())
	if err != nil {
		return err
	}
	printSyncReport(cmd, report)

	if !syncWatch {
		return nil
	}

	cmd.Println("Watching the collection for changes. Press Ctrl-C to stop.")
	err = syncService.Watch(cmd.Context(), func(r *domain.SyncReport) {
		printSyncReport(cmd, r)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printSyncReport(cmd *cobra.Command, report *domain.SyncReport) {
	cmd.Printf("Synced %d collection words: %d upserted, %d marked missing.\n",
		report.CollectionWords, report.Upserted, report.MarkedMissing)
}
