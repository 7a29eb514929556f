// Package cli implements the hanci command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanci-tools/hanci-cli/internal/adapters/driven/anki"
	"github.com/hanci-tools/hanci-cli/internal/adapters/driven/config/file"
	"github.com/hanci-tools/hanci-cli/internal/adapters/driven/ebook/epub"
	segexec "github.com/hanci-tools/hanci-cli/internal/adapters/driven/segmenter/exec"
	"github.com/hanci-tools/hanci-cli/internal/adapters/driven/storage/sqlite"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
	"github.com/hanci-tools/hanci-cli/internal/core/services"
	"github.com/hanci-tools/hanci-cli/internal/logger"
)

// version is set at build time via -ldflags "-X .../cli.version=v0.x.y".
var version = "dev"

// Persistent flags.
var (
	verboseFlag bool
	configDir   string
	dataDir     string
)

// Services used by the commands. Wired by initServices before a command
// runs; tests replace them with fakes.
var (
	vocabularyService driving.VocabularyService
	analysisService   driving.AnalysisService
	syncService       driving.SyncService
	libraryService    driving.LibraryService
	wordListService   driving.WordListService
	settingsService   driving.SettingsService
)

// store holds the open database so Execute can close it on the way out.
var store *sqlite.Store

// wireDisabled turns initServices into a flag-only pass. Tests inject
// their own service fakes and must not touch the real configuration or
// database.
var wireDisabled bool

var rootCmd = &cobra.Command{
	Use:   "hanci",
	Short: "Chinese vocabulary analysis for ebooks",
	Long: `hanci tracks the Chinese words you know and measures ebooks
against them: which words and characters you will meet, how many you
already know, and which ones are worth studying before you start
reading.

Known words come from two places: word files you add yourself, and a
flashcard collection synchronised with 'hanci sync'. Books are EPUB
files segmented into words by an external segmenter command.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose progress output on stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default ~/.hanci)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory holding the database (default from configuration)")
}

// Execute runs the root command and closes the database afterwards.
func Execute(ctx context.Context) error {
	defer Shutdown()
	return rootCmd.ExecuteContext(ctx)
}

// Shutdown releases the database if a command opened it.
func Shutdown() {
	if store != nil {
		store.Close() //nolint:errcheck
		store = nil
	}
}

// initServices wires the real adapters and services behind the command
// about to run. Commands that never reach configuration or storage skip
// wiring entirely, and the config command group stops after the
// settings layer so inspecting configuration never creates a database.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if wireDisabled || !needsServices(cmd) {
		return nil
	}
	if settingsService == nil {
		if err := wireSettings(); err != nil {
			return err
		}
	}
	if !needsDatabase(cmd) {
		return nil
	}
	if vocabularyService != nil {
		return nil
	}
	return wireStores()
}

// needsServices reports whether the command touches configuration or
// storage at all.
func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion":
			return false
		}
	}
	return true
}

// needsDatabase reports whether the command reaches past configuration
// into the database.
func needsDatabase(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return false
		}
	}
	return true
}

func wireSettings() error {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening configuration: %w", err)
	}
	settingsService = services.NewSettingsService(configStore)
	return nil
}

func wireStores() error {
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	dir := dataDir
	if dir == "" {
		dir, err = settingsService.DataDir()
		if err != nil {
			return fmt.Errorf("resolving data directory: %w", err)
		}
	}

	st, err := sqlite.NewStore(dir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	store = st
	logger.Debug("Database: %s", st.Path())

	flashcards := anki.NewSource(settings.Anki)
	parser := epub.New()
	segmenter := segexec.NewSegmenter(settings.Segmenter)

	vocabularyService = services.NewVocabularyService(st.VocabStore())
	syncService = services.NewSyncService(st.VocabStore(), flashcards)
	libraryService = services.NewLibraryService(st.BookStore(), parser, segmenter)
	analysisService = services.NewAnalysisService(
		vocabularyService, st.BookStore(), parser, segmenter, st.WordListStore())
	wordListService = services.NewWordListService(st.WordListStore())
	return nil
}
