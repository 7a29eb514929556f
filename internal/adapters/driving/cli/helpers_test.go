package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hanci-tools/hanci-cli/internal/adapters/driven/storage/memory"
	"github.com/hanci-tools/hanci-cli/internal/core/services"
)

func TestMain(m *testing.M) {
	// Commands run against injected fakes; wiring real adapters would
	// touch the developer's configuration and database.
	wireDisabled = true
	os.Exit(m.Run())
}

// testEnv exposes the memory stores behind the injected services so
// tests can seed data directly.
type testEnv struct {
	vocab *memory.VocabStore
	books *memory.BookStore
	lists *memory.WordListStore
}

// setupTestServices swaps every command service for one backed by
// memory stores. The returned cleanup restores the previous services
// and resets all command flags.
func setupTestServices() (*testEnv, func()) {
	env := &testEnv{
		vocab: memory.NewVocabStore(),
		books: memory.NewBookStore(),
		lists: memory.NewWordListStore(),
	}

	oldVocabulary := vocabularyService
	oldAnalysis := analysisService
	oldSync := syncService
	oldLibrary := libraryService
	oldWordList := wordListService
	oldSettings := settingsService

	vocabSvc := services.NewVocabularyService(env.vocab)
	vocabularyService = vocabSvc
	analysisService = services.NewAnalysisService(vocabSvc, env.books, nil, nil, env.lists)
	syncService = services.NewSyncService(env.vocab, nil)
	libraryService = services.NewLibraryService(env.books, nil, nil)
	wordListService = services.NewWordListService(env.lists)
	settingsService = services.NewSettingsService(memory.NewConfigStore())

	return env, func() {
		vocabularyService = oldVocabulary
		analysisService = oldAnalysis
		syncService = oldSync
		libraryService = oldLibrary
		wordListService = oldWordList
		settingsService = oldSettings
	}
}

// execute runs the root command with the given arguments and returns
// the combined output. Flags are reset afterwards so values do not
// leak between tests.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	verboseFlag = false
	configDir = ""
	dataDir = ""
	vocabShowKind = "words"
	vocabShowStatus = ""
	syncWatch = false
	bookDictOnly = false
	analyzeBook = ""
	analyzeMinWords = -1
	analyzeMinChars = -1
	analyzeDictOnly = false
	analyzeSave = false
	analyzeStrict = false
	analyzeJSON = false
	listsBook = ""
	listsAuthor = ""
	listsLimit = 0
	listsOutput = ""
	mcpHTTPAddr = ""
}

// writeWordFile writes one word per line into a temp file.
func writeWordFile(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("writing word file: %v", err)
	}
	return path
}
