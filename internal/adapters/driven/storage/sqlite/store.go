package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hanci-tools/hanci-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all vocabulary store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.hanci/data/hanci.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".hanci", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "hanci.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// VocabStore returns a VocabStore interface backed by this store.
func (s *Store) VocabStore() driven.VocabStore {
	return &vocabStore{store: s}
}

// BookStore returns a BookStore interface backed by this store.
func (s *Store) BookStore() driven.BookStore {
	return &bookStore{store: s}
}

// WordListStore returns a WordListStore interface backed by this store.
func (s *Store) WordListStore() driven.WordListStore {
	return &wordListStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Vocab Store ====================

// vocabStore implements driven.VocabStore over the two word tables.
type vocabStore struct {
	store *Store
}

var _ driven.VocabStore = (*vocabStore)(nil)

// ListManual returns every manually added word.
func (s *vocabStore) ListManual(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT word FROM words_external ORDER BY word
	`)
	if err != nil {
		return nil, fmt.Errorf("querying manual words: %w", err)
	}
	defer rows.Close()

	var words []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scanning manual word: %w", err)
		}
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manual words: %w", err)
	}

	return words, nil
}

// AddManual inserts manual words, ignoring those already present.
func (s *vocabStore) AddManual(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words_external (word) VALUES (?)
		ON CONFLICT(word) DO NOTHING
	`)
	if err != nil {
		return storageErr("preparing statement", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, w); err != nil {
			return storageErr("inserting manual word", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing transaction", err)
	}
	return nil
}

// DeleteManual removes manual words. Absent words are ignored.
func (s *vocabStore) DeleteManual(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, "DELETE FROM words_external WHERE word = ?")
	if err != nil {
		return storageErr("preparing statement", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, w); err != nil {
			return storageErr("deleting manual word", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing transaction", err)
	}
	return nil
}

// ListSynced returns every synced entry.
func (s *vocabStore) ListSynced(ctx context.Context) ([]domain.KnownWordEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT word, status FROM words_anki ORDER BY word
	`)
	if err != nil {
		return nil, fmt.Errorf("querying synced words: %w", err)
	}
	defer rows.Close()

	var entries []domain.KnownWordEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.KnownWordEntry
		var status int
		if err := rows.Scan(&e.Word, &status); err != nil {
			return nil, fmt.Errorf("scanning synced word: %w", err)
		}
		e.Source = domain.SourceSynced
		e.Status = domain.WordStatus(status)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating synced words: %w", err)
	}

	return entries, nil
}

// UpsertSynced inserts synced entries or refreshes their status.
func (s *vocabStore) UpsertSynced(ctx context.Context, entries []domain.KnownWordEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words_anki (word, status) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET status = excluded.status
	`)
	if err != nil {
		return storageErr("preparing statement", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Word, int(e.Status)); err != nil {
			return storageErr("upserting synced word", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing transaction", err)
	}
	return nil
}

// MarkSyncedMissing flips the given synced words to unknown status.
// Words stay in the table so once-known vocabulary is never lost.
func (s *vocabStore) MarkSyncedMissing(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, "UPDATE words_anki SET status = ? WHERE word = ?")
	if err != nil {
		return storageErr("preparing statement", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, int(domain.StatusUnknown), w); err != nil {
			return storageErr("marking synced word", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing transaction", err)
	}
	return nil
}

// ==================== Book Store ====================

// bookStore implements driven.BookStore.
type bookStore struct {
	store *Store
}

var _ driven.BookStore = (*bookStore)(nil)

// chapterDoc is the wire form of one chapter in book_json.
type chapterDoc struct {
	Title string   `json:"title"`
	Words []string `json:"words"`
}

// bookDoc is the wire form of a segmented book in book_json. Title and
// author repeat the key columns so the blob is self-contained.
type bookDoc struct {
	Title    string       `json:"title"`
	Author   string       `json:"author"`
	Chapters []chapterDoc `json:"chapters"`
}

// Save stores a book, replacing any previous segmentation.
func (s *bookStore) Save(ctx context.Context, book *domain.Book) error {
	doc := bookDoc{Title: book.Title, Author: book.Author}
	for _, ch := range book.Chapters {
		doc.Chapters = append(doc.Chapters, chapterDoc{Title: ch.Title, Words: ch.Words})
	}
	bookJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling book: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO books (book_name, author_name, book_json)
		VALUES (?, ?, ?)
		ON CONFLICT(book_name, author_name) DO UPDATE SET
			book_json = excluded.book_json
	`, book.Title, book.Author, string(bookJSON))

	if err != nil {
		return storageErr("saving book", err)
	}
	return nil
}

// Get retrieves a book by title and author.
func (s *bookStore) Get(ctx context.Context, title, author string) (*domain.Book, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT book_json FROM books WHERE book_name = ? AND author_name = ?
	`, title, author)

	var bookJSON string
	if err := row.Scan(&bookJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning book: %w", err)
	}

	var doc bookDoc
	if err := json.Unmarshal([]byte(bookJSON), &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling book: %w", err)
	}

	book := &domain.Book{Title: doc.Title, Author: doc.Author}
	for _, ch := range doc.Chapters {
		book.Chapters = append(book.Chapters, domain.Chapter{Title: ch.Title, Words: ch.Words})
	}
	return book, nil
}

// Delete removes a stored book.
func (s *bookStore) Delete(ctx context.Context, title, author string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM books WHERE book_name = ? AND author_name = ?", title, author)
	if err != nil {
		return storageErr("deleting book", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted book: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns the identities of all stored books, ordered by title
// then author.
func (s *bookStore) List(ctx context.Context) ([]domain.BookRef, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT book_name, author_name FROM books ORDER BY book_name, author_name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var refs []domain.BookRef //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ref domain.BookRef
		if err := rows.Scan(&ref.Title, &ref.Author); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return refs, nil
}

// ==================== Helper Functions ====================

// storageErr wraps a failed write so callers can detect a retryable
// storage failure while keeping the driver's message.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageFailure, op, err)
}
