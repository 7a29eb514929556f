// Package anki reads known words out of an Anki collection file.
//
// The collection is opened read-only, so syncing works while Anki itself
// is running. Word status derives from the card state: active cards mark
// words active, suspended cards are partitioned by their flag colour into
// still-known and no-longer-known words.
package anki

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
)

const (
	// Notes join their first card only; extra card templates would
	// duplicate every word.
	activeNotesSQL = `
		SELECT notes.flds FROM notes JOIN cards ON notes.id = cards.nid
		WHERE notes.mid = ? AND cards.queue != -1 AND cards.ord = 0
	`
	suspendedNotesSQL = `
		SELECT notes.flds FROM notes JOIN cards ON notes.id = cards.nid
		WHERE notes.mid = ? AND cards.queue = -1 AND cards.flags = ? AND cards.ord = 0
	`
)

// Source implements driven.FlashcardSource over a collection.anki2 file.
type Source struct {
	settings domain.AnkiSettings
}

var _ driven.FlashcardSource = (*Source)(nil)

// NewSource creates a flashcard source over the configured collection.
func NewSource(settings domain.AnkiSettings) *Source {
	return &Source{settings: settings}
}

// CollectionPath returns the collection file being read.
func (s *Source) CollectionPath() string {
	return s.settings.CollectionPath
}

// ReadEntries extracts the configured note fields and returns one entry
// per distinct word, ordered by word. A word on several cards keeps its
// best status: active beats suspended, suspended beats unknown.
func (s *Source) ReadEntries(ctx context.Context) ([]domain.KnownWordEntry, error) {
	if !s.settings.IsConfigured() {
		return nil, domain.ErrCollectionUnavailable
	}
	if _, err := os.Stat(s.settings.CollectionPath); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCollectionUnavailable, err)
	}

	db, err := sql.Open("sqlite", "file:"+s.settings.CollectionPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCollectionUnavailable, err)
	}
	defer db.Close()

	targets, err := s.fieldTargets(ctx, db)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]domain.WordStatus)
	for _, target := range targets {
		if err := s.collectWords(ctx, db, target, statuses); err != nil {
			return nil, err
		}
	}

	entries := make([]domain.KnownWordEntry, 0, len(statuses))
	for word, status := range statuses {
		entries = append(entries, domain.KnownWordEntry{
			Word:   word,
			Source: domain.SourceSynced,
			Status: status,
		})
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Word < entries[b].Word
	})
	return entries, nil
}

// fieldTarget is one resolved notetype/field pair: the notetype id to
// filter notes by and the field's position in the fields string.
type fieldTarget struct {
	notetypeID int64
	fieldIndex int
}

// fieldTargets resolves the configured notetype/field pairs against the
// collection's notetype table.
func (s *Source) fieldTargets(ctx context.Context, db *sql.DB) ([]fieldTarget, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT notetypes.id, notetypes.name, fields.name, fields.ord
		FROM notetypes JOIN fields ON notetypes.id = fields.ntid
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying notetypes: %v", domain.ErrCollectionUnavailable, err)
	}
	defer rows.Close()

	wanted := make(map[domain.NoteField]bool, len(s.settings.NoteFields))
	for _, nf := range s.settings.NoteFields {
		wanted[nf] = true
	}

	var targets []fieldTarget //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id, ord int64
		var notetype, field string
		if err := rows.Scan(&id, &notetype, &field, &ord); err != nil {
			return nil, fmt.Errorf("scanning notetype field: %w", err)
		}
		if wanted[domain.NoteField{Notetype: notetype, Field: field}] {
			targets = append(targets, fieldTarget{notetypeID: id, fieldIndex: int(ord)})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notetype fields: %w", err)
	}

	return targets, nil
}

// collectWords harvests one notetype field under all three card states,
// merging into statuses with best-status precedence.
func (s *Source) collectWords(ctx context.Context, db *sql.DB, target fieldTarget, statuses map[string]domain.WordStatus) error {
	queries := []struct {
		status domain.WordStatus
		sql    string
		args   []any
	}{
		{domain.StatusActive, activeNotesSQL, []any{target.notetypeID}},
		{domain.StatusSuspended, suspendedNotesSQL, []any{target.notetypeID, s.settings.SuspendedKnownFlag}},
		{domain.StatusUnknown, suspendedNotesSQL, []any{target.notetypeID, s.settings.SuspendedUnknownFlag}},
	}

	for _, q := range queries {
		fields, err := queryFields(ctx, db, q.sql, q.args, target.fieldIndex)
		if err != nil {
			return err
		}
		for _, text := range fields {
			for _, word := range splitHanWords(text) {
				current, seen := statuses[word]
				if !seen || q.status < current {
					statuses[word] = q.status
				}
			}
		}
	}
	return nil
}

// queryFields runs a notes query and extracts the target field from each
// returned fields string.
func queryFields(ctx context.Context, db *sql.DB, query string, args []any, fieldIndex int) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var fields []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var flds string
		if err := rows.Scan(&flds); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		fields = append(fields, fieldAt(flds, fieldIndex))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	return fields, nil
}

// fieldAt extracts one field from a note's fields string. Fields are
// separated by the 0x1f unit separator.
func fieldAt(flds string, index int) string {
	parts := strings.Split(flds, "\x1f")
	if index < 0 || index >= len(parts) {
		return ""
	}
	return parts[index]
}

// splitHanWords splits field text into words on every non-Han rune, so
// annotations like pinyin or English glosses never leak into vocabulary.
func splitHanWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !domain.IsHan(r)
	})
}
