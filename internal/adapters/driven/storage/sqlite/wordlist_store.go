package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
)

// wordListStore implements driven.WordListStore.
type wordListStore struct {
	store *Store
}

var _ driven.WordListStore = (*wordListStore)(nil)

// Save inserts a new word list and returns its assigned id.
// Timestamps are stored at second precision.
func (s *wordListStore) Save(ctx context.Context, record *domain.WordListRecord) (int64, error) {
	if record == nil {
		return 0, domain.ErrInvalidInput
	}

	var minChars sql.NullInt64
	if t, ok := record.Criteria.CharsThreshold(); ok {
		minChars = sql.NullInt64{Int64: int64(t), Valid: true}
	}

	result, err := s.store.db.ExecContext(ctx, `
		INSERT INTO word_lists (book_name, author_name, create_time, min_occurrence_words, min_occurrence_chars, word_list_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.BookName, record.AuthorName, record.CreateTime.Unix(),
		record.Criteria.MinOccurrenceWords, minChars, record.ListJSON)

	if err != nil {
		return 0, storageErr("saving word list", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("reading word list id", err)
	}
	return id, nil
}

// Get retrieves a word list by id, including its serialised content.
func (s *wordListStore) Get(ctx context.Context, id int64) (*domain.WordListRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, book_name, author_name, create_time, min_occurrence_words, min_occurrence_chars, word_list_json
		FROM word_lists WHERE id = ?
	`, id)

	return scanWordListRecord(row)
}

// List returns word lists matching the filter, newest first. The
// serialised content is left out of the query entirely.
func (s *wordListStore) List(ctx context.Context, filter domain.WordListFilter) ([]domain.WordListRecord, error) {
	query := squirrel.
		Select("id", "book_name", "author_name", "create_time", "min_occurrence_words", "min_occurrence_chars").
		From("word_lists").
		OrderBy("create_time DESC", "id DESC")

	if filter.BookName != "" {
		query = query.Where(squirrel.Eq{"book_name": filter.BookName})
	}
	if filter.AuthorName != "" {
		query = query.Where(squirrel.Eq{"author_name": filter.AuthorName})
	}
	if !filter.Since.IsZero() {
		query = query.Where(squirrel.GtOrEq{"create_time": filter.Since.Unix()})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building word list query: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying word lists: %w", err)
	}
	defer rows.Close()

	var records []domain.WordListRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanWordListSummary(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating word lists: %w", err)
	}

	return records, nil
}

// Delete removes a stored word list.
func (s *wordListStore) Delete(ctx context.Context, id int64) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM word_lists WHERE id = ?", id)
	if err != nil {
		return storageErr("deleting word list", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted word list: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

// scanWordListRecord scans a full word-list row including its content.
func scanWordListRecord(row *sql.Row) (*domain.WordListRecord, error) {
	var record domain.WordListRecord
	var createTime int64
	var minChars sql.NullInt64

	if err := row.Scan(&record.ID, &record.BookName, &record.AuthorName,
		&createTime, &record.Criteria.MinOccurrenceWords, &minChars, &record.ListJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning word list: %w", err)
	}

	record.CreateTime = time.Unix(createTime, 0).UTC()
	if minChars.Valid {
		record.Criteria = record.Criteria.WithCharThreshold(int(minChars.Int64))
	}
	return &record, nil
}

// scanWordListSummary scans a word-list row without its content.
func scanWordListSummary(rows *sql.Rows) (*domain.WordListRecord, error) {
	var record domain.WordListRecord
	var createTime int64
	var minChars sql.NullInt64

	if err := rows.Scan(&record.ID, &record.BookName, &record.AuthorName,
		&createTime, &record.Criteria.MinOccurrenceWords, &minChars); err != nil {
		return nil, fmt.Errorf("scanning word list: %w", err)
	}

	record.CreateTime = time.Unix(createTime, 0).UTC()
	if minChars.Valid {
		record.Criteria = record.Criteria.WithCharThreshold(int(minChars.Int64))
	}
	return &record, nil
}
