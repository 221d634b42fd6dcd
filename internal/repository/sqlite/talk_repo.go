// Package sqlite is a single-file TalkRepository backed by the pure Go SQLite driver.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"talkschedule/internal/domain"
)

//go:embed schema.sql
var schema string

// Open opens (creating if needed) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

type talkRepository struct {
	DB *sql.DB
}

// NewTalkRepository returns a domain.TalkRepository stored in SQLite.
func NewTalkRepository(db *sql.DB) domain.TalkRepository {
	return &talkRepository{DB: db}
}

const selectTalks = `SELECT id, date, start_time, end_time, title, speakers, description, categories, created_at FROM talks`

const pruneCategories = `
	DELETE FROM categories
	WHERE name NOT IN (SELECT DISTINCT j.value FROM talks, json_each(talks.categories) AS j)
`

func (r *talkRepository) List(ctx context.Context) ([]*domain.Talk, error) {
	return r.query(ctx, selectTalks+` ORDER BY date, start_time`)
}

func (r *talkRepository) ListByDate(ctx context.Context, date string) ([]*domain.Talk, error) {
	return r.query(ctx, selectTalks+` WHERE date = ? ORDER BY start_time`, date)
}

func (r *talkRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Talk, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	talks := []*domain.Talk{}
	for rows.Next() {
		var (
			t                    domain.Talk
			start, end, created  int64
			speakers, categories string
		)
		if err := rows.Scan(&t.ID, &t.Date, &start, &end, &t.Title, &speakers, &t.Description, &categories, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(speakers), &t.Speakers); err != nil {
			return nil, fmt.Errorf("decode speakers of talk %s: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(categories), &t.Categories); err != nil {
			return nil, fmt.Errorf("decode categories of talk %s: %w", t.ID, err)
		}
		t.StartTime = time.Unix(start, 0).UTC()
		t.EndTime = time.Unix(end, 0).UTC()
		t.CreatedAt = time.Unix(0, created).UTC()
		talks = append(talks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return talks, nil
}

// Create inserts the talk and the categories it introduces in one transaction.
// All category reads happen before the first write.
func (r *talkRepository) Create(ctx context.Context, t *domain.Talk) error {
	speakers, err := json.Marshal(t.Speakers)
	if err != nil {
		return err
	}
	categories, err := json.Marshal(t.Categories)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	missing, err := missingCategories(ctx, tx, t.Categories)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO talks (id, date, start_time, end_time, title, speakers, description, categories, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, t.Date, t.StartTime.Unix(), t.EndTime.Unix(), t.Title, string(speakers), t.Description, string(categories), createdAt.UnixNano())
	if err != nil {
		var serr *msqlite.Error
		if errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return domain.ErrSlotUnavailable
		}
		return err
	}
	for _, name := range missing {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	t.ID = id
	t.CreatedAt = createdAt
	return nil
}

func missingCategories(ctx context.Context, tx *sql.Tx, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	rows, err := tx.QueryContext(ctx, `SELECT name FROM categories WHERE name IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]struct{}, len(names))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		known[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var missing []string
	for _, n := range names {
		if _, ok := known[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing, nil
}

func (r *talkRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM talks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, pruneCategories); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *talkRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *talkRepository) RebuildCategories(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (name) SELECT DISTINCT j.value FROM talks, json_each(talks.categories) AS j`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, pruneCategories); err != nil {
		return err
	}
	return tx.Commit()
}
