package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"talkschedule/internal/domain"
)

// talksDateStartKey is the unique constraint that prevents double booking a slot.
const talksDateStartKey = "talks_date_start_time_key"

const selectTalks = `
		SELECT id, to_char(date, 'YYYY-MM-DD'), start_time, end_time, title, speakers, description, categories, created_at
		FROM talks
`

const pruneCategories = `
		DELETE FROM categories c
		WHERE NOT EXISTS (SELECT 1 FROM talks t WHERE c.name = ANY(t.categories))
`

// Category rows referenced by an in-flight booking stay locked until it commits, so a
// concurrent prune waits and then re-checks the talks with a fresh snapshot.
const (
	shareCategories  = `SELECT name FROM categories WHERE name = ANY($1) FOR SHARE`
	lockCategories   = `SELECT name FROM categories WHERE name = ANY($1) ORDER BY name FOR UPDATE`
	upsertCategories = `
		INSERT INTO categories (name) SELECT unnest($1::text[])
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	`
	pruneCategoriesOf = `
		DELETE FROM categories c
		WHERE c.name = ANY($1) AND NOT EXISTS (SELECT 1 FROM talks t WHERE c.name = ANY(t.categories))
	`
)

type talkRepository struct {
	DB *sql.DB
}

// NewTalkRepository returns a domain.TalkRepository implemented with Postgres.
func NewTalkRepository(db *sql.DB) domain.TalkRepository {
	return &talkRepository{DB: db}
}

func (r *talkRepository) List(ctx context.Context) ([]*domain.Talk, error) {
	return r.query(ctx, selectTalks+` ORDER BY date, start_time`)
}

func (r *talkRepository) ListByDate(ctx context.Context, date string) ([]*domain.Talk, error) {
	return r.query(ctx, selectTalks+` WHERE date = $1 ORDER BY start_time`, date)
}

func (r *talkRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Talk, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	talks := []*domain.Talk{}
	for rows.Next() {
		t := &domain.Talk{}
		if err := rows.Scan(&t.ID, &t.Date, &t.StartTime, &t.EndTime, &t.Title,
			pq.Array(&t.Speakers), &t.Description, pq.Array(&t.Categories), &t.CreatedAt); err != nil {
			return nil, err
		}
		talks = append(talks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return talks, nil
}

// Create inserts the talk and the categories it introduces in one transaction.
// All category reads happen before the first write, and every category the talk uses is
// row locked until commit.
func (r *talkRepository) Create(ctx context.Context, t *domain.Talk) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	known := make(map[string]struct{}, len(t.Categories))
	rows, err := tx.QueryContext(ctx, shareCategories, pq.Array(t.Categories))
	if err != nil {
		return err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		known[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	var missing []string
	for _, c := range t.Categories {
		if _, ok := known[c]; !ok {
			missing = append(missing, c)
		}
	}

	query := `
		INSERT INTO talks (date, start_time, end_time, title, speakers, description, categories, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query, t.Date, t.StartTime, t.EndTime, t.Title,
		pq.Array(t.Speakers), t.Description, pq.Array(t.Categories), t.CreatedAt).Scan(&t.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" && perr.Constraint == talksDateStartKey {
			return domain.ErrSlotUnavailable
		}
		return err
	}

	if len(missing) > 0 {
		// Another transaction may have inserted the same category since our read.
		if _, err := tx.ExecContext(ctx, upsertCategories, pq.Array(missing)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *talkRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var categories []string
	err = tx.QueryRowContext(ctx, `DELETE FROM talks WHERE id = $1 RETURNING categories`, id).
		Scan(pq.Array(&categories))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return tx.Commit()
	}

	rows, err := tx.QueryContext(ctx, lockCategories, pq.Array(categories))
	if err != nil {
		return err
	}
	for rows.Next() {
		// locked, not read
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, pruneCategoriesOf, pq.Array(categories)); err != nil {
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

	// Blocks bookings and deletions until the rebuild commits.
	if _, err := tx.ExecContext(ctx, `LOCK TABLE talks IN SHARE MODE`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO categories (name) SELECT DISTINCT unnest(categories) FROM talks ON CONFLICT (name) DO NOTHING`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, pruneCategories); err != nil {
		return err
	}
	return tx.Commit()
}
