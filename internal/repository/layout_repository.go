package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/gicinemas/seat-booking/internal/model"
)

// LayoutRepo provides data access to the layouts table. A layout is
// identified by its (movie_title, row_count, seats_per_row) triple,
// which carries a unique key so that concurrent find-or-create calls
// converge on a single row.
type LayoutRepo struct {
    db *sql.DB
}

// NewLayoutRepo returns a new LayoutRepo bound to the given database.
func NewLayoutRepo(db *sql.DB) *LayoutRepo { return &LayoutRepo{db: db} }

const layoutColumns = `id, movie_title, row_count, seats_per_row, created_at`

func scanLayout(row *sql.Row) (model.Layout, error) {
    var l model.Layout
    err := row.Scan(&l.ID, &l.MovieTitle, &l.RowCount, &l.SeatsPerRow, &l.CreatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Layout{}, ErrNotFound
    }
    if err != nil {
        return model.Layout{}, err
    }
    return l, nil
}

// ByID returns the layout with the given primary key, or ErrNotFound.
func (r *LayoutRepo) ByID(ctx context.Context, id uint64) (model.Layout, error) {
    const q = `SELECT ` + layoutColumns + ` FROM layouts WHERE id = ?`
    return scanLayout(r.db.QueryRowContext(ctx, q, id))
}

// Find returns the layout matching the exact triple, or ErrNotFound.
// It never creates a row.
func (r *LayoutRepo) Find(ctx context.Context, title string, rowCount, seatsPerRow int) (model.Layout, error) {
    const q = `SELECT ` + layoutColumns + ` FROM layouts
               WHERE movie_title = ? AND row_count = ? AND seats_per_row = ?`
    return scanLayout(r.db.QueryRowContext(ctx, q, title, rowCount, seatsPerRow))
}

// FindOrCreate returns the layout for the triple, inserting it first
// when missing. Two callers racing on the same triple both end up with
// the winner's row: the loser's insert fails on the unique key and is
// resolved by re-reading.
func (r *LayoutRepo) FindOrCreate(ctx context.Context, title string, rowCount, seatsPerRow int) (model.Layout, error) {
    l, err := r.Find(ctx, title, rowCount, seatsPerRow)
    if err == nil {
        return l, nil
    }
    if !errors.Is(err, ErrNotFound) {
        return model.Layout{}, err
    }
    const ins = `INSERT INTO layouts (movie_title, row_count, seats_per_row) VALUES (?, ?, ?)`
    if _, err := r.db.ExecContext(ctx, ins, title, rowCount, seatsPerRow); err != nil {
        if isDuplicateKey(err) {
            return r.Find(ctx, title, rowCount, seatsPerRow)
        }
        return model.Layout{}, err
    }
    return r.Find(ctx, title, rowCount, seatsPerRow)
}
