package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/portfolio-api/internal/model"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// getOne runs q and scans a single row.  sql.ErrNoRows becomes ErrNotFound.
func getOne[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), q string, args ...any) (T, error) {
	v, err := scan(db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, ErrNotFound
	}
	return v, err
}

// getMany runs q and scans every row.  The result is never nil so that it
// encodes as [] rather than null.
func getMany[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), q string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// insert executes an INSERT and returns the generated id.
func insert(ctx context.Context, db *sql.DB, q string, args ...any) (uint64, error) {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// deleteByID removes one row from table.  A missing row is ErrNotFound.
func deleteByID(ctx context.Context, db *sql.DB, table string, id uint64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// update collects the SET clauses of a partial UPDATE.  Only fields present
// in the patch end up in the statement.
type update struct {
	table string
	sets  []string
	args  []any
}

func newUpdate(table string) *update { return &update{table: table} }

func set[T any](u *update, column string, o model.Optional[T]) {
	if v, ok := o.Get(); ok {
		u.sets = append(u.sets, column+" = ?")
		u.args = append(u.args, v)
	}
}

// exec runs the UPDATE for row id.  An empty patch is a no-op.  Zero affected
// rows is not treated as missing because MySQL reports unchanged rows as 0;
// callers load the row before patching it.
func (u *update) exec(ctx context.Context, db *sql.DB, id uint64) error {
	if len(u.sets) == 0 {
		return nil
	}
	q := "UPDATE " + u.table + " SET " + strings.Join(u.sets, ", ") + " WHERE id = ?"
	if _, err := db.ExecContext(ctx, q, append(u.args, id)...); err != nil {
		return translate(err)
	}
	return nil
}
