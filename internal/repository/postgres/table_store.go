package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"eventflow/internal/domain"
)

// foreignKeyViolation is the Postgres error code raised when a row names an unknown sheet.
const foreignKeyViolation = "23503"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type tableStore struct {
	DB *sql.DB
}

// NewTableStore returns a domain.TableStore backed by the sheets/sheet_rows tables.
func NewTableStore(db *sql.DB) domain.TableStore {
	return &tableStore{DB: db}
}

func (r *tableStore) Read(ctx context.Context, table string) ([]domain.Row, error) {
	query, args, err := psql.Select("row_num", "cells").
		From("sheet_rows").
		Where(sq.Eq{"sheet": table}).
		OrderBy("row_num").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Row, 0)
	for rows.Next() {
		var row domain.Row
		var cells pq.StringArray
		if err := rows.Scan(&row.Num, &cells); err != nil {
			return nil, err
		}
		row.Cells = []string(cells)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		ok, err := r.exists(ctx, table)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
		}
	}
	return out, nil
}

func (r *tableStore) exists(ctx context.Context, table string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("sheets").
		Where(sq.Eq{"name": table}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}
	var ok bool
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *tableStore) Append(ctx context.Context, table string, cells []string) error {
	return r.insert(ctx, r.DB, table, cells)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *tableStore) insert(ctx context.Context, db execer, table string, cells []string) error {
	query, args, err := psql.Insert("sheet_rows").
		Columns("sheet", "cells").
		Values(table, pq.Array(cellsOrEmpty(cells))).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return mapError(table, err)
	}
	return nil
}

func (r *tableStore) UpsertByKey(ctx context.Context, table, key string, cells []string) error {
	query, args, err := psql.Update("sheet_rows").
		Set("cells", pq.Array(cellsOrEmpty(cells))).
		Where("row_num = (SELECT min(row_num) FROM sheet_rows WHERE sheet = ? AND btrim(cells[1]) = ?)", table, key).
		ToSql()
	if err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if err := r.insert(ctx, tx, table, cells); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *tableStore) UpdateRow(ctx context.Context, table string, rowNum int64, cells []string) error {
	query, args, err := psql.Update("sheet_rows").
		Set("cells", pq.Array(cellsOrEmpty(cells))).
		Where(sq.Eq{"sheet": table}).
		Where(sq.Eq{"row_num": rowNum}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s row %d", domain.ErrRowNotFound, table, rowNum)
	}
	return nil
}

func cellsOrEmpty(cells []string) []string {
	if cells == nil {
		return []string{}
	}
	return cells
}

func mapError(table string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
	}
	return err
}
