// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/harmonia/internal/platform/database/schema"
	"github.com/taibuivan/harmonia/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var workColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.CatalogWork.ID, schema.CatalogWork.SongID, schema.CatalogWork.Title,
	schema.CatalogWork.ISWC, schema.CatalogWork.AlternateTitle, schema.CatalogWork.Language,
	schema.CatalogWork.Genre, schema.CatalogWork.Notes,
	schema.CatalogWork.CreatedAt, schema.CatalogWork.UpdatedAt,
)

func scanWork(row pgx.Row) (*Work, error) {
	w := &Work{}
	err := row.Scan(&w.ID, &w.SongID, &w.Title, &w.ISWC, &w.AlternateTitle, &w.Language,
		&w.Genre, &w.Notes, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error) {
	where := fmt.Sprintf(" WHERE %s IS NULL", schema.CatalogWork.DeletedAt)
	args := []any{}

	if filter.SongID != "" {
		args = append(args, filter.SongID)
		where += fmt.Sprintf(" AND %s = $%d", schema.CatalogWork.SongID, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			schema.CatalogWork.Title, len(args), schema.CatalogWork.AlternateTitle, len(args),
			schema.CatalogWork.ISWC, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogWork.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_works")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, workColumns, schema.CatalogWork.Table) + where +
		fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT $", schema.CatalogWork.Title, schema.CatalogWork.ID) +
		strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_works")
	}
	defer rows.Close()

	works := []*Work{}
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_work")
		}
		works = append(works, w)
	}

	return works, total, dberr.Wrap(rows.Err(), "list_works")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Work, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		workColumns, schema.CatalogWork.Table, schema.CatalogWork.ID, schema.CatalogWork.DeletedAt)

	w, err := scanWork(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Work", "find_work")
	}
	return w, nil
}

func (repository *PostgresRepository) Create(context context.Context, w *Work) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.CatalogWork.Table,
		schema.CatalogWork.ID, schema.CatalogWork.SongID, schema.CatalogWork.Title,
		schema.CatalogWork.ISWC, schema.CatalogWork.AlternateTitle, schema.CatalogWork.Language,
		schema.CatalogWork.Genre, schema.CatalogWork.Notes,
		schema.CatalogWork.CreatedAt, schema.CatalogWork.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		w.ID, w.SongID, w.Title, w.ISWC, w.AlternateTitle, w.Language, w.Genre, w.Notes,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	return dberr.Wrap(err, "create_work")
}

func (repository *PostgresRepository) Update(context context.Context, w *Work) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s, %s
	`,
		schema.CatalogWork.Table,
		schema.CatalogWork.SongID, schema.CatalogWork.Title, schema.CatalogWork.ISWC,
		schema.CatalogWork.AlternateTitle, schema.CatalogWork.Language, schema.CatalogWork.Genre,
		schema.CatalogWork.Notes, schema.CatalogWork.UpdatedAt,
		schema.CatalogWork.ID, schema.CatalogWork.DeletedAt,
		schema.CatalogWork.CreatedAt, schema.CatalogWork.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		w.ID, w.SongID, w.Title, w.ISWC, w.AlternateTitle, w.Language, w.Genre, w.Notes,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	return dberr.NotFound(err, "Work", "update_work")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CatalogWork.Table, schema.CatalogWork.DeletedAt,
		schema.CatalogWork.ID, schema.CatalogWork.DeletedAt,
	)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_work")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Work", "delete_work")
	}
	return nil
}
