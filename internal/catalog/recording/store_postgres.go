// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recording

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

var recordingColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.CatalogRecording.ID, schema.CatalogRecording.WorkID, schema.CatalogRecording.SongID,
	schema.CatalogRecording.Title, schema.CatalogRecording.ISRC, schema.CatalogRecording.Version,
	schema.CatalogRecording.DurationSeconds, schema.CatalogRecording.RecordedOn,
	schema.CatalogRecording.CreatedAt, schema.CatalogRecording.UpdatedAt,
)

func scanRecording(row pgx.Row) (*Recording, error) {
	r := &Recording{}
	err := row.Scan(&r.ID, &r.WorkID, &r.SongID, &r.Title, &r.ISRC, &r.Version,
		&r.DurationSeconds, &r.RecordedOn, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Recording, int, error) {
	where := fmt.Sprintf(" WHERE %s IS NULL", schema.CatalogRecording.DeletedAt)
	args := []any{}

	if filter.WorkID != "" {
		args = append(args, filter.WorkID)
		where += fmt.Sprintf(" AND %s = $%d", schema.CatalogRecording.WorkID, len(args))
	}
	if filter.SongID != "" {
		args = append(args, filter.SongID)
		where += fmt.Sprintf(" AND %s = $%d", schema.CatalogRecording.SongID, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.CatalogRecording.Title, len(args), schema.CatalogRecording.ISRC, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogRecording.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_recordings")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, recordingColumns, schema.CatalogRecording.Table) + where +
		fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT $", schema.CatalogRecording.Title, schema.CatalogRecording.ID) +
		strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_recordings")
	}
	defer rows.Close()

	recordings := []*Recording{}
	for rows.Next() {
		r, err := scanRecording(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_recording")
		}
		recordings = append(recordings, r)
	}

	return recordings, total, dberr.Wrap(rows.Err(), "list_recordings")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Recording, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		recordingColumns, schema.CatalogRecording.Table,
		schema.CatalogRecording.ID, schema.CatalogRecording.DeletedAt)

	r, err := scanRecording(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Recording", "find_recording")
	}
	return r, nil
}

func (repository *PostgresRepository) Create(context context.Context, r *Recording) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.CatalogRecording.Table,
		schema.CatalogRecording.ID, schema.CatalogRecording.WorkID, schema.CatalogRecording.SongID,
		schema.CatalogRecording.Title, schema.CatalogRecording.ISRC, schema.CatalogRecording.Version,
		schema.CatalogRecording.DurationSeconds, schema.CatalogRecording.RecordedOn,
		schema.CatalogRecording.CreatedAt, schema.CatalogRecording.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		r.ID, r.WorkID, r.SongID, r.Title, r.ISRC, r.Version, r.DurationSeconds, r.RecordedOn,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "create_recording")
}

func (repository *PostgresRepository) Update(context context.Context, r *Recording) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s, %s
	`,
		schema.CatalogRecording.Table,
		schema.CatalogRecording.WorkID, schema.CatalogRecording.SongID, schema.CatalogRecording.Title,
		schema.CatalogRecording.ISRC, schema.CatalogRecording.Version,
		schema.CatalogRecording.DurationSeconds, schema.CatalogRecording.RecordedOn,
		schema.CatalogRecording.UpdatedAt,
		schema.CatalogRecording.ID, schema.CatalogRecording.DeletedAt,
		schema.CatalogRecording.CreatedAt, schema.CatalogRecording.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		r.ID, r.WorkID, r.SongID, r.Title, r.ISRC, r.Version, r.DurationSeconds, r.RecordedOn,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	return dberr.NotFound(err, "Recording", "update_recording")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CatalogRecording.Table, schema.CatalogRecording.DeletedAt,
		schema.CatalogRecording.ID, schema.CatalogRecording.DeletedAt,
	)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_recording")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Recording", "delete_recording")
	}
	return nil
}
