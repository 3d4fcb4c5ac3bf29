// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

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

var songColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.CatalogSong.ID, schema.CatalogSong.Title, schema.CatalogSong.Slug,
	schema.CatalogSong.ArtistID, schema.CatalogSong.ReleaseDate, schema.CatalogSong.Genre,
	schema.CatalogSong.Status, schema.CatalogSong.CreatedAt, schema.CatalogSong.UpdatedAt,
)

func scanSong(row pgx.Row) (*Song, error) {
	s := &Song{}
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.ArtistID, &s.ReleaseDate, &s.Genre,
		&s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Song, int, error) {
	where := fmt.Sprintf(" WHERE %s IS NULL", schema.CatalogSong.DeletedAt)
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND %s = $%d", schema.CatalogSong.Status, len(args))
	}
	if filter.ArtistID != "" {
		args = append(args, filter.ArtistID)
		where += fmt.Sprintf(" AND %s = $%d", schema.CatalogSong.ArtistID, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND %s ILIKE $%d", schema.CatalogSong.Title, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogSong.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_songs")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, songColumns, schema.CatalogSong.Table) + where +
		fmt.Sprintf(" ORDER BY %s DESC LIMIT $", schema.CatalogSong.CreatedAt) +
		strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_songs")
	}
	defer rows.Close()

	songs := []*Song{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_song")
		}
		songs = append(songs, s)
	}

	return songs, total, dberr.Wrap(rows.Err(), "list_songs")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Song, error) {
	return repository.findBy(context, schema.CatalogSong.ID, id)
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Song, error) {
	return repository.findBy(context, schema.CatalogSong.Slug, slug)
}

func (repository *PostgresRepository) findBy(context context.Context, column, value string) (*Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		songColumns, schema.CatalogSong.Table, column, schema.CatalogSong.DeletedAt)

	s, err := scanSong(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.NotFound(err, "Song", "find_song")
	}
	return s, nil
}

// SlugExists also counts soft-deleted songs since the unique index covers them.
func (repository *PostgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogSong.Table, schema.CatalogSong.Slug)

	var exists bool
	err := repository.pool.QueryRow(context, query, slug).Scan(&exists)
	return exists, dberr.Wrap(err, "song_slug_exists")
}

func (repository *PostgresRepository) Create(context context.Context, s *Song) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		schema.CatalogSong.Table,
		schema.CatalogSong.ID, schema.CatalogSong.Title, schema.CatalogSong.Slug,
		schema.CatalogSong.ArtistID, schema.CatalogSong.ReleaseDate, schema.CatalogSong.Genre,
		schema.CatalogSong.Status,
		schema.CatalogSong.CreatedAt, schema.CatalogSong.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		s.ID, s.Title, s.Slug, s.ArtistID, s.ReleaseDate, s.Genre, s.Status,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_song")
}

func (repository *PostgresRepository) Update(context context.Context, s *Song) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s, %s
	`,
		schema.CatalogSong.Table,
		schema.CatalogSong.Title, schema.CatalogSong.Slug, schema.CatalogSong.ArtistID,
		schema.CatalogSong.ReleaseDate, schema.CatalogSong.Genre, schema.CatalogSong.Status,
		schema.CatalogSong.UpdatedAt,
		schema.CatalogSong.ID, schema.CatalogSong.DeletedAt,
		schema.CatalogSong.CreatedAt, schema.CatalogSong.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		s.ID, s.Title, s.Slug, s.ArtistID, s.ReleaseDate, s.Genre, s.Status,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return dberr.NotFound(err, "Song", "update_song")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CatalogSong.Table, schema.CatalogSong.DeletedAt,
		schema.CatalogSong.ID, schema.CatalogSong.DeletedAt,
	)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_song")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Song", "delete_song")
	}
	return nil
}
