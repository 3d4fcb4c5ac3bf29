// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

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

var templateColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
	schema.ContractsTemplate.ID, schema.ContractsTemplate.Name, schema.ContractsTemplate.Slug,
	schema.ContractsTemplate.Kind, schema.ContractsTemplate.Body,
	schema.ContractsTemplate.CreatedAt, schema.ContractsTemplate.UpdatedAt,
)

func scanTemplate(row pgx.Row) (*Template, error) {
	t := &Template{}
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Kind, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Template, int, error) {
	where := fmt.Sprintf(" WHERE %s IS NULL", schema.ContractsTemplate.DeletedAt)
	args := []any{}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		where += fmt.Sprintf(" AND %s = $%d", schema.ContractsTemplate.Kind, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.ContractsTemplate.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_templates")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, templateColumns, schema.ContractsTemplate.Table) + where +
		fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.ContractsTemplate.Name) +
		strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_templates")
	}
	defer rows.Close()

	templates := []*Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_template")
		}
		templates = append(templates, t)
	}

	return templates, total, dberr.Wrap(rows.Err(), "list_templates")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		templateColumns, schema.ContractsTemplate.Table,
		schema.ContractsTemplate.ID, schema.ContractsTemplate.DeletedAt,
	)

	t, err := scanTemplate(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Template", "find_template")
	}
	return t, nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ContractsTemplate.Table, schema.ContractsTemplate.Slug)

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "template_slug_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, t *Template) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.ContractsTemplate.Table,
		schema.ContractsTemplate.ID, schema.ContractsTemplate.Name, schema.ContractsTemplate.Slug,
		schema.ContractsTemplate.Kind, schema.ContractsTemplate.Body,
		schema.ContractsTemplate.CreatedAt, schema.ContractsTemplate.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, t.ID, t.Name, t.Slug, t.Kind, t.Body).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, "create_template")
}

func (repository *PostgresRepository) Update(context context.Context, t *Template) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s, %s
	`,
		schema.ContractsTemplate.Table,
		schema.ContractsTemplate.Name, schema.ContractsTemplate.Slug, schema.ContractsTemplate.Kind,
		schema.ContractsTemplate.Body, schema.ContractsTemplate.UpdatedAt,
		schema.ContractsTemplate.ID, schema.ContractsTemplate.DeletedAt,
		schema.ContractsTemplate.CreatedAt, schema.ContractsTemplate.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, t.ID, t.Name, t.Slug, t.Kind, t.Body).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	return dberr.NotFound(err, "Template", "update_template")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.ContractsTemplate.Table, schema.ContractsTemplate.DeletedAt,
		schema.ContractsTemplate.ID, schema.ContractsTemplate.DeletedAt,
	)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_template")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Template", "delete_template")
	}
	return nil
}
