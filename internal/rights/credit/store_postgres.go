// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package credit

import (
	"context"
	"fmt"

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

var creditColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.RightsCredit.ID, schema.RightsCredit.SubjectType, schema.RightsCredit.SubjectID,
	schema.RightsCredit.EntityID, schema.RightsCredit.Role, schema.RightsCredit.CreditedAs,
	schema.RightsCredit.ShareKind, schema.RightsCredit.ShareValue, schema.RightsCredit.CreatedAt,
)

func scanCredit(row pgx.Row) (*Credit, error) {
	c := &Credit{}
	err := row.Scan(&c.ID, &c.SubjectType, &c.SubjectID, &c.EntityID, &c.Role,
		&c.CreditedAs, &c.ShareKind, &c.ShareValue, &c.CreatedAt)
	return c, err
}

func (repository *PostgresRepository) ListBySubject(context context.Context, subjectType SubjectType, subjectID string) ([]*Credit, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s ASC, %s ASC
	`,
		creditColumns, schema.RightsCredit.Table,
		schema.RightsCredit.SubjectType, schema.RightsCredit.SubjectID,
		schema.RightsCredit.CreatedAt, schema.RightsCredit.ID,
	)

	rows, err := repository.pool.Query(context, query, subjectType, subjectID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_credits")
	}
	defer rows.Close()

	credits := []*Credit{}
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_credit")
		}
		credits = append(credits, c)
	}

	return credits, dberr.Wrap(rows.Err(), "list_credits")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Credit, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		creditColumns, schema.RightsCredit.Table, schema.RightsCredit.ID)

	c, err := scanCredit(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Credit", "find_credit")
	}
	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, c *Credit) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`,
		schema.RightsCredit.Table,
		schema.RightsCredit.ID, schema.RightsCredit.SubjectType, schema.RightsCredit.SubjectID,
		schema.RightsCredit.EntityID, schema.RightsCredit.Role, schema.RightsCredit.CreditedAs,
		schema.RightsCredit.ShareKind, schema.RightsCredit.ShareValue,
		schema.RightsCredit.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		c.ID, c.SubjectType, c.SubjectID, c.EntityID, c.Role, c.CreditedAs, c.ShareKind, c.ShareValue,
	).Scan(&c.CreatedAt)
	return dberr.Wrap(err, "create_credit")
}

func (repository *PostgresRepository) Update(context context.Context, c *Credit) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.RightsCredit.Table,
		schema.RightsCredit.Role, schema.RightsCredit.CreditedAs,
		schema.RightsCredit.ShareKind, schema.RightsCredit.ShareValue,
		schema.RightsCredit.ID,
	)

	cmd, err := repository.pool.Exec(context, query, c.ID, c.Role, c.CreditedAs, c.ShareKind, c.ShareValue)
	if err != nil {
		return dberr.Wrap(err, "update_credit")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Credit", "update_credit")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RightsCredit.Table, schema.RightsCredit.ID)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_credit")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Credit", "delete_credit")
	}
	return nil
}
