// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terms

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/harmonia/internal/platform/database/schema"
	"github.com/taibuivan/harmonia/internal/platform/dberr"
)

// PostgresRepository stores drafts in contracts.termsdraft. Toggles and
// rates are JSONB columns.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Find(context context.Context, dealID string) (*Draft, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ContractsTermsDraft.DealID, schema.ContractsTermsDraft.DurationYears,
		schema.ContractsTermsDraft.Enabled, schema.ContractsTermsDraft.Rates,
		schema.ContractsTermsDraft.Version, schema.ContractsTermsDraft.UpdatedBy,
		schema.ContractsTermsDraft.UpdatedAt,
		schema.ContractsTermsDraft.Table, schema.ContractsTermsDraft.DealID,
	)

	draft := &Draft{}
	err := repository.pool.QueryRow(context, query, dealID).Scan(
		&draft.DealID, &draft.DurationYears, &draft.Enabled, &draft.Rates,
		&draft.Version, &draft.UpdatedBy, &draft.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.NotFound(err, "Terms draft", "find_terms_draft")
	}
	return draft, nil
}

func (repository *PostgresRepository) Insert(context context.Context, draft *Draft) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, 1, $5)
		RETURNING %s, %s
	`,
		schema.ContractsTermsDraft.Table,
		schema.ContractsTermsDraft.DealID, schema.ContractsTermsDraft.DurationYears,
		schema.ContractsTermsDraft.Enabled, schema.ContractsTermsDraft.Rates,
		schema.ContractsTermsDraft.Version, schema.ContractsTermsDraft.UpdatedBy,
		schema.ContractsTermsDraft.Version, schema.ContractsTermsDraft.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		draft.DealID, draft.DurationYears, draft.Enabled, draft.Rates, draft.UpdatedBy,
	).Scan(&draft.Version, &draft.UpdatedAt)
	return dberr.Wrap(err, "insert_terms_draft")
}

func (repository *PostgresRepository) UpdateVersioned(context context.Context, draft *Draft, expected int) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = %s + 1, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s = $6
		RETURNING %s, %s
	`,
		schema.ContractsTermsDraft.Table,
		schema.ContractsTermsDraft.DurationYears, schema.ContractsTermsDraft.Enabled,
		schema.ContractsTermsDraft.Rates,
		schema.ContractsTermsDraft.Version, schema.ContractsTermsDraft.Version,
		schema.ContractsTermsDraft.UpdatedBy, schema.ContractsTermsDraft.UpdatedAt,
		schema.ContractsTermsDraft.DealID, schema.ContractsTermsDraft.Version,
		schema.ContractsTermsDraft.Version, schema.ContractsTermsDraft.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		draft.DealID, draft.DurationYears, draft.Enabled, draft.Rates, draft.UpdatedBy, expected,
	).Scan(&draft.Version, &draft.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, "update_terms_draft")
	}
	return true, nil
}

func (repository *PostgresRepository) Delete(context context.Context, dealID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContractsTermsDraft.Table, schema.ContractsTermsDraft.DealID)

	cmd, err := repository.pool.Exec(context, query, dealID)
	if err != nil {
		return dberr.Wrap(err, "delete_terms_draft")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Terms draft", "delete_terms_draft")
	}
	return nil
}
