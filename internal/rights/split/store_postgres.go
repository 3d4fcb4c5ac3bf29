// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package split

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/harmonia/internal/platform/database/schema"
	"github.com/taibuivan/harmonia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the rights.share table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var shareColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.RightsShare.ID, schema.RightsShare.SubjectType, schema.RightsShare.SubjectID,
	schema.RightsShare.RightType, schema.RightsShare.EntityID, schema.RightsShare.SharePercentage,
	schema.RightsShare.Territory, schema.RightsShare.IsLocked, schema.RightsShare.CreatedAt,
	schema.RightsShare.UpdatedAt,
)

func scanShare(row pgx.Row) (*Share, error) {
	share := &Share{}
	err := row.Scan(
		&share.ID, &share.SubjectType, &share.SubjectID, &share.RightType, &share.EntityID,
		&share.SharePercentage, &share.Territory, &share.Locked, &share.CreatedAt, &share.UpdatedAt,
	)
	return share, err
}

// ListBucket implements [Repository].
func (repository *PostgresRepository) ListBucket(context context.Context, bucket Bucket) ([]*Share, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
		ORDER BY %s ASC, %s ASC
	`,
		shareColumns, schema.RightsShare.Table,
		schema.RightsShare.SubjectType, schema.RightsShare.SubjectID, schema.RightsShare.RightType,
		schema.RightsShare.CreatedAt, schema.RightsShare.ID,
	)

	rows, err := repository.pool.Query(context, query, bucket.SubjectType, bucket.SubjectID, bucket.RightType)
	if err != nil {
		return nil, dberr.Wrap(err, "list_shares")
	}
	defer rows.Close()

	shares := []*Share{}
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_share")
		}
		shares = append(shares, share)
	}

	return shares, dberr.Wrap(rows.Err(), "list_shares")
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Share, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		shareColumns, schema.RightsShare.Table, schema.RightsShare.ID,
	)

	share, err := scanShare(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Share", "find_share")
	}
	return share, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, share *Share) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.RightsShare.Table,
		schema.RightsShare.ID, schema.RightsShare.SubjectType, schema.RightsShare.SubjectID,
		schema.RightsShare.RightType, schema.RightsShare.EntityID, schema.RightsShare.SharePercentage,
		schema.RightsShare.Territory, schema.RightsShare.IsLocked,
		schema.RightsShare.CreatedAt, schema.RightsShare.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		share.ID, share.SubjectType, share.SubjectID, share.RightType, share.EntityID,
		share.SharePercentage, share.Territory, share.Locked,
	).Scan(&share.CreatedAt, &share.UpdatedAt)

	return dberr.Wrap(err, "create_share")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(context context.Context, share *Share) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.RightsShare.Table,
		schema.RightsShare.SharePercentage, schema.RightsShare.Territory, schema.RightsShare.IsLocked,
		schema.RightsShare.UpdatedAt, schema.RightsShare.ID, schema.RightsShare.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		share.ID, share.SharePercentage, share.Territory, share.Locked,
	).Scan(&share.UpdatedAt)

	return dberr.NotFound(err, "Share", "update_share")
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RightsShare.Table, schema.RightsShare.ID)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_share")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Share", "delete_share")
	}
	return nil
}

/*
ReplaceBucket implements [Repository].

Description: Clears the bucket and queues one INSERT per share on a single
[pgx.Batch] inside the same transaction, so readers never observe a
half-replaced bucket.
*/
func (repository *PostgresRepository) ReplaceBucket(context context.Context, bucket Bucket, shares []*Share) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	clearQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		schema.RightsShare.Table,
		schema.RightsShare.SubjectType, schema.RightsShare.SubjectID, schema.RightsShare.RightType,
	)
	if _, err := transaction.Exec(context, clearQuery, bucket.SubjectType, bucket.SubjectID, bucket.RightType); err != nil {
		return dberr.Wrap(err, "clear_bucket")
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`,
		schema.RightsShare.Table,
		schema.RightsShare.ID, schema.RightsShare.SubjectType, schema.RightsShare.SubjectID,
		schema.RightsShare.RightType, schema.RightsShare.EntityID, schema.RightsShare.SharePercentage,
		schema.RightsShare.Territory, schema.RightsShare.IsLocked,
		schema.RightsShare.CreatedAt, schema.RightsShare.UpdatedAt,
	)

	batch := &pgx.Batch{}
	for _, share := range shares {
		batch.Queue(insert,
			share.ID, bucket.SubjectType, bucket.SubjectID, bucket.RightType, share.EntityID,
			share.SharePercentage, share.Territory, share.Locked, share.CreatedAt,
		)
	}

	results := transaction.SendBatch(context, batch)
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "insert_bucket")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit bucket replacement: %w", err)
	}
	return nil
}
