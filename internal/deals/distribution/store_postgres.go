// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package distribution

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

var dealColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.DealsDeal.ID, schema.DealsDeal.Kind, schema.DealsDeal.EntityID, schema.DealsDeal.Title,
	schema.DealsDeal.Status, schema.DealsDeal.Territory, schema.DealsDeal.StartDate,
	schema.DealsDeal.EndDate, schema.DealsDeal.Platforms,
	schema.DealsDeal.CreatedAt, schema.DealsDeal.UpdatedAt,
)

func scanDeal(row pgx.Row) (*Deal, error) {
	d := &Deal{}
	err := row.Scan(&d.ID, &d.Kind, &d.EntityID, &d.Title, &d.Status, &d.Territory,
		&d.StartDate, &d.EndDate, &d.Platforms, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// # Deals

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Deal, int, error) {
	where := fmt.Sprintf(" WHERE %s IS NULL", schema.DealsDeal.DeletedAt)
	args := []any{}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		where += fmt.Sprintf(" AND %s = $%d", schema.DealsDeal.Kind, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND %s = $%d", schema.DealsDeal.Status, len(args))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		where += fmt.Sprintf(" AND %s = $%d", schema.DealsDeal.EntityID, len(args))
	}
	if filter.Platform != "" {
		args = append(args, filter.Platform)
		where += fmt.Sprintf(" AND $%d = ANY(%s)", len(args), schema.DealsDeal.Platforms)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.DealsDeal.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_deals")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, dealColumns, schema.DealsDeal.Table) + where +
		fmt.Sprintf(" ORDER BY %s DESC, %s ASC LIMIT $", schema.DealsDeal.StartDate, schema.DealsDeal.ID) +
		strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_deals")
	}
	defer rows.Close()

	deals := []*Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_deal")
		}
		deals = append(deals, d)
	}

	return deals, total, dberr.Wrap(rows.Err(), "list_deals")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Deal, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		dealColumns, schema.DealsDeal.Table, schema.DealsDeal.ID, schema.DealsDeal.DeletedAt)

	d, err := scanDeal(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Deal", "find_deal")
	}
	return d, nil
}

func (repository *PostgresRepository) Create(context context.Context, d *Deal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s
	`,
		schema.DealsDeal.Table,
		schema.DealsDeal.ID, schema.DealsDeal.Kind, schema.DealsDeal.EntityID, schema.DealsDeal.Title,
		schema.DealsDeal.Status, schema.DealsDeal.Territory, schema.DealsDeal.StartDate,
		schema.DealsDeal.EndDate, schema.DealsDeal.Platforms,
		schema.DealsDeal.CreatedAt, schema.DealsDeal.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		d.ID, d.Kind, d.EntityID, d.Title, d.Status, d.Territory, d.StartDate, d.EndDate, d.Platforms,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	return dberr.Wrap(err, "create_deal")
}

func (repository *PostgresRepository) Update(context context.Context, d *Deal) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s, %s
	`,
		schema.DealsDeal.Table,
		schema.DealsDeal.Kind, schema.DealsDeal.Title, schema.DealsDeal.Status,
		schema.DealsDeal.Territory, schema.DealsDeal.StartDate, schema.DealsDeal.EndDate,
		schema.DealsDeal.Platforms, schema.DealsDeal.UpdatedAt,
		schema.DealsDeal.ID, schema.DealsDeal.DeletedAt,
		schema.DealsDeal.CreatedAt, schema.DealsDeal.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		d.ID, d.Kind, d.Title, d.Status, d.Territory, d.StartDate, d.EndDate, d.Platforms,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	return dberr.NotFound(err, "Deal", "update_deal")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.DealsDeal.Table, schema.DealsDeal.DeletedAt, schema.DealsDeal.ID, schema.DealsDeal.DeletedAt)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_deal")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Deal", "delete_deal")
	}
	return nil
}

// # Revenue Shares

func (repository *PostgresRepository) ListRevenueShares(context context.Context, dealID string) ([]*RevenueShare, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.DealsRevenueShare.ID, schema.DealsRevenueShare.DealID, schema.DealsRevenueShare.Label,
		schema.DealsRevenueShare.PartyEntityID, schema.DealsRevenueShare.RatePercentage,
		schema.DealsRevenueShare.EffectiveFrom, schema.DealsRevenueShare.EffectiveTo,
		schema.DealsRevenueShare.CreatedAt,
		schema.DealsRevenueShare.Table, schema.DealsRevenueShare.DealID,
		schema.DealsRevenueShare.EffectiveFrom,
	)

	rows, err := repository.pool.Query(context, query, dealID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_revenue_shares")
	}
	defer rows.Close()

	shares := []*RevenueShare{}
	for rows.Next() {
		s := &RevenueShare{}
		if err := rows.Scan(&s.ID, &s.DealID, &s.Label, &s.PartyEntityID, &s.RatePercentage,
			&s.EffectiveFrom, &s.EffectiveTo, &s.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_revenue_share")
		}
		shares = append(shares, s)
	}

	return shares, dberr.Wrap(rows.Err(), "list_revenue_shares")
}

func (repository *PostgresRepository) CreateRevenueShare(context context.Context, s *RevenueShare) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`,
		schema.DealsRevenueShare.Table,
		schema.DealsRevenueShare.ID, schema.DealsRevenueShare.DealID, schema.DealsRevenueShare.Label,
		schema.DealsRevenueShare.PartyEntityID, schema.DealsRevenueShare.RatePercentage,
		schema.DealsRevenueShare.EffectiveFrom, schema.DealsRevenueShare.EffectiveTo,
		schema.DealsRevenueShare.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		s.ID, s.DealID, s.Label, s.PartyEntityID, s.RatePercentage, s.EffectiveFrom, s.EffectiveTo,
	).Scan(&s.CreatedAt)
	return dberr.Wrap(err, "create_revenue_share")
}

func (repository *PostgresRepository) DeleteRevenueShare(context context.Context, dealID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.DealsRevenueShare.Table, schema.DealsRevenueShare.DealID, schema.DealsRevenueShare.ID)

	cmd, err := repository.pool.Exec(context, query, dealID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_revenue_share")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Revenue share", "delete_revenue_share")
	}
	return nil
}
