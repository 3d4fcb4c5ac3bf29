// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deliverable

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/harmonia/internal/platform/database/schema"
	"github.com/taibuivan/harmonia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on the deals schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var deliverableColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.DealsDeliverable.ID, schema.DealsDeliverable.DealID, schema.DealsDeliverable.Name,
	schema.DealsDeliverable.Kind, schema.DealsDeliverable.DueDate, schema.DealsDeliverable.Status,
	schema.DealsDeliverable.Notes, schema.DealsDeliverable.CreatedAt, schema.DealsDeliverable.UpdatedAt,
)

var insertDeliverable = fmt.Sprintf(`
	INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING %s, %s
`,
	schema.DealsDeliverable.Table,
	schema.DealsDeliverable.ID, schema.DealsDeliverable.DealID, schema.DealsDeliverable.Name,
	schema.DealsDeliverable.Kind, schema.DealsDeliverable.DueDate, schema.DealsDeliverable.Status,
	schema.DealsDeliverable.Notes,
	schema.DealsDeliverable.CreatedAt, schema.DealsDeliverable.UpdatedAt,
)

func scanDeliverable(row pgx.Row) (*Deliverable, error) {
	d := &Deliverable{}
	err := row.Scan(&d.ID, &d.DealID, &d.Name, &d.Kind, &d.DueDate, &d.Status, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// # Deliverables

func (repository *PostgresRepository) ListByDeal(context context.Context, dealID string) ([]*Deliverable, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s ASC NULLS LAST, %s ASC
	`,
		deliverableColumns, schema.DealsDeliverable.Table,
		schema.DealsDeliverable.DealID,
		schema.DealsDeliverable.DueDate, schema.DealsDeliverable.Name,
	)

	rows, err := repository.pool.Query(context, query, dealID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_deliverables")
	}
	defer rows.Close()

	items := []*Deliverable{}
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_deliverable")
		}
		items = append(items, d)
	}

	return items, dberr.Wrap(rows.Err(), "list_deliverables")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Deliverable, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		deliverableColumns, schema.DealsDeliverable.Table, schema.DealsDeliverable.ID)

	d, err := scanDeliverable(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Deliverable", "find_deliverable")
	}
	return d, nil
}

func (repository *PostgresRepository) Create(context context.Context, d *Deliverable) error {
	err := repository.pool.QueryRow(context, insertDeliverable,
		d.ID, d.DealID, d.Name, d.Kind, d.DueDate, d.Status, d.Notes,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	return dberr.Wrap(err, "create_deliverable")
}

func (repository *PostgresRepository) Update(context context.Context, d *Deliverable) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.DealsDeliverable.Table,
		schema.DealsDeliverable.Name, schema.DealsDeliverable.Kind, schema.DealsDeliverable.DueDate,
		schema.DealsDeliverable.Status, schema.DealsDeliverable.Notes, schema.DealsDeliverable.UpdatedAt,
		schema.DealsDeliverable.ID,
		schema.DealsDeliverable.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		d.ID, d.Name, d.Kind, d.DueDate, d.Status, d.Notes,
	).Scan(&d.UpdatedAt)
	return dberr.NotFound(err, "Deliverable", "update_deliverable")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.DealsDeliverable.Table, schema.DealsDeliverable.ID)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_deliverable")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Deliverable", "delete_deliverable")
	}
	return nil
}

/*
CreateMany implements [Repository].

Description: Queues one INSERT per deliverable on a [pgx.Batch] inside a
transaction. Any failing row aborts the whole set.
*/
func (repository *PostgresRepository) CreateMany(context context.Context, items []*Deliverable) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	batch := &pgx.Batch{}
	for _, d := range items {
		batch.Queue(insertDeliverable, d.ID, d.DealID, d.Name, d.Kind, d.DueDate, d.Status, d.Notes).
			QueryRow(func(row pgx.Row) error {
				return row.Scan(&d.CreatedAt, &d.UpdatedAt)
			})
	}

	results := transaction.SendBatch(context, batch)
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "create_deliverables")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit deliverables: %w", err)
	}
	return nil
}

// # Packs

func (repository *PostgresRepository) ListPacks(context context.Context) ([]*Pack, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.DealsDeliverablePack.ID, schema.DealsDeliverablePack.Name,
		schema.DealsDeliverablePack.Description, schema.DealsDeliverablePack.CreatedAt,
		schema.DealsDeliverablePack.Table, schema.DealsDeliverablePack.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_packs")
	}
	defer rows.Close()

	packs := []*Pack{}
	byID := map[string]*Pack{}
	for rows.Next() {
		p := &Pack{Items: []*PackItem{}}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_pack")
		}
		packs = append(packs, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_packs")
	}

	itemQuery := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC, %s ASC`,
		schema.DealsDeliverablePackItem.PackID, packItemColumns, schema.DealsDeliverablePackItem.Table,
		schema.DealsDeliverablePackItem.PackID, schema.DealsDeliverablePackItem.Position,
	)

	itemRows, err := repository.pool.Query(context, itemQuery)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pack_items")
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var packID string
		item := &PackItem{}
		if err := itemRows.Scan(&packID, &item.ID, &item.Position, &item.Name, &item.Kind,
			&item.DueOffsetDays, &item.Notes); err != nil {
			return nil, dberr.Wrap(err, "scan_pack_item")
		}
		if p, ok := byID[packID]; ok {
			p.Items = append(p.Items, item)
		}
	}

	return packs, dberr.Wrap(itemRows.Err(), "list_pack_items")
}

var packItemColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.DealsDeliverablePackItem.ID, schema.DealsDeliverablePackItem.Position,
	schema.DealsDeliverablePackItem.Name, schema.DealsDeliverablePackItem.Kind,
	schema.DealsDeliverablePackItem.DueOffsetDays, schema.DealsDeliverablePackItem.Notes,
)

func (repository *PostgresRepository) FindPack(context context.Context, id string) (*Pack, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.DealsDeliverablePack.ID, schema.DealsDeliverablePack.Name,
		schema.DealsDeliverablePack.Description, schema.DealsDeliverablePack.CreatedAt,
		schema.DealsDeliverablePack.Table, schema.DealsDeliverablePack.ID,
	)

	p := &Pack{Items: []*PackItem{}}
	if err := repository.pool.QueryRow(context, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		return nil, dberr.NotFound(err, "Pack", "find_pack")
	}

	itemQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		packItemColumns, schema.DealsDeliverablePackItem.Table,
		schema.DealsDeliverablePackItem.PackID, schema.DealsDeliverablePackItem.Position,
	)

	rows, err := repository.pool.Query(context, itemQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "find_pack_items")
	}
	defer rows.Close()

	for rows.Next() {
		item := &PackItem{}
		if err := rows.Scan(&item.ID, &item.Position, &item.Name, &item.Kind, &item.DueOffsetDays, &item.Notes); err != nil {
			return nil, dberr.Wrap(err, "scan_pack_item")
		}
		p.Items = append(p.Items, item)
	}

	return p, dberr.Wrap(rows.Err(), "find_pack_items")
}

func (repository *PostgresRepository) CreatePack(context context.Context, p *Pack) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	packQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		RETURNING %s
	`,
		schema.DealsDeliverablePack.Table,
		schema.DealsDeliverablePack.ID, schema.DealsDeliverablePack.Name, schema.DealsDeliverablePack.Description,
		schema.DealsDeliverablePack.CreatedAt,
	)
	if err := transaction.QueryRow(context, packQuery, p.ID, p.Name, p.Description).Scan(&p.CreatedAt); err != nil {
		return dberr.Wrap(err, "create_pack")
	}

	itemQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.DealsDeliverablePackItem.Table,
		schema.DealsDeliverablePackItem.ID, schema.DealsDeliverablePackItem.PackID,
		schema.DealsDeliverablePackItem.Position, schema.DealsDeliverablePackItem.Name,
		schema.DealsDeliverablePackItem.Kind, schema.DealsDeliverablePackItem.DueOffsetDays,
		schema.DealsDeliverablePackItem.Notes,
	)

	batch := &pgx.Batch{}
	for _, item := range p.Items {
		batch.Queue(itemQuery, item.ID, p.ID, item.Position, item.Name, item.Kind, item.DueOffsetDays, item.Notes)
	}

	results := transaction.SendBatch(context, batch)
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "create_pack_items")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit pack: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) DeletePack(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.DealsDeliverablePack.Table, schema.DealsDeliverablePack.ID)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_pack")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Pack", "delete_pack")
	}
	return nil
}
