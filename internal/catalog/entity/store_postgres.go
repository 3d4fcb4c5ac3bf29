// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

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

var entityColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s IS NOT NULL, %s IS NOT NULL, %s, %s",
	schema.CatalogEntity.ID, schema.CatalogEntity.Kind, schema.CatalogEntity.Name,
	schema.CatalogEntity.LegalName, schema.CatalogEntity.Country, schema.CatalogEntity.IPI,
	schema.CatalogEntity.Email, schema.CatalogEntity.Notes,
	schema.CatalogEntity.TaxIDSealed, schema.CatalogEntity.BankAccountSealed,
	schema.CatalogEntity.CreatedAt, schema.CatalogEntity.UpdatedAt,
)

func scanEntity(row pgx.Row) (*Entity, error) {
	e := &Entity{}
	err := row.Scan(&e.ID, &e.Kind, &e.Name, &e.LegalName, &e.Country, &e.IPI, &e.Email, &e.Notes,
		&e.HasTaxID, &e.HasBankAccount, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Entity, int, error) {
	where := fmt.Sprintf(" WHERE %s IS NULL", schema.CatalogEntity.DeletedAt)
	args := []any{}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		where += fmt.Sprintf(" AND %s = $%d", schema.CatalogEntity.Kind, len(args))
	}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.CatalogEntity.Name, len(args), schema.CatalogEntity.LegalName, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogEntity.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_entities")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, entityColumns, schema.CatalogEntity.Table) + where +
		fmt.Sprintf(" ORDER BY lower(%s) ASC, %s ASC LIMIT $", schema.CatalogEntity.Name, schema.CatalogEntity.ID) +
		strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_entities")
	}
	defer rows.Close()

	entities := []*Entity{}
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_entity")
		}
		entities = append(entities, e)
	}

	return entities, total, dberr.Wrap(rows.Err(), "list_entities")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Entity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		entityColumns, schema.CatalogEntity.Table, schema.CatalogEntity.ID, schema.CatalogEntity.DeletedAt)

	e, err := scanEntity(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Entity", "find_entity")
	}
	return e, nil
}

func (repository *PostgresRepository) Create(context context.Context, e *Entity) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.CatalogEntity.Table,
		schema.CatalogEntity.ID, schema.CatalogEntity.Kind, schema.CatalogEntity.Name,
		schema.CatalogEntity.LegalName, schema.CatalogEntity.Country, schema.CatalogEntity.IPI,
		schema.CatalogEntity.Email, schema.CatalogEntity.Notes,
		schema.CatalogEntity.CreatedAt, schema.CatalogEntity.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		e.ID, e.Kind, e.Name, e.LegalName, e.Country, e.IPI, e.Email, e.Notes,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return dberr.Wrap(err, "create_entity")
}

func (repository *PostgresRepository) Update(context context.Context, e *Entity) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.CatalogEntity.Table,
		schema.CatalogEntity.Kind, schema.CatalogEntity.Name, schema.CatalogEntity.LegalName,
		schema.CatalogEntity.Country, schema.CatalogEntity.IPI, schema.CatalogEntity.Email,
		schema.CatalogEntity.Notes, schema.CatalogEntity.UpdatedAt,
		schema.CatalogEntity.ID, schema.CatalogEntity.DeletedAt, schema.CatalogEntity.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		e.ID, e.Kind, e.Name, e.LegalName, e.Country, e.IPI, e.Email, e.Notes,
	).Scan(&e.UpdatedAt)
	return dberr.NotFound(err, "Entity", "update_entity")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CatalogEntity.Table, schema.CatalogEntity.DeletedAt,
		schema.CatalogEntity.ID, schema.CatalogEntity.DeletedAt,
	)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_entity")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Entity", "delete_entity")
	}
	return nil
}

func (repository *PostgresRepository) SetSealed(context context.Context, id string, field SensitiveField, sealed []byte) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CatalogEntity.Table, sealedColumn(field), schema.CatalogEntity.UpdatedAt,
		schema.CatalogEntity.ID, schema.CatalogEntity.DeletedAt,
	)

	cmd, err := repository.pool.Exec(context, query, id, sealed)
	if err != nil {
		return dberr.Wrap(err, "set_sealed")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, "Entity", "set_sealed")
	}
	return nil
}

func (repository *PostgresRepository) GetSealed(context context.Context, id string, field SensitiveField) ([]byte, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		sealedColumn(field), schema.CatalogEntity.Table,
		schema.CatalogEntity.ID, schema.CatalogEntity.DeletedAt,
	)

	var sealed []byte
	if err := repository.pool.QueryRow(context, query, id).Scan(&sealed); err != nil {
		return nil, dberr.NotFound(err, "Entity", "get_sealed")
	}
	return sealed, nil
}

func sealedColumn(field SensitiveField) string {
	if field == FieldBankAccount {
		return schema.CatalogEntity.BankAccountSealed
	}
	return schema.CatalogEntity.TaxIDSealed
}
