// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/harmonia/internal/platform/database/schema"
	"github.com/taibuivan/harmonia/internal/platform/dberr"
)

// PostgresStaffRepository implements [StaffRepository] on users.staff.
type PostgresStaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new PostgreSQL-backed staff repository.
func NewStaffRepository(pool *pgxpool.Pool) *PostgresStaffRepository {
	return &PostgresStaffRepository{pool: pool}
}

var staffColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
	schema.UsersStaff.ID, schema.UsersStaff.Email, schema.UsersStaff.PasswordHash,
	schema.UsersStaff.DisplayName, schema.UsersStaff.Role, schema.UsersStaff.IsActive,
	schema.UsersStaff.CreatedAt, schema.UsersStaff.UpdatedAt,
)

func scanStaff(row pgx.Row) (*Staff, error) {
	staff := &Staff{}
	err := row.Scan(&staff.ID, &staff.Email, &staff.PasswordHash, &staff.DisplayName,
		&staff.Role, &staff.IsActive, &staff.CreatedAt, &staff.UpdatedAt)
	return staff, err
}

/*
FindByEmail retrieves a staff account by its email address.

Description: Email comparison is case-insensitive.
*/
func (repository *PostgresStaffRepository) FindByEmail(context context.Context, email string) (*Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		staffColumns, schema.UsersStaff.Table, schema.UsersStaff.Email)

	staff, err := scanStaff(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.NotFound(err, "Staff", "find_staff_by_email")
	}
	return staff, nil
}

func (repository *PostgresStaffRepository) FindByID(context context.Context, id string) (*Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		staffColumns, schema.UsersStaff.Table, schema.UsersStaff.ID)

	staff, err := scanStaff(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Staff", "find_staff_by_id")
	}
	return staff, nil
}

func (repository *PostgresStaffRepository) Create(context context.Context, staff *Staff) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.UsersStaff.Table,
		schema.UsersStaff.ID, schema.UsersStaff.Email, schema.UsersStaff.PasswordHash,
		schema.UsersStaff.DisplayName, schema.UsersStaff.Role, schema.UsersStaff.IsActive,
		schema.UsersStaff.CreatedAt, schema.UsersStaff.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		staff.ID, staff.Email, staff.PasswordHash, staff.DisplayName, staff.Role, staff.IsActive,
	).Scan(&staff.CreatedAt, &staff.UpdatedAt)
	return dberr.Wrap(err, "create_staff")
}
