// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/database/schema"
	"github.com/taibuivan/harmonia/internal/platform/dberr"
	"github.com/taibuivan/harmonia/internal/users/auth"
)

// PostgresRepository implements [Repository] on users.staff.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL-backed account repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var staffColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
	schema.UsersStaff.ID, schema.UsersStaff.Email, schema.UsersStaff.PasswordHash,
	schema.UsersStaff.DisplayName, schema.UsersStaff.Role, schema.UsersStaff.IsActive,
	schema.UsersStaff.CreatedAt, schema.UsersStaff.UpdatedAt,
)

func scanStaff(row pgx.Row) (*auth.Staff, error) {
	staff := &auth.Staff{}
	err := row.Scan(&staff.ID, &staff.Email, &staff.PasswordHash, &staff.DisplayName,
		&staff.Role, &staff.IsActive, &staff.CreatedAt, &staff.UpdatedAt)
	return staff, err
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		staffColumns, schema.UsersStaff.Table, schema.UsersStaff.ID)

	staff, err := scanStaff(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Staff", "find_staff_account")
	}
	return staff, nil
}

// List returns every staff account, active ones first, then by display name.
func (repository *PostgresRepository) List(context context.Context) ([]*auth.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, lower(%s)`,
		staffColumns, schema.UsersStaff.Table, schema.UsersStaff.IsActive, schema.UsersStaff.DisplayName)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_staff")
	}
	defer rows.Close()

	staff := []*auth.Staff{}
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_staff")
		}
		staff = append(staff, member)
	}
	return staff, dberr.Wrap(rows.Err(), "list_staff_rows")
}

func (repository *PostgresRepository) UpdateProfile(context context.Context, staff *auth.Staff) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1 RETURNING %s`,
		schema.UsersStaff.Table, schema.UsersStaff.DisplayName, schema.UsersStaff.UpdatedAt,
		schema.UsersStaff.ID, schema.UsersStaff.UpdatedAt)

	err := repository.pool.QueryRow(context, query, staff.ID, staff.DisplayName).Scan(&staff.UpdatedAt)
	return dberr.NotFound(err, "Staff", "update_staff_profile")
}

func (repository *PostgresRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1`,
		schema.UsersStaff.Table, schema.UsersStaff.PasswordHash, schema.UsersStaff.UpdatedAt, schema.UsersStaff.ID)

	tag, err := repository.pool.Exec(context, query, id, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_staff_password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Staff")
	}
	return nil
}

func (repository *PostgresRepository) UpdateAccess(context context.Context, staff *auth.Staff) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = now() WHERE %s = $1 RETURNING %s`,
		schema.UsersStaff.Table, schema.UsersStaff.Role, schema.UsersStaff.IsActive,
		schema.UsersStaff.UpdatedAt, schema.UsersStaff.ID, schema.UsersStaff.UpdatedAt)

	err := repository.pool.QueryRow(context, query, staff.ID, staff.Role, staff.IsActive).Scan(&staff.UpdatedAt)
	return dberr.NotFound(err, "Staff", "update_staff_access")
}
