// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Staff Roles

// UserRole represents the authorization level granted to a staff account.
type UserRole string

const (
	// Unrestricted system access, including destructive catalog operations
	RoleAdmin UserRole = "admin"

	// Can create and edit catalog, rights and deal records
	RoleManager UserRole = "manager"

	// Read-only access to the dashboard
	RoleViewer UserRole = "viewer"
)

// IsValid reports whether r is a recognised [UserRole].
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleManager:
		return 20
	case RoleViewer:
		return 10
	default:
		return 0
	}
}
