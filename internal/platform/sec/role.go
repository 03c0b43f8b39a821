// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can curate the spell catalogue (create and correct entries)
	RoleEditor UserRole = "editor"

	// Default role for players using the character sheet app
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale leaves room for intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleEditor:
		return 30
	case RoleMember:
		return 10
	default:
		return 0
	}
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}
