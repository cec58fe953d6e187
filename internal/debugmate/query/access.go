package query

import (
	"strings"

	"gorm.io/gorm"
)

// Scope is what a role may see of an access-controlled table.
type Scope string

const (
	ScopeAll  Scope = "all"
	ScopeSelf Scope = "self"
)

// PolicyFor returns the access scope for a role. Unknown roles get the
// employee treatment.
func PolicyFor(role string) Scope {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin", "hr":
		return ScopeAll
	default:
		return ScopeSelf
	}
}

// ApplyAccessControl narrows a select to the rows the role/identity pair may
// see. It is pure with respect to its inputs and must run for every read of
// an access-controlled table, except the exact primary-key project lookup
// (already scoped to one record).
//
//   - admin, hr: unrestricted everywhere.
//   - manager:   projects they lead; only their own employee_login row.
//   - everyone else (employee, other, unknown roles): projects they are
//     assigned to; only their own employee_login row.
//   - tables outside the access-controlled set: unrestricted.
func ApplyAccessControl(table string, tx *gorm.DB, role, email string) *gorm.DB {
	r := strings.ToLower(strings.TrimSpace(role))
	t := strings.ToLower(strings.TrimSpace(table))

	if r == "admin" || r == "hr" {
		return tx
	}

	if r == "manager" {
		switch t {
		case "projects":
			return containsOne(tx, "leader_of_project", email)
		case "employee_login":
			return tx.Where("email = ?", email)
		}
		return tx
	}

	switch t {
	case "projects":
		return containsOne(tx, "assigned_to_emails", email)
	case "employee_login":
		return tx.Where("email = ?", email)
	}
	return tx
}
