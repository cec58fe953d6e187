package query

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func buildSQL(t *testing.T, db *gorm.DB, table, role, email string) string {
	t.Helper()
	tx := ApplyAccessControl(table, db.Table(table), role, email)
	var rows []map[string]interface{}
	stmt := tx.Find(&rows).Statement
	return stmt.SQL.String()
}

func TestAccessControlUnrestrictedRoles(t *testing.T) {
	db := dryRunDB(t)
	for _, role := range []string{"admin", "Admin", "hr", "HR"} {
		for _, table := range []string{"projects", "employee_login"} {
			sql := buildSQL(t, db, table, role, "boss@we3vision.com")
			if strings.Contains(sql, "WHERE") {
				t.Errorf("role %s on %s: expected unmodified query, got %q", role, table, sql)
			}
		}
	}
}

func TestAccessControlProjectsContainment(t *testing.T) {
	db := dryRunDB(t)
	cases := []struct {
		role  string
		field string
	}{
		{"manager", "leader_of_project"},
		{"employee", "assigned_to_emails"},
		{"other", "assigned_to_emails"},
		{"intern", "assigned_to_emails"}, // unknown role gets employee scope
		{"", "assigned_to_emails"},
	}
	for _, tc := range cases {
		sql := buildSQL(t, db, "projects", tc.role, "dev@we3vision.com")
		if !strings.Contains(sql, tc.field+" @> ") {
			t.Errorf("role %q: expected containment on %s, got %q", tc.role, tc.field, sql)
		}
		if got := strings.Count(sql, "@>"); got != 1 {
			t.Errorf("role %q: expected exactly one containment predicate, got %d in %q", tc.role, got, sql)
		}
	}
}

func TestAccessControlEmployeeLoginSelfOnly(t *testing.T) {
	db := dryRunDB(t)
	for _, role := range []string{"manager", "employee", "other", ""} {
		sql := buildSQL(t, db, "employee_login", role, "dev@we3vision.com")
		if !strings.Contains(sql, "email = ") {
			t.Errorf("role %q: expected email equality predicate, got %q", role, sql)
		}
		if strings.Contains(sql, "@>") {
			t.Errorf("role %q: unexpected containment predicate in %q", role, sql)
		}
	}
}

func TestPolicyFor(t *testing.T) {
	cases := map[string]Scope{
		"admin":    ScopeAll,
		"HR":       ScopeAll,
		"manager":  ScopeSelf,
		"employee": ScopeSelf,
		"whatever": ScopeSelf,
		"":         ScopeSelf,
	}
	for role, want := range cases {
		if got := PolicyFor(role); got != want {
			t.Errorf("PolicyFor(%q) = %s, want %s", role, got, want)
		}
	}
}
