// Package query turns structured select requests, produced by intent
// handling or by an upstream LLM, into role-filtered database reads with
// a plain-text rendering of the result rows.
package query

import (
	"encoding/json"
	"sort"
)

// tableColumns is the set of known tables and their columns. Filter fields
// and select lists are validated against it before touching SQL.
var tableColumns = map[string]map[string]bool{
	"projects": colSet(
		"uuid", "project_name", "project_description", "start_date", "end_date", "status",
		"assigned_to_emails", "client_name", "upload_documents", "project_scope",
		"tech_stack", "tech_stack_custom", "leader_of_project", "project_responsibility",
		"role", "role_answers", "custom_questions", "custom_answers", "priority",
	),
	"employee_login": colSet("id", "email", "login_time", "name", "logout_time"),
	"user_memory":    colSet("uuid", "user_id", "project_id", "chat_id", "role", "content", "timestamp"),
	"user_perms":     colSet("id", "name", "email", "role", "permission_roles"),
	"user_facts":     colSet("uuid", "user_id", "fact_key", "fact_value", "confidence", "created_at", "updated_at"),
}

// accessControlled tables must pass through ApplyAccessControl before
// execution; everything else is readable by any authenticated identity.
var accessControlled = map[string]bool{
	"projects":       true,
	"employee_login": true,
}

// searchableColumns lists the columns safe for ILIKE per table (text only;
// no uuid/date/json columns).
var searchableColumns = map[string][]string{
	"projects": {
		"project_name", "project_description", "status", "client_name",
		"project_scope", "tech_stack_custom",
		"project_responsibility", "role", "priority",
	},
	"employee_login": {"email", "name"},
	"user_memory":    {"role", "content"},
	"user_perms":     {"name", "email", "role", "permission_roles"},
	"user_facts":     {"fact_key", "fact_value"},
}

// SchemaJSON renders the known tables and columns as indented JSON for
// inclusion in LLM system prompts.
func SchemaJSON() string {
	tables := make(map[string][]string, len(tableColumns))
	for table, cols := range tableColumns {
		names := make([]string, 0, len(cols))
		for c := range cols {
			names = append(names, c)
		}
		sort.Strings(names)
		tables[table] = names
	}
	b, _ := json.MarshalIndent(tables, "", "  ")
	return string(b)
}

func colSet(cols ...string) map[string]bool {
	m := make(map[string]bool, len(cols))
	for _, c := range cols {
		m[c] = true
	}
	return m
}

func knownTable(table string) bool {
	_, ok := tableColumns[table]
	return ok
}

func knownColumn(table, column string) bool {
	return tableColumns[table][column]
}

func textColumns(table string) []string {
	return searchableColumns[table]
}
