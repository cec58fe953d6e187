package query

import (
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"sort"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

const (
	// NoMatchingRecords is the sentinel for an empty result set, an empty
	// answer, not an error.
	NoMatchingRecords = "⚠ No matching records found."
	NoProjectSelected = "⚠ No project selected."

	defaultLimit = 10
	rowSeparator = "\n\n---\n\n"
)

// Identity is who is asking; resolved from server-side session state.
type Identity struct {
	Email string
	Role  string
}

// Session carries the per-conversation project pin. An explicit id filter
// updates it; later requests without one fall back to it.
type Session struct {
	CurrentProjectID string
}

// Request is a structured select, either built by intent handling or parsed
// out of LLM output. Consumed once and discarded.
type Request struct {
	Operation string   `json:"operation"`
	Table     string   `json:"table"`
	Filters   Filters  `json:"filters"`
	Fields    []string `json:"fields"`
	Limit     int      `json:"limit"`
	ProjectID string   `json:"project_id"`
}

type Executor struct {
	db *gorm.DB
}

func NewExecutor(db *gorm.DB) *Executor {
	return &Executor{db: db}
}

// Execute runs a structured request and renders the rows as text. It never
// returns an error: failures are logged with a stack trace and surfaced as
// a textual message, keeping the chat flow alive.
func (e *Executor) Execute(req *Request, id Identity, sess *Session) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ query executor panic: %v\n%s", r, debug.Stack())
			reply = fmt.Sprintf("❌ Database error: %v", r)
		}
	}()

	reply, err := e.run(req, id, sess)
	if err != nil {
		log.Printf("❌ query executor error: %v\n%s", err, debug.Stack())
		return fmt.Sprintf("❌ Database error: %v", err)
	}
	return reply
}

func (e *Executor) run(req *Request, id Identity, sess *Session) (string, error) {
	if req == nil {
		return "", fmt.Errorf("nil request")
	}
	table := strings.ToLower(strings.TrimSpace(req.Table))
	if !knownTable(table) {
		return "", fmt.Errorf("unknown table %q", req.Table)
	}
	if req.Filters == nil {
		req.Filters = Filters{}
	}

	projectID := e.resolveProjectID(req, sess)

	tx := e.db.Table(table)
	tx = applySelect(tx, table, req.Fields)

	if table == "projects" {
		if projectID == "" {
			return NoProjectSelected, nil
		}
		// Primary-key addressing already scopes to one record; callers are
		// responsible for having authorized the identity against it.
		tx = tx.Where("uuid = ?", strings.TrimSpace(projectID))
	} else {
		freeText := ""
		if f, ok := req.Filters["free_text"]; ok {
			freeText = StringValue(f)
			delete(req.Filters, "free_text")
		}

		for field, filter := range req.Filters {
			if !knownColumn(table, field) {
				log.Printf("⚠ dropping filter on unknown column %s.%s", table, field)
				continue
			}
			tx = filter.Apply(tx, field)
		}

		if accessControlled[table] {
			tx = ApplyAccessControl(table, tx, id.Role, id.Email)
		}

		if freeText != "" {
			tx = applyFreeText(e.db, tx, table, freeText)
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var rows []map[string]interface{}
	if err := tx.Limit(limit).Find(&rows).Error; err != nil {
		return "", err
	}

	if len(rows) == 0 {
		return NoMatchingRecords, nil
	}

	return FormatRows(rows), nil
}

// resolveProjectID picks the project to address, in precedence order:
// explicit id filter (also pinned on the session) > uuid filter >
// request-level project id > previously pinned session project.
func (e *Executor) resolveProjectID(req *Request, sess *Session) string {
	if f, ok := req.Filters["id"]; ok {
		delete(req.Filters, "id")
		if s := StringValue(f); s != "" {
			if sess != nil {
				sess.CurrentProjectID = s
			}
			return s
		}
	}
	if f, ok := req.Filters["uuid"]; ok {
		if s := StringValue(f); s != "" {
			return s
		}
	}
	if req.ProjectID != "" {
		return req.ProjectID
	}
	if sess != nil {
		return sess.CurrentProjectID
	}
	return ""
}

func applySelect(tx *gorm.DB, table string, fields []string) *gorm.DB {
	if len(fields) == 0 {
		return tx
	}
	selected := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "*" {
			return tx
		}
		if knownColumn(table, f) {
			selected = append(selected, f)
		}
	}
	if len(selected) == 0 {
		return tx
	}
	return tx.Select(selected)
}

// applyFreeText OR-combines a substring match across the table's
// text-searchable columns.
func applyFreeText(db, tx *gorm.DB, table, freeText string) *gorm.DB {
	cols := textColumns(table)
	if len(cols) == 0 {
		return tx
	}
	pattern := "%" + freeText + "%"
	or := db.Where(cols[0]+" ILIKE ?", pattern)
	for _, c := range cols[1:] {
		or = or.Or(c+" ILIKE ?", pattern)
	}
	return tx.Where(or)
}

// FormatRows renders result rows as bulleted "Field Label: value" lines.
// Null, empty, and empty-collection values are dropped; nested collections
// are serialized as compact JSON.
func FormatRows(rows []map[string]interface{}) string {
	formatted := make([]string, 0, len(rows))
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		details := make([]string, 0, len(keys))
		for _, k := range keys {
			v := renderValue(row[k])
			if v == "" {
				continue
			}
			details = append(details, fmt.Sprintf("%s: %s", fieldLabel(k), v))
		}
		if len(details) == 0 {
			continue
		}
		formatted = append(formatted, "• "+strings.Join(details, "\n  "))
	}
	return strings.Join(formatted, rowSeparator)
}

func renderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []byte:
		return strings.TrimSpace(string(val))
	case []interface{}:
		if len(val) == 0 {
			return ""
		}
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	case map[string]interface{}:
		if len(val) == 0 {
			return ""
		}
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// fieldLabel turns snake_case column names into "Title Case" labels.
func fieldLabel(column string) string {
	words := strings.Split(strings.ReplaceAll(column, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
