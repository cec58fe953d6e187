package query

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) Filters {
	t.Helper()
	var f Filters
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	return f
}

func TestFiltersUnmarshalVariants(t *testing.T) {
	f := decode(t, `{
		"assigned_to_emails": {"contains": ["dev@we3vision.com"]},
		"start_date": {"start": "2025-01-01", "end": "2025-06-30"},
		"id": 42,
		"priority": "9001",
		"status": "done",
		"project_name": "debugmate assistant",
		"empty": "",
		"missing": null
	}`)

	if got, want := f["assigned_to_emails"], (Contains{Values: []string{"dev@we3vision.com"}}); !reflect.DeepEqual(got, want) {
		t.Errorf("contains filter = %#v, want %#v", got, want)
	}
	if got, want := f["start_date"], (Range{Start: "2025-01-01", End: "2025-06-30"}); got != want {
		t.Errorf("range filter = %#v, want %#v", got, want)
	}
	if got, want := f["id"], (Equals{Value: int64(42)}); got != want {
		t.Errorf("numeric filter = %#v, want %#v", got, want)
	}
	if got, want := f["priority"], (Equals{Value: int64(9001)}); got != want {
		t.Errorf("int-like string filter = %#v, want %#v", got, want)
	}
	if got, want := f["status"], (Text{Value: "done"}); got != want {
		t.Errorf("short text filter = %#v, want %#v", got, want)
	}
	if got, want := f["project_name"], (Text{Value: "debugmate assistant"}); got != want {
		t.Errorf("long text filter = %#v, want %#v", got, want)
	}
	if _, ok := f["empty"]; ok {
		t.Error("empty string should produce no filter")
	}
	if _, ok := f["missing"]; ok {
		t.Error("null should produce no filter")
	}
}

// Short tokens get a prefix match, longer strings a substring match.
func TestTextFilterSQL(t *testing.T) {
	db := dryRunDB(t)

	var rows []map[string]interface{}
	stmt := Text{Value: "done"}.Apply(db.Table("projects"), "status").Find(&rows).Statement
	if got := stmt.Vars[0]; got != "done%" {
		t.Errorf("short token pattern = %v, want done%%", got)
	}

	stmt = Text{Value: "payment"}.Apply(db.Table("projects"), "status").Find(&rows).Statement
	if got := stmt.Vars[0]; got != "%payment%" {
		t.Errorf("long token pattern = %v, want %%payment%%", got)
	}
}

func TestRangeFilterOptionalBounds(t *testing.T) {
	db := dryRunDB(t)

	var rows []map[string]interface{}
	stmt := Range{Start: "2025-01-01"}.Apply(db.Table("projects"), "start_date").Find(&rows).Statement
	sql := stmt.SQL.String()
	if !strings.Contains(sql, ">=") || strings.Contains(sql, "<=") {
		t.Errorf("start-only range SQL = %q", sql)
	}
}

func TestStringValue(t *testing.T) {
	cases := []struct {
		f    Filter
		want string
	}{
		{Text{Value: "abc-123"}, "abc-123"},
		{Equals{Value: "abc-123"}, "abc-123"},
		{Equals{Value: int64(7)}, "7"},
		{Contains{Values: []string{"x"}}, ""},
		{Range{Start: "a"}, ""},
	}
	for _, tc := range cases {
		if got := StringValue(tc.f); got != tc.want {
			t.Errorf("StringValue(%#v) = %q, want %q", tc.f, got, tc.want)
		}
	}
}
