package query

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Filter is one predicate on a single field. The concrete type decides the
// SQL operator, so the executor never inspects runtime value shapes.
type Filter interface {
	Apply(tx *gorm.DB, field string) *gorm.DB
}

// Equals matches the field exactly.
type Equals struct {
	Value any
}

func (f Equals) Apply(tx *gorm.DB, field string) *gorm.DB {
	return tx.Where(field+" = ?", f.Value)
}

// Range bounds the field between Start and End; either side is optional.
type Range struct {
	Start string
	End   string
}

func (f Range) Apply(tx *gorm.DB, field string) *gorm.DB {
	if f.Start != "" {
		tx = tx.Where(field+" >= ?", f.Start)
	}
	if f.End != "" {
		tx = tx.Where(field+" <= ?", f.End)
	}
	return tx
}

// Contains requires an array column to contain every listed value
// (one containment predicate per element).
type Contains struct {
	Values []string
}

func (f Contains) Apply(tx *gorm.DB, field string) *gorm.DB {
	for _, v := range f.Values {
		tx = containsOne(tx, field, v)
	}
	return tx
}

func containsOne(tx *gorm.DB, field, value string) *gorm.DB {
	b, _ := json.Marshal([]string{value})
	return tx.Where(field+" @> ?", datatypes.JSON(b))
}

// Text matches case-insensitively: short tokens (≤ 4 chars) as a prefix,
// longer strings as a substring.
type Text struct {
	Value string
}

func (f Text) Apply(tx *gorm.DB, field string) *gorm.DB {
	v := strings.TrimSpace(f.Value)
	if len(v) <= 4 {
		return tx.Where(field+" ILIKE ?", v+"%")
	}
	return tx.Where(field+" ILIKE ?", "%"+v+"%")
}

// Filters maps field names to predicates. Unmarshalling performs the
// type inspection once at the JSON boundary so downstream code only sees
// the tagged variants.
type Filters map[string]Filter

var intLike = regexp.MustCompile(`^-?\d+$`)

func (f *Filters) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Filters, len(raw))
	for field, msg := range raw {
		filter, err := decodeFilter(msg)
		if err != nil {
			return fmt.Errorf("filter %q: %w", field, err)
		}
		if filter != nil {
			out[field] = filter
		}
	}
	*f = out
	return nil
}

func decodeFilter(msg json.RawMessage) (Filter, error) {
	var val any
	if err := json.Unmarshal(msg, &val); err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		if c, ok := v["contains"]; ok {
			return Contains{Values: toStrings(c)}, nil
		}
		if _, s := v["start"]; s {
			return Range{Start: asString(v["start"]), End: asString(v["end"])}, nil
		}
		if _, e := v["end"]; e {
			return Range{Start: asString(v["start"]), End: asString(v["end"])}, nil
		}
		return Equals{Value: string(msg)}, nil
	case float64:
		if v == float64(int64(v)) {
			return Equals{Value: int64(v)}, nil
		}
		return Equals{Value: v}, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		if intLike.MatchString(s) {
			n, err := strconv.ParseInt(s, 10, 64)
			if err == nil {
				return Equals{Value: n}, nil
			}
		}
		return Text{Value: s}, nil
	default:
		return Equals{Value: val}, nil
	}
}

func toStrings(v any) []string {
	switch c := v.(type) {
	case []any:
		out := make([]string, 0, len(c))
		for _, e := range c {
			out = append(out, asString(e))
		}
		return out
	default:
		return []string{asString(v)}
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// StringValue extracts the literal behind a filter when the caller needs it
// as an identifier (project id resolution).
func StringValue(f Filter) string {
	switch v := f.(type) {
	case Text:
		return v.Value
	case Equals:
		return asString(v.Value)
	default:
		return ""
	}
}
