// Package facts pulls durable user attributes out of free chat text.
package facts

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Fact is one extracted (key, value) attribute. Values are whitespace-
// normalized and length-capped; later extraction of the same key overwrites
// in the store, it does not merge.
type Fact struct {
	Key   string
	Value string
}

type pattern struct {
	key   string
	re    *regexp.Regexp
	limit int
}

const (
	defaultCap = 120
	longCap    = 160
)

// patterns is tried in order; every match contributes a fact, so one
// message can yield several. Keys repeat (department) when the original
// phrasing has two variants.
var patterns = []pattern{
	{"name", regexp.MustCompile(`(?i)\b(?:my name is|i am|i'm|this is|call me)\s+([A-Za-z][A-Za-z\s\-]{1,40})`), defaultCap},
	{"role", regexp.MustCompile(`(?i)\b(?:i work as|my role is|i am a|i'm a)\s+([A-Za-z][A-Za-z\s\-/]{1,60})`), defaultCap},
	{"age", regexp.MustCompile(`(?i)\b(?:i am|i'm)\s+(\d{1,2})\s*(?:years old|yrs old|yo|years)?\b`), defaultCap},
	{"experience_years", regexp.MustCompile(`(?i)\b(?:i have|i've)\s+(\d{1,2})\s+(?:years|yrs)\s+of\s+(?:experience|exp)\b`), defaultCap},
	{"location", regexp.MustCompile(`(?i)\b(?:i live in|i am from|i'm from|based in)\s+([A-Za-z][A-Za-z\s\-]{1,60})`), defaultCap},
	{"company", regexp.MustCompile(`(?i)\b(?:i work at|i work for|my company is)\s+([A-Za-z0-9][A-Za-z0-9\s&\-]{1,60})`), defaultCap},
	{"phone", regexp.MustCompile(`(?i)\b(?:my phone|my number|phone number)\s*[:is]*\s*(\+?\d[\d\-\s]{7,15}\d)\b`), defaultCap},
	{"email", regexp.MustCompile(`\b([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})\b`), defaultCap},
	{"likes", regexp.MustCompile(`(?i)\bi like\s+([A-Za-z0-9 ,.&\-]{1,60})`), defaultCap},
	{"current_task", regexp.MustCompile(`(?i)\b(?:i am working on|i'm working on|currently working on|my work is|i'm doing|i work on)\s+(.{5,120})`), defaultCap},
	{"responsibilities", regexp.MustCompile(`(?i)\b(?:i am responsible for|my responsibilities (?:are|include)|i handle)\s+(.{5,120})`), defaultCap},
	{"skills", regexp.MustCompile(`(?i)\b(?:my skills (?:are|include)|skills:?)\s+([A-Za-z0-9 ,.&\-]{3,160})`), longCap},
	{"tools", regexp.MustCompile(`(?i)\b(?:i use|tools:|tech stack:|stack:|we use|i work with)\s+([A-Za-z0-9 ,.&\-/]{3,160})`), longCap},
	{"department", regexp.MustCompile(`(?i)\b(?:i work in)\s+([A-Za-z][A-Za-z\s\-/]{2,60})`), defaultCap},
	{"department", regexp.MustCompile(`(?i)\b(?:my department is|department:|i'm in the)\s+([A-Za-z][A-Za-z\s\-/]{2,60})`), defaultCap},
	{"manager", regexp.MustCompile(`(?i)\b(?:my manager is|i report to)\s+([A-Za-z][A-Za-z\s\-]{2,60})`), defaultCap},
	{"team", regexp.MustCompile(`(?i)\b(?:my team is|team:|i'm on the)\s+([A-Za-z][A-Za-z\s\-]{2,60})`), defaultCap},
	{"availability_hours", regexp.MustCompile(`\b(?:i am available|availability is|available from)\s+([0-9:APMapm\-\s]{5,40})`), defaultCap},
	{"timezone", regexp.MustCompile(`(?i)\b(?:timezone|time zone)\s*[:is]*\s*([A-Za-z/_+\-0-9]{3,32})`), defaultCap},
	{"languages", regexp.MustCompile(`(?i)\b(?:i speak|languages?:)\s+([A-Za-z ,\-]{3,80})`), defaultCap},
	{"goals", regexp.MustCompile(`(?i)\b(?:my goal is|my goals are|i want to)\s+(.{5,120})`), defaultCap},
}

var whitespace = regexp.MustCompile(`\s+`)

// Extract runs every pattern against the text independently and returns the
// facts it finds, in pattern order.
func Extract(text string) []Fact {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []Fact
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := clean(m[1], p.limit)
		if p.key == "phone" {
			value = whitespace.ReplaceAllString(m[1], "")
		}
		if value == "" {
			continue
		}
		out = append(out, Fact{Key: p.key, Value: value})
	}
	return out
}

func clean(val string, limit int) string {
	v := whitespace.ReplaceAllString(strings.TrimSpace(val), " ")
	v = strings.TrimRight(v, ".,")
	if len(v) > limit {
		// back up to a rune boundary so the cap never splits a character
		cut := limit
		for cut > 0 && !utf8.RuneStart(v[cut]) {
			cut--
		}
		v = v[:cut]
	}
	return strings.TrimSpace(v)
}
