// Package compose assembles the final reply string from whatever the
// database, document, and LLM lookups produced. Pure string building; the
// only failure mode is falling back to a fixed sentence.
package compose

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Inputs are the optional sections a reply can be built from.
type Inputs struct {
	ProjectData map[string]interface{}
	RoleData    map[string]interface{}
	Notes       []string
	Fallback    string
	LLMText     string
}

const notFound = "Sorry, I couldn't find relevant information."

var prefaces = map[string][]string{
	"project": {
		"💼 Project overview:",
		"📊 Let’s review the project info:",
		"📝 Here’s the project summary:",
	},
	"role": {
		"👤 Role & team info:",
		"🛠 Details about your role:",
		"📌 Team insights:",
	},
	"notes": {
		"📖 From my documents:",
		"🔍 Insights from internal knowledge:",
		"💡 Key notes:",
	},
	"general": {
		"💬 Here’s what I found:",
		"🔹 Quick info:",
		"✨ Summary:",
	},
}

// fullProjectPhrases trigger the detailed project rendering when project
// data is present.
var fullProjectPhrases = []string{
	"all project details",
	"project info",
	"full project details",
	"project summary",
	"give me project details",
}

var keyFields = []struct{ key, label string }{
	{"project_name", "*Project Name:*"},
	{"status", "*Status:*"},
	{"end_date", "*End Date:*"},
	{"priority", "*Priority:*"},
	{"client_name", "*Client Name:*"},
}

var otherFields = []struct{ key, label string }{
	{"project_description", "Description:"},
	{"start_date", "Start Date:"},
	{"assigned_to_emails", "Assigned To:"},
	{"tech_stack", "Tech Stack:"},
}

var roleHighlights = map[string]bool{
	"role":              true,
	"assigned_tasks":    true,
	"leader_of_project": true,
}

// fieldQueries map query keywords to single project fields so questions
// like "what is the status" get the one decorated line instead of the
// full overview.
var fieldQueries = []struct {
	key   string
	label string
	words []string
}{
	{"status", "*Status:*", []string{"status", "progress"}},
	{"end_date", "*End Date:*", []string{"end date", "deadline", "timeline", "due date"}},
	{"priority", "*Priority:*", []string{"priority"}},
	{"client_name", "*Client Name:*", []string{"client"}},
	{"leader_of_project", "*Leader:*", []string{"leader", "lead"}},
	{"tech_stack", "*Tech Stack:*", []string{"tech stack", "technology", "technologies"}},
	{"assigned_to_emails", "*Assigned To:*", []string{"assigned", "team", "members"}},
}

// Compose merges the available sections into one reply under a preface
// chosen by the dominant input (project > role > notes > general).
func Compose(query string, in Inputs) string {
	queryType := "general"
	switch {
	case in.ProjectData != nil:
		queryType = "project"
	case in.RoleData != nil:
		queryType = "role"
	case len(in.Notes) > 0:
		queryType = "notes"
	}

	lines := prefaces[queryType]
	preface := lines[rand.Intn(len(lines))]

	var parts []string

	ql := strings.ToLower(query)
	if in.ProjectData != nil {
		if containsAny(ql, fullProjectPhrases) {
			parts = append(parts, renderProject(in.ProjectData))
		} else if ans := renderFieldAnswer(ql, in.ProjectData); ans != "" {
			parts = append(parts, ans)
		}
	}

	if in.RoleData != nil {
		parts = append(parts, renderRole(in.RoleData))
	}

	if len(in.Notes) > 0 {
		noteLines := make([]string, len(in.Notes))
		for i, n := range in.Notes {
			noteLines[i] = "- " + n
		}
		parts = append(parts, strings.Join(noteLines, "\n"))
	}

	if in.LLMText != "" {
		parts = append(parts, in.LLMText)
	}

	if len(parts) == 0 {
		if in.Fallback != "" {
			parts = append(parts, in.Fallback)
		} else {
			parts = append(parts, notFound)
		}
	}

	return preface + "\n\n" + strings.Join(parts, "\n\n")
}

func renderProject(data map[string]interface{}) string {
	lines := []string{"💼 Project overview:\n"}

	for _, f := range keyFields {
		value := asText(data[f.key])
		if value == "" {
			continue
		}
		switch f.key {
		case "status":
			value = value + " " + statusGlyph(value)
		case "priority":
			if g := priorityGlyph(value); g != "" {
				value = value + " " + g
			}
		case "end_date":
			value = "📅 " + value
		}
		lines = append(lines, fmt.Sprintf("%s %s", f.label, value))
	}

	for _, f := range otherFields {
		value := asText(data[f.key])
		if value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", f.label, value))
	}

	return strings.Join(lines, "\n")
}

func renderFieldAnswer(q string, data map[string]interface{}) string {
	var lines []string
	for _, f := range fieldQueries {
		if !containsAny(q, f.words) {
			continue
		}
		value := asText(data[f.key])
		if value == "" {
			continue
		}
		switch f.key {
		case "status":
			value = value + " " + statusGlyph(value)
		case "priority":
			if g := priorityGlyph(value); g != "" {
				value = value + " " + g
			}
		case "end_date":
			value = "📅 " + value
		}
		lines = append(lines, f.label+" "+value)
	}
	return strings.Join(lines, "\n")
}

func renderRole(data map[string]interface{}) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		label := fieldTitle(k)
		value := asText(data[k])
		if roleHighlights[k] {
			lines = append(lines, fmt.Sprintf("%s:** %s ⭐", label, value))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", label, value))
		}
	}
	return strings.Join(lines, "\n")
}

func statusGlyph(status string) string {
	switch strings.ToLower(status) {
	case "completed":
		return "✅"
	case "in progress":
		return "⏳"
	default:
		return "⚠"
	}
}

func priorityGlyph(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "🔥"
	case "medium":
		return "⭐"
	default:
		return ""
	}
}

func containsAny(q string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

func asText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []string:
		return strings.Join(val, ", ")
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, e := range val {
			parts = append(parts, asText(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

func fieldTitle(k string) string {
	words := strings.Split(strings.ReplaceAll(k, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
