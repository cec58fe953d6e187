// Package intent maps a free-text query to a coarse category that decides
// whether the orchestrator answers from the database, the document store,
// or the LLM.
package intent

import (
	"context"
	"log"
	"strings"

	"debugmate-backend/internal/debugmate/prompts"
	llmHandlers "debugmate-backend/internal/llm_handlers"
	"debugmate-backend/internal/models"
)

type Tag string

const (
	TagAllProjects    Tag = "all_projects"
	TagProjectDetails Tag = "project_details"
	TagCoding         Tag = "coding"
	TagDebugging      Tag = "debugging"
	TagMath           Tag = "math"
	TagTimeline       Tag = "timeline"
	TagStatus         Tag = "status"
	TagClient         Tag = "client"
	TagLeader         Tag = "leader"
	TagMembers        Tag = "members"
	TagTechStack      Tag = "tech_stack"
	TagGeneral        Tag = "general"
	TagOther          Tag = "other"
)

var allProjectsWords = []string{
	"all project", "all projects", "list projects", "every project", "badha project", "badha",
}

var projectDetailsWords = []string{
	"project details", "project info", "give me project", "all details", "project", "details of project",
}

var codingWords = []string{"code", "function", "script", "program", "sql", "api", "class", "loop", "```"}

var errorWords = []string{"error", "traceback", "exception", "bug", "fix", "issue"}

var mathWords = []string{"solve", "integral", "derivative", "equation", "calculate", "sum", "matrix", "theorem"}

// fieldKeywords maps a project field tag to its trigger keywords. Iteration
// order matters: timeline keywords are checked before status so that
// "current state of the schedule" resolves to timeline.
var fieldKeywords = []struct {
	tag   Tag
	words []string
}{
	{TagTimeline, []string{"timeline", "deadline", "end date", "start date", "duration", "finish", "schedule"}},
	{TagStatus, []string{"status", "progress", "phase", "current state"}},
	{TagClient, []string{"client", "customer"}},
	{TagLeader, []string{"leader", "manager", "owner", "head"}},
	{TagMembers, []string{"members", "team", "assigned", "who is working", "employees"}},
	{TagTechStack, []string{"tech stack", "technology", "framework", "tools", "languages"}},
}

var generalWords = []string{
	"overview", "summary", "introduction", "info", "information", "details", "describe", "about",
}

// rule inspects a normalized query and either claims it or passes.
type rule func(q string) (Tag, bool)

// ruleset is evaluated strictly in order; the first claiming rule wins.
// Project-listing keywords come before the details check so "all projects"
// is never shadowed by the generic "project" keyword.
var ruleset = []rule{
	keywordRule(TagAllProjects, allProjectsWords),
	keywordRule(TagProjectDetails, projectDetailsWords),
	matchCoding,
	keywordRule(TagMath, mathWords),
	matchProjectField,
	keywordRule(TagGeneral, generalWords),
}

func keywordRule(tag Tag, words []string) rule {
	return func(q string) (Tag, bool) {
		if containsAny(q, words) {
			return tag, true
		}
		return "", false
	}
}

func matchCoding(q string) (Tag, bool) {
	if !containsAny(q, codingWords) {
		return "", false
	}
	if containsAny(q, errorWords) {
		return TagDebugging, true
	}
	return TagCoding, true
}

func matchProjectField(q string) (Tag, bool) {
	for _, f := range fieldKeywords {
		if containsAny(q, f.words) {
			return f.tag, true
		}
	}
	return "", false
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// Classifier applies the ordered keyword rules, falling back to an LLM
// classification for queries no rule claims. A nil llm disables the
// fallback entirely (tests, degraded mode).
type Classifier struct {
	llm llmHandlers.Client
}

func NewClassifier(llm llmHandlers.Client) *Classifier {
	return &Classifier{llm: llm}
}

func (c *Classifier) Classify(ctx context.Context, query string) Tag {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return TagGeneral
	}

	for _, r := range ruleset {
		if tag, ok := r(q); ok {
			return tag
		}
	}

	if c.llm != nil {
		answer, err := c.llm.Chat(ctx, prompts.IntentSystem, []llmHandlers.Message{
			{Role: models.RoleUser, Content: prompts.IntentPrompt(query)},
		})
		if err != nil {
			log.Printf("⚠ intent fallback error: %v", err)
			return TagGeneral
		}
		if answer = strings.ToLower(strings.TrimSpace(answer)); answer != "" {
			return Tag(answer)
		}
	}

	return TagGeneral
}
