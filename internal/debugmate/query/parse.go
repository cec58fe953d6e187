package query

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

var (
	jsonObject    = regexp.MustCompile(`(?s)\{.*\}`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// ParseRequest extracts a structured select request from LLM output.
// Models occasionally emit single quotes or trailing commas; one repair
// pass is attempted before giving up. Returns nil on failure; the caller
// substitutes a generic "couldn't understand" reply.
func ParseRequest(llmOutput, projectID string) *Request {
	if projectID != "" && strings.Contains(strings.ToLower(llmOutput), "project detail") {
		return &Request{
			Operation: "select",
			Table:     "projects",
			Filters:   Filters{"uuid": Text{Value: projectID}},
			Fields:    []string{"*"},
			Limit:     1,
		}
	}

	if !strings.Contains(llmOutput, "{") {
		log.Printf("❌ parse request: no JSON object in output\n%s", llmOutput)
		return nil
	}

	match := jsonObject.FindString(llmOutput)
	if match == "" {
		log.Printf("❌ parse request: no JSON object in output\n%s", llmOutput)
		return nil
	}

	var req Request
	if err := json.Unmarshal([]byte(match), &req); err == nil {
		return &req
	}

	fixed := strings.ReplaceAll(match, "'", `"`)
	fixed = trailingComma.ReplaceAllString(fixed, "$1")
	if err := json.Unmarshal([]byte(fixed), &req); err != nil {
		log.Printf("❌ parse request: %v\nraw output:\n%s", err, llmOutput)
		return nil
	}
	return &req
}
