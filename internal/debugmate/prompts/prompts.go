package prompts

import "fmt"

var IntentSystem = "You are an intent classification engine."

var intentTemplate = `
Classify the user query into one of these categories:
- "general" → asking for overview or summary.
- "timeline" → about dates or schedule.
- "client" → about client or customer.
- "leader" → about project leader/manager.
- "members" → about team members.
- "status" → about progress or completion.
- "tech_stack" → about technology/tools used.
- "project_details" → asking for project details or info.
- "all_projects" → asking for list of all projects.
- "coding" → about writing or explaining code.
- "debugging" → about fixing or analyzing code errors.
- "math" → about mathematical problems.
- "other" → if none apply.
User query: "%s"
Reply ONLY with one category name.
`

func IntentPrompt(query string) string {
	return fmt.Sprintf(intentTemplate, query)
}

var RefinerSystem = "You are a query refiner. Rewrite the user's query into a clear natural-language question."

var synthTemplate = `
User asked: %s
Database facts: %s
Document context: %s
Task:
- Always give a human-like, professional, natural reply.
- If user asked about a specific field (like timeline, client name, leader, status), answer in 1-2 sentences only.
- For general queries, reply in short structured bullets.
- Never dump raw DB rows or raw doc chunks.
- Always keep response concise and clear.
`

// SynthPrompt merges the refined question with whatever the database and
// document lookups produced; empty sections render as "N/A".
func SynthPrompt(query, dbAnswer, docContext string) string {
	return fmt.Sprintf(synthTemplate, query, orNA(dbAnswer), orNA(docContext))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// AssistantSystem identifies the assistant persona carried on every
// synthesis call.
func AssistantSystem(name, email, role string) string {
	return fmt.Sprintf("You are DebugMate, a helpful AI assistant for We3Vision. User: %s (%s), Role: %s.", name, email, role)
}
