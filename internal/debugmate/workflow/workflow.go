// Package workflow sequences the chat pipeline per endpoint: greeting
// short-circuit, fact capture, intent detection, database and document
// lookups, LLM synthesis, response composition, and persistence.
package workflow

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"debugmate-backend/internal/config"
	"debugmate-backend/internal/debugmate/compose"
	"debugmate-backend/internal/debugmate/facts"
	"debugmate-backend/internal/debugmate/intent"
	"debugmate-backend/internal/debugmate/prompts"
	"debugmate-backend/internal/debugmate/query"
	llmHandlers "debugmate-backend/internal/llm_handlers"
	"debugmate-backend/internal/memory"
	"debugmate-backend/internal/models"
	"debugmate-backend/internal/repo"
	"debugmate-backend/internal/retrieval"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const noResponse = "⚠ No response."

var confusionShort = []string{
	"Hmm, could you rephrase that?",
	"I didn't quite get that, can you clarify?",
	"Can you share a bit more detail?",
}

var confusionLong = []string{
	"Hmm, I'm not quite sure what you mean. Could you rephrase it?",
	"Can you please provide more details?",
	"Let's try that again, can you explain it another way?",
	"I'm here to help, but I need a bit more information from you.",
	"Please clarify your question a little so I can assist better!",
}

var aboutMePhrases = []string{"facts about me", "my facts", "about me", "tell me about me"}

var aboutCompanyPhrases = []string{
	"facts about company", "company facts", "about the company",
	"company info", "company information",
}

// Workflow wires the chat endpoints to their collaborators. Retriever may
// be nil when no embedding service is configured; document context then
// degrades to empty.
type Workflow struct {
	Chats       repo.ChatRepoInterface
	Users       repo.UserRepoInterface
	Facts       repo.FactRepoInterface
	Projects    repo.ProjectRepoInterface
	Classifier  *intent.Classifier
	Refiner     llmHandlers.Client
	SynthCommon llmHandlers.Client
	SynthWork   llmHandlers.Client
	SynthDual   llmHandlers.Client
	Executor    *query.Executor
	Retriever   *retrieval.Retriever
	Memory      *memory.File
}

type chatPayload struct {
	Query     string `json:"query"`
	Message   string `json:"message"`
	ProjectID string `json:"project_id"`
	ChatID    string `json:"chat_id"`
}

func (p chatPayload) text() string {
	if q := strings.TrimSpace(p.Query); q != "" {
		return q
	}
	return strings.TrimSpace(p.Message)
}

// CommonChat is the company-wide assistant: no project pin required, full
// schema exposed to the LLM, project intents answered straight from the
// database.
func (w *Workflow) CommonChat(c *fiber.Ctx) error {
	var payload chatPayload
	_ = c.BodyParser(&payload)
	log.Printf("📥 incoming payload: %+v", payload)

	userQuery := payload.text()
	projectID := payload.ProjectID
	if projectID == "" {
		projectID = "default"
	}

	sess := w.session(c)
	email, name := identity(sess)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"reply": "❌ Please login first. Session email not found.",
		})
	}
	if userQuery == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"reply": pick(confusionShort)})
	}

	tag := w.Classifier.Classify(c.Context(), userQuery)
	role := w.Users.GetRole(email)
	id := query.Identity{Email: email, Role: role}

	switch tag {
	case intent.TagProjectDetails:
		req := &query.Request{
			Operation: "select",
			Table:     "projects",
			Fields:    []string{"*"},
			Filters:   query.Filters{"id": query.Equals{Value: projectID}},
		}
		reply := w.execute(sess, req, id)
		return c.JSON(fiber.Map{"reply": reply, "intent": tag})
	case intent.TagAllProjects:
		req := &query.Request{
			Operation: "select",
			Table:     "projects",
			Fields:    []string{"*"},
			Filters:   query.Filters{},
		}
		reply := w.execute(sess, req, id)
		return c.JSON(fiber.Map{"reply": reply, "intent": tag})
	}

	docContext := w.docContext(c.Context(), userQuery)

	memFacts, err := w.Memory.Facts(email)
	if err != nil {
		log.Printf("⚠ memory read error: %v", err)
	}
	known := "None"
	if len(memFacts) > 0 {
		known = strings.Join(memFacts, "; ")
	}

	var system strings.Builder
	system.WriteString("You are a helpful AI assistant for our company.\n\n")
	fmt.Fprintf(&system, "Current user: %s (%s), Role: %s.\n", name, email, role)
	fmt.Fprintf(&system, "Known facts: %s.\n", known)
	if docContext != "" {
		system.WriteString("\nRelevant documents:\n" + docContext + "\n")
	}
	system.WriteString("\nAvailable database tables:\n" + query.SchemaJSON() + "\n")
	system.WriteString("Respond conversationally, clear, concise (3-4 line summaries).")

	uid := w.userKey(email)
	history, err := w.Chats.GetHistory(uid, "", "", repo.DefaultHistorySize)
	if err != nil {
		log.Printf("⚠ history load error: %v", err)
	}
	messages := append(history, llmHandlers.Message{Role: models.RoleUser, Content: userQuery})

	reply, err := w.SynthCommon.Chat(c.Context(), system.String(), messages)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			log.Printf("❌ LLM error: %v", err)
		}
		reply = noResponse
	}

	w.remember(email, userQuery)
	w.save(uid, "", "", models.RoleUser, userQuery)
	w.save(uid, "", "", models.RoleAssistant, reply)

	return c.JSON(fiber.Map{
		"reply":  reply,
		"intent": tag,
		"user": fiber.Map{
			"email": email,
			"name":  name,
			"role":  role,
		},
		"memory_facts": memFacts,
	})
}

// WorkChat is the project-scoped assistant: requires a project id, captures
// user facts, refines the query, and merges database plus document context
// into the synthesized answer.
func (w *Workflow) WorkChat(c *fiber.Ctx) error {
	var payload chatPayload
	_ = c.BodyParser(&payload)
	log.Printf("📥 incoming data: %+v", payload)

	userInput := payload.text()
	projectID := payload.ProjectID

	sess := w.session(c)
	email, name := identity(sess)
	role := w.Users.GetRole(email)

	if projectID == "" {
		return c.JSON(fiber.Map{"reply": query.NoProjectSelected})
	}
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"reply": "❌ Please login first."})
	}
	if userInput == "" {
		return c.JSON(fiber.Map{"reply": pick(confusionLong)})
	}

	uid := w.userKey(email)

	chatID := payload.ChatID
	if chatID == "" {
		chatID = sessionString(sess, "chat_id")
	}
	if chatID == "" {
		chatID = "default"
	}
	if sess != nil {
		sess.Set("chat_id", chatID)
		sess.Set("project_uuid", projectID)
		if err := sess.Save(); err != nil {
			log.Printf("⚠ session save error: %v", err)
		}
	}

	userFacts, err := w.Facts.GetFacts(email)
	if err != nil {
		log.Printf("⚠ fact lookup error: %v", err)
	}
	if fname, ok := userFacts["name"]; ok {
		log.Printf("👋 Welcome back %s!", fname)
	}

	w.captureFacts(email, userInput)

	if greeting := Greeting(userInput, name); greeting != "" {
		w.save(uid, projectID, chatID, models.RoleAssistant, greeting)
		return c.JSON(fiber.Map{"reply": greeting})
	}

	normalized := w.refine(c.Context(), userInput)
	ql := strings.ToLower(normalized)

	if containsAny(ql, aboutMePhrases) {
		resp := "No personal facts saved yet."
		if len(userFacts) > 0 {
			lines := make([]string, 0, len(userFacts))
			for k, v := range userFacts {
				lines = append(lines, fmt.Sprintf("- %s: %s", k, v))
			}
			resp = "Here are your saved facts:\n" + strings.Join(lines, "\n")
		}
		w.save(uid, projectID, chatID, models.RoleAssistant, resp)
		return c.JSON(fiber.Map{"reply": resp})
	}

	if containsAny(ql, aboutCompanyPhrases) {
		companyCtx := w.docContext(c.Context(), "company information")
		if companyCtx == "" {
			companyCtx = w.docContext(c.Context(), "about the company")
		}
		if companyCtx == "" {
			companyCtx = "No company information found."
		}
		w.save(uid, projectID, chatID, models.RoleAssistant, companyCtx)
		return c.JSON(fiber.Map{"reply": companyCtx})
	}

	tag := w.Classifier.Classify(c.Context(), normalized)
	log.Printf("🧭 detected intent: %s", tag)

	id := query.Identity{Email: email, Role: role}

	dbAnswer := ""
	var projectRow map[string]interface{}
	if strings.Contains(ql, "project") {
		req := &query.Request{
			Operation: "select",
			Table:     "projects",
			Fields:    []string{"*"},
			ProjectID: projectID,
		}
		dbAnswer = w.execute(sess, req, id)

		projectRow, err = w.Projects.GetProjectRow(projectID)
		if err != nil {
			log.Printf("❌ project row lookup error: %v", err)
		}
	}

	docContext := w.docContext(c.Context(), normalized)

	history, err := w.Chats.GetHistory(uid, projectID, chatID, repo.DefaultHistorySize)
	if err != nil {
		log.Printf("⚠ history load error: %v", err)
	}

	synth := prompts.SynthPrompt(normalized, dbAnswer, docContext)
	messages := append(history, llmHandlers.Message{Role: models.RoleUser, Content: synth})

	reply, err := w.SynthWork.Chat(c.Context(), prompts.AssistantSystem(name, email, role), messages)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			log.Printf("❌ LLM error: %v", err)
		}
		reply = noResponse
	}

	w.remember(email, userInput)
	w.save(uid, projectID, chatID, models.RoleUser, userInput)
	w.save(uid, projectID, chatID, models.RoleAssistant, reply)

	final := compose.Compose(userInput, compose.Inputs{
		ProjectData: projectRow,
		Fallback:    reply,
	})
	return c.JSON(fiber.Map{"reply": final})
}

// DualChat mirrors WorkChat with a larger synthesis budget and a short
// history window; meant for side-by-side assistant comparison in the UI.
func (w *Workflow) DualChat(c *fiber.Ctx) error {
	var payload chatPayload
	_ = c.BodyParser(&payload)
	log.Printf("📥 incoming data: %+v", payload)

	userInput := payload.text()
	projectID := payload.ProjectID

	sess := w.session(c)
	email, name := identity(sess)
	role := w.Users.GetRole(email)

	if projectID == "" {
		return c.JSON(fiber.Map{"reply": query.NoProjectSelected})
	}
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"reply": "❌ Please login first."})
	}
	if userInput == "" {
		return c.JSON(fiber.Map{"reply": pick(confusionLong)})
	}

	if greeting := Greeting(userInput, ""); greeting != "" {
		return c.JSON(fiber.Map{"reply": greeting})
	}

	normalized := w.refine(c.Context(), userInput)
	tag := w.Classifier.Classify(c.Context(), normalized)
	log.Printf("🧭 detected intent: %s", tag)

	id := query.Identity{Email: email, Role: role}

	dbAnswer := ""
	var projectRow map[string]interface{}
	if strings.Contains(strings.ToLower(normalized), "project") {
		req := &query.Request{
			Operation: "select",
			Table:     "projects",
			Fields:    []string{"*"},
			Filters:   query.Filters{"id": query.Equals{Value: projectID}},
		}
		dbAnswer = w.execute(sess, req, id)

		var err error
		projectRow, err = w.Projects.GetProjectRow(projectID)
		if err != nil {
			log.Printf("❌ project row lookup error: %v", err)
		}
	}

	docContext := w.docContext(c.Context(), normalized)

	uid := w.userKey(email)
	history, err := w.Chats.GetHistory(uid, "", "", 5)
	if err != nil {
		log.Printf("⚠ history load error: %v", err)
	}

	synth := prompts.SynthPrompt(normalized, dbAnswer, docContext)
	messages := append(history, llmHandlers.Message{Role: models.RoleUser, Content: synth})

	reply, err := w.SynthDual.Chat(c.Context(), prompts.AssistantSystem(name, email, role), messages)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			log.Printf("❌ LLM error: %v", err)
		}
		reply = noResponse
	}

	w.remember(email, userInput)
	w.save(uid, "", "", models.RoleUser, userInput)
	w.save(uid, "", "", models.RoleAssistant, reply)

	final := compose.Compose(userInput, compose.Inputs{
		ProjectData: projectRow,
		Fallback:    reply,
	})
	return c.JSON(fiber.Map{"reply": final})
}

// execute runs a structured query with the session's project pin and
// writes the pin back when the request updated it.
func (w *Workflow) execute(sess *session.Session, req *query.Request, id query.Identity) string {
	qs := &query.Session{CurrentProjectID: sessionString(sess, "current_project_id")}
	reply := w.Executor.Execute(req, id, qs)
	if sess != nil && qs.CurrentProjectID != "" {
		sess.Set("current_project_id", qs.CurrentProjectID)
		if err := sess.Save(); err != nil {
			log.Printf("⚠ session save error: %v", err)
		}
	}
	return reply
}

// userKey resolves the chat persistence key: the user_perms id when the
// user is registered, the raw email otherwise so history still works.
func (w *Workflow) userKey(email string) string {
	id, err := w.Users.GetUserID(email)
	if err != nil || id == "" {
		return email
	}
	return id
}

func (w *Workflow) refine(ctx context.Context, input string) string {
	out, err := w.Refiner.Chat(ctx, prompts.RefinerSystem, []llmHandlers.Message{
		{Role: models.RoleUser, Content: input},
	})
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			log.Printf("⚠ query refiner error: %v", err)
		}
		return input
	}
	return strings.TrimSpace(out)
}

func (w *Workflow) docContext(ctx context.Context, q string) string {
	if w.Retriever == nil {
		return ""
	}
	return w.Retriever.Context(ctx, q, 3)
}

func (w *Workflow) captureFacts(email, text string) {
	for _, f := range facts.Extract(text) {
		if err := w.Facts.StoreFact(email, f.Key, f.Value, 1.0); err != nil {
			log.Printf("❌ error storing user fact %s: %v", f.Key, err)
		} else {
			log.Printf("✅ fact stored for %s: %s = %s", email, f.Key, f.Value)
		}
	}
}

func (w *Workflow) remember(email, text string) {
	if _, err := w.Memory.Remember(email, text); err != nil {
		log.Printf("⚠ memory write error: %v", err)
	}
}

func (w *Workflow) save(email, projectID, chatID string, role models.Role, content string) {
	if err := w.Chats.SaveMessage(email, projectID, chatID, role, content); err != nil {
		log.Printf("❌ chat save error: %v", err)
	}
}

func (w *Workflow) session(c *fiber.Ctx) *session.Session {
	if config.Sessions == nil {
		return nil
	}
	sess, err := config.Sessions.Get(c)
	if err != nil {
		log.Printf("⚠ session error: %v", err)
		return nil
	}
	return sess
}

func identity(sess *session.Session) (email, name string) {
	if sess == nil {
		return "", ""
	}
	email, _ = sess.Get("user_email").(string)
	name, _ = sess.Get("user_name").(string)
	return email, name
}

func sessionString(sess *session.Session, key string) string {
	if sess == nil {
		return ""
	}
	v, _ := sess.Get(key).(string)
	return v
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func pick(list []string) string {
	return list[rand.Intn(len(list))]
}
