package handlers

import (
	"log"
	"strings"

	"debugmate-backend/internal/config"
	"debugmate-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

// for simple session plumbing a service layer is not required
type SessionHandler struct {
	projects repo.ProjectRepoInterface
}

func NewSessionHandler(projects repo.ProjectRepoInterface) *SessionHandler {
	return &SessionHandler{projects: projects}
}

// SetSession stores the caller's identity server-side. This is the only
// endpoint outside the bearer-token gate.
func (h *SessionHandler) SetSession(c *fiber.Ctx) error {
	var dto struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	email := strings.TrimSpace(dto.Email)
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "❌ Email is required.",
		})
	}

	sess, err := config.Sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session store unavailable")
	}
	sess.Set("user_email", email)
	sess.Set("user_name", strings.TrimSpace(dto.Name))
	if err := sess.Save(); err != nil {
		log.Println(err, "Error saving session")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to set session")
	}

	return c.JSON(fiber.Map{"message": "✅ Session set."})
}

func (h *SessionHandler) DebugSession(c *fiber.Ctx) error {
	sess, err := config.Sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session store unavailable")
	}
	return c.JSON(fiber.Map{
		"user_email": sess.Get("user_email"),
		"user_name":  sess.Get("user_name"),
	})
}

// GetUserProject returns the first project assigned to the given email so
// the frontend can preselect a project pin. Lookup failures degrade to the
// default project rather than an error.
func (h *SessionHandler) GetUserProject(c *fiber.Ctx) error {
	var dto struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if dto.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	log.Printf("🔍 Getting project for user: %s", dto.Email)

	project, err := h.projects.FirstAssignedProject(dto.Email)
	if err != nil {
		log.Println(err, "Error fetching assigned project")
	}
	if err != nil || project == nil {
		return c.JSON(fiber.Map{
			"project_id":          "default",
			"project_name":        "Default Project",
			"project_description": "No assigned projects",
			"message":             "No assigned projects found",
		})
	}

	log.Printf("🔍 Found project for %s: ID=%s, Name=%s", dto.Email, project.UUID, project.ProjectName)

	return c.JSON(fiber.Map{
		"project_id":          project.UUID.String(),
		"project_name":        project.ProjectName,
		"project_description": project.ProjectDescription,
		"full_project_info":   project,
		"message":             "Project found",
	})
}
