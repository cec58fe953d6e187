package v1

import (
	"debugmate-backend/internal/config"
	"debugmate-backend/internal/handlers"
	"debugmate-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerSession(r fiber.Router) {
	// Initialize handler
	projectRepo := repo.NewProjectRepository(config.DB)
	sessionHandler := handlers.NewSessionHandler(projectRepo)

	// Register routes
	r.Post("/session", sessionHandler.SetSession)
	r.Get("/session", sessionHandler.DebugSession)
	r.Post("/user/project", sessionHandler.GetUserProject)
}
