package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func authApp() *fiber.App {
	app := fiber.New()
	app.Use(BearerAuth())
	app.Post("/api/v1/session", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/api/v1/chat/work", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestBearerAuthRejectsMissingToken(t *testing.T) {
	t.Setenv("API_BEARER_TOKEN", "secret")
	app := authApp()

	req := httptest.NewRequest("POST", "/api/v1/chat/work", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestBearerAuthAcceptsToken(t *testing.T) {
	t.Setenv("API_BEARER_TOKEN", "secret")
	app := authApp()

	req := httptest.NewRequest("POST", "/api/v1/chat/work", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestBearerAuthRejectsWrongToken(t *testing.T) {
	t.Setenv("API_BEARER_TOKEN", "secret")
	app := authApp()

	req := httptest.NewRequest("POST", "/api/v1/chat/work", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

// Logging in must work without a token; that endpoint is the only exemption.
func TestBearerAuthExemptsSessionEndpoint(t *testing.T) {
	t.Setenv("API_BEARER_TOKEN", "secret")
	app := authApp()

	req := httptest.NewRequest("POST", "/api/v1/session", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
