package config

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

var Sessions *session.Store

// InitSessions creates the server-side session store. Identity (email/name)
// lives only here; chat endpoints never read it from request bodies.
func InitSessions() {
	Sessions = session.New(session.Config{
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}
