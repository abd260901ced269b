package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"inventario/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware_secret"

func signedToken(t *testing.T, key string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-1",
		"username": "alice",
		"exp":      time.Now().Add(ttl).Unix(),
	})
	s, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func guardedApp(required bool) *fiber.App {
	authService := services.NewAuthService(nil, secret, time.Hour)
	app := fiber.New()
	app.Use(WriteGuard(authService, required))
	ok := func(c *fiber.Ctx) error {
		if user, _ := c.Locals("username").(string); user != "" {
			return c.SendString(user)
		}
		return c.SendString("anonymous")
	}
	app.Get("/items", ok)
	app.Post("/items", ok)
	return app
}

func TestWriteGuard(t *testing.T) {
	tests := []struct {
		name     string
		required bool
		method   string
		header   string
		status   int
		body     string
	}{
		{"disabled write", false, fiber.MethodPost, "", fiber.StatusOK, "anonymous"},
		{"read without token", true, fiber.MethodGet, "", fiber.StatusOK, "anonymous"},
		{"write without token", true, fiber.MethodPost, "", fiber.StatusUnauthorized, ""},
		{"malformed header", true, fiber.MethodPost, "Token abc", fiber.StatusUnauthorized, ""},
		{"foreign signature", true, fiber.MethodPost, "Bearer " + signedToken(t, "other", time.Hour), fiber.StatusUnauthorized, ""},
		{"expired token", true, fiber.MethodPost, "Bearer " + signedToken(t, secret, -time.Hour), fiber.StatusUnauthorized, ""},
		{"valid token", true, fiber.MethodPost, "Bearer " + signedToken(t, secret, time.Hour), fiber.StatusOK, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/items", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := guardedApp(tt.required).Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.body != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.body, string(body))
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(requestid.New())
	app.Use(RequestContext())
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"error":"boom"`)
	assert.Contains(t, string(body), `"request_id"`)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
