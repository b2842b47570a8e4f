package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func studentToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"access_code_id": "7b2e4a90-0000-0000-0000-000000000001",
		"school":         "Test School",
		"allowed_levels": []string{"CSEE (Form IV)"},
		"exp":            time.Now().Add(time.Hour).Unix(),
	})
}

func adminToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
}

func newGuardedApp() (*fiber.App, *string) {
	app := fiber.New()

	var seenCodeId string
	app.Get("/student", JwtMiddleware, func(ctx *fiber.Ctx) error {
		seenCodeId, _ = ctx.Locals("access_code_id").(string)
		return ctx.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin", AdminJwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app, &seenCodeId
}

func TestJwtMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, seen := newGuardedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/student", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, *seen)
}

func TestJwtMiddlewareRejectsGarbledToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, seen := newGuardedApp()

	req := httptest.NewRequest("GET", "/student", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, *seen)
}

func TestJwtMiddlewareAcceptsStudentToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, seen := newGuardedApp()

	req := httptest.NewRequest("GET", "/student", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "7b2e4a90-0000-0000-0000-000000000001", *seen)
}

func TestJwtMiddlewareRejectsTokenWithoutAccessCode(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, seen := newGuardedApp()

	// A valid admin token carries no access_code_id claim; the student
	// routes must still reject it.
	req := httptest.NewRequest("GET", "/student", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, *seen)
}

func TestJwtMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-different-secret")
	app, seen := newGuardedApp()

	req := httptest.NewRequest("GET", "/student", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, *seen)
}

func TestAdminJwtMiddlewareAcceptsAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, _ := newGuardedApp()

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminJwtMiddlewareForbidsStudentToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, _ := newGuardedApp()

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminJwtMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, _ := newGuardedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
