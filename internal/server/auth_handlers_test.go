package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tpecflowers/internal/middleware"
	"tpecflowers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "Str0ng!Passw0rd"

func setupAuthTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Inquiry{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	srv, err := NewServerWithDeps(testConfig(), db, redisClient, noopMailer{})
	if err != nil {
		t.Fatalf("NewServerWithDeps: %v", err)
	}

	app := fiber.New()
	srv.SetupRoutes(app)

	return srv, app
}

func signup(t *testing.T, app *fiber.App, username, email string) *http.Response {
	t.Helper()
	req := jsonRequest(http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": username,
		"email":    email,
		"password": testPassword,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	t.Parallel()

	_, app := setupAuthTestServer(t)

	t.Run("success", func(t *testing.T) {
		resp := signup(t, app, "operator", "operator@example.com")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "operator", body.User.Username)
		assert.Empty(t, body.User.Password) // json:"-" must hide the hash
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := signup(t, app, "operator2", "operator@example.com")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/auth/signup", fiber.Map{
			"username": "weakling",
			"email":    "weak@example.com",
			"password": "short",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid email", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/auth/signup", fiber.Map{
			"username": "someone",
			"email":    "nope",
			"password": testPassword,
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/auth/signup", fiber.Map{})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	_, app := setupAuthTestServer(t)
	resp := signup(t, app, "operator", "operator@example.com")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("success", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "operator@example.com",
			"password": testPassword,
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "operator@example.com",
			"password": "Wr0ng!Password",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "ghost@example.com",
			"password": testPassword,
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout_RevokesToken(t *testing.T) {
	t.Parallel()

	_, app := setupAuthTestServer(t)
	resp := signup(t, app, "operator", "operator@example.com")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	token := body.Token

	// Token works before logout.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp2, err := app.Test(req)
	require.NoError(t, err)
	_ = resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	// Logout.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp3, err := app.Test(req)
	require.NoError(t, err)
	_ = resp3.Body.Close()
	require.Equal(t, http.StatusOK, resp3.StatusCode)

	// Token no longer works.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp4, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp4.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp4.StatusCode)
}

func TestLogout_WithoutRedisWarnsAndKeepsTokenValid(t *testing.T) {
	// Not parallel: swaps the global logger to capture the warning.
	srv, app, _ := setupTestServer(t) // nil redis
	token := operatorToken(t, srv)

	var logBuf bytes.Buffer
	prev := middleware.Logger
	middleware.Logger = slog.New(slog.NewTextHandler(&logBuf, nil))
	t.Cleanup(func() { middleware.Logger = prev })

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, logBuf.String(), "token not revoked")

	// Without a blacklist the token stays valid until it expires.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp2, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}
