package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tpecflowers/internal/config"
	"tpecflowers/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// noopMailer satisfies mail.Mailer without sending anything.
type noopMailer struct{}

func (noopMailer) SendInquiryNotification(*models.Inquiry) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Port:        "0",
		Env:         "test",
		JWTSecret:   "test-secret-for-handler-tests-only",
		NotifyEmail: "operator@example.com",
	}
}

func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Inquiry{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	srv, err := NewServerWithDeps(testConfig(), db, nil, noopMailer{})
	if err != nil {
		t.Fatalf("NewServerWithDeps: %v", err)
	}

	app := fiber.New()
	srv.SetupRoutes(app)

	return srv, app, db
}

func operatorToken(t *testing.T, srv *Server) string {
	t.Helper()
	token, err := srv.generateToken(1, "operator")
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}
	return token
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestSubmitInquiry_PersistsVerbatim(t *testing.T) {
	t.Parallel()

	_, app, db := setupTestServer(t)

	req := jsonRequest(http.MethodPost, "/api/inquiries", fiber.Map{
		"name":            "Maria Lopez",
		"email":           "maria@example.com",
		"phone":           "512-555-0134",
		"event_type":      "Quinceañera",
		"event_date":      "2026-10-14",
		"location":        "Austin",
		"vision":          "Pink and gold backdrop with fresh roses",
		"budget_range":    "$1,000 - $2,500",
		"referral_source": "Instagram",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID      uint   `json:"id"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &created)
	require.NotZero(t, created.ID)
	assert.NotEmpty(t, created.Message)

	var stored models.Inquiry
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, "Maria Lopez", stored.Name)
	assert.Equal(t, "maria@example.com", stored.Email)
	assert.Equal(t, "512-555-0134", stored.Phone)
	assert.Equal(t, "Quinceañera", stored.EventType)
	assert.Equal(t, "Austin", stored.Location)
	assert.Equal(t, "Pink and gold backdrop with fresh roses", stored.Vision)
	require.NotNil(t, stored.BudgetRange)
	assert.Equal(t, "$1,000 - $2,500", *stored.BudgetRange)
	require.NotNil(t, stored.ReferralSource)
	assert.Equal(t, "Instagram", *stored.ReferralSource)
	assert.Equal(t, models.StatusNew, stored.Status)
}

func TestSubmitInquiry_ValidationFailure(t *testing.T) {
	t.Parallel()

	_, app, db := setupTestServer(t)

	req := jsonRequest(http.MethodPost, "/api/inquiries", fiber.Map{
		"name":  "Maria",
		"email": "not-an-email",
		"phone": "512-555-0134",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Please enter a valid email address", body.Error)

	var count int64
	require.NoError(t, db.Model(&models.Inquiry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRequestCallback_FillsPlaceholders(t *testing.T) {
	t.Parallel()

	_, app, db := setupTestServer(t)

	req := jsonRequest(http.MethodPost, "/api/inquiries/callback", fiber.Map{
		"name":  "Maria",
		"phone": "512-555-0134",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	var stored models.Inquiry
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, models.CallbackEmail, stored.Email)
	assert.Equal(t, models.CallbackEventType, stored.EventType)
	assert.Equal(t, models.CallbackLocation, stored.Location)
	assert.Equal(t, models.CallbackVision, stored.Vision)
	assert.Equal(t, models.StatusNew, stored.Status)
}

func TestAdminRoutes_RequireAuth(t *testing.T) {
	t.Parallel()

	_, app, _ := setupTestServer(t)

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/admin/inquiries"},
		{http.MethodGet, "/api/admin/inquiries/count"},
		{http.MethodGet, "/api/admin/inquiries/1"},
		{http.MethodPatch, "/api/admin/inquiries/1/status"},
		{http.MethodDelete, "/api/admin/inquiries/1"},
	}

	for _, r := range routes {
		r := r
		t.Run(r.method+" "+r.target, func(t *testing.T) {
			req := httptest.NewRequest(r.method, r.target, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAdminRoutes_RejectGarbageToken(t *testing.T) {
	t.Parallel()

	_, app, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminInquiryModeration(t *testing.T) {
	t.Parallel()

	srv, app, _ := setupTestServer(t)
	token := operatorToken(t, srv)

	authed := func(method, target string, payload any) *http.Request {
		req := jsonRequest(method, target, payload)
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	// Seed two inquiries through the public form.
	for _, name := range []string{"First Visitor", "Second Visitor"} {
		req := jsonRequest(http.MethodPost, "/api/inquiries", fiber.Map{
			"name":       name,
			"email":      "visitor@example.com",
			"phone":      "512-555-0100",
			"event_type": "Wedding",
			"location":   "Dallas",
			"vision":     "Roses",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	var listed struct {
		Inquiries []models.Inquiry `json:"inquiries"`
		Count     int              `json:"count"`
	}

	t.Run("list", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodGet, "/api/admin/inquiries", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &listed)
		require.Len(t, listed.Inquiries, 2)
		assert.Equal(t, 2, listed.Count)
	})

	first := listed.Inquiries[0].ID

	t.Run("count defaults to new", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodGet, "/api/admin/inquiries/count", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, models.StatusNew, body.Status)
		assert.EqualValues(t, 2, body.Count)
	})

	t.Run("detail", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodGet, fmt.Sprintf("/api/admin/inquiries/%d", first), nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var inquiry models.Inquiry
		decodeBody(t, resp, &inquiry)
		assert.Equal(t, first, inquiry.ID)
		assert.NotEmpty(t, inquiry.Vision)
	})

	t.Run("patch status", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodPatch,
			fmt.Sprintf("/api/admin/inquiries/%d/status", first),
			fiber.Map{"status": models.StatusContacted}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var inquiry models.Inquiry
		decodeBody(t, resp, &inquiry)
		assert.Equal(t, models.StatusContacted, inquiry.Status)
	})

	t.Run("patch invalid status", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodPatch,
			fmt.Sprintf("/api/admin/inquiries/%d/status", first),
			fiber.Map{"status": "archived"}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("patch unknown id", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodPatch,
			"/api/admin/inquiries/999/status",
			fiber.Map{"status": models.StatusContacted}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("count after transition", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodGet, "/api/admin/inquiries/count?status=new", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Count int64 `json:"count"`
		}
		decodeBody(t, resp, &body)
		assert.EqualValues(t, 1, body.Count)
	})

	t.Run("delete", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodDelete, fmt.Sprintf("/api/admin/inquiries/%d", first), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp2, err := app.Test(authed(http.MethodGet, fmt.Sprintf("/api/admin/inquiries/%d", first), nil))
		require.NoError(t, err)
		defer func() { _ = resp2.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodDelete, "/api/admin/inquiries/999", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id param", func(t *testing.T) {
		resp, err := app.Test(authed(http.MethodGet, "/api/admin/inquiries/abc", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
