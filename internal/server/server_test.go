package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"booknotion-be/internal/bootstrap"
	"booknotion-be/internal/config"
	"booknotion-be/internal/pkg/logger"
	"booknotion-be/internal/repository/sqlite"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := sqlite.Open(t.TempDir() + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.App.Environment = "test"
	cfg.App.CorsAllowedOrigins = "http://localhost:5173"
	cfg.Auth.JWTSecret = "test-secret"

	container := bootstrap.NewContainer(sqlite.NewRepositoryFactory(db), cfg, logger.NewNopLogger())
	return New(cfg, container).GetApp()
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(respBody) > 0 {
		_ = json.Unmarshal(respBody, &decoded)
	}
	return resp, decoded
}

func registerAna(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := request(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ana",
		"email":    "ana@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthReportsStore(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "sqlite", body["database"])
}

func TestFullNotebookLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAna(t, app)

	// create section "Work"
	resp, section := request(t, app, http.MethodPost, "/api/sections", token, map[string]string{"name": "Work"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sectionId := section["id"].(string)

	// create notebook "Todo" inside it
	resp, notebook := request(t, app, http.MethodPost, "/api/notebooks", token, map[string]interface{}{
		"name":       "Todo",
		"section_id": sectionId,
		"content":    "",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	notebookId := notebook["id"].(string)

	// autosave content
	resp, _ = request(t, app, http.MethodPatch, "/api/notebooks/"+notebookId+"/content", token, map[string]string{
		"content": "<p>hi</p>",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// read it back unchanged
	resp, got := request(t, app, http.MethodGet, "/api/notebooks/"+notebookId, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<p>hi</p>", got["content"])
	assert.Equal(t, "Todo", got["name"])

	// cascade delete reports the notebook count
	resp, deleted := request(t, app, http.MethodDelete, "/api/sections/"+sectionId, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), deleted["deletedNotebooks"])

	// the notebook went with it
	resp, _ = request(t, app, http.MethodGet, "/api/notebooks/"+notebookId, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthErrorShapes(t *testing.T) {
	app := newTestApp(t)
	registerAna(t, app)

	// unknown email: 404 with USER_NOT_FOUND
	resp, body := request(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "USER_NOT_FOUND", body["code"])
	assert.Equal(t, "User not found", body["error"])

	// wrong password: 401 with INVALID_PASSWORD
	resp, body = request(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ana@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_PASSWORD", body["code"])

	// duplicate registration: 409
	resp, _ = request(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "other",
		"email":    "ana@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// short password: 400
	resp, _ = request(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "short",
		"email":    "short@x.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	// missing token is 401
	resp, _ := request(t, app, http.MethodGet, "/api/sections", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// garbage token is 403
	resp, _ = request(t, app, http.MethodGet, "/api/sections", "not-a-token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMeAndRefresh(t *testing.T) {
	app := newTestApp(t)
	token := registerAna(t, app)

	resp, me := request(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana", me["username"])
	assert.Equal(t, "ana@x.com", me["email"])

	resp, refreshed := request(t, app, http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fresh, _ := refreshed["token"].(string)
	require.NotEmpty(t, fresh)

	resp, _ = request(t, app, http.MethodGet, "/api/auth/me", fresh, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchRouteOrdering(t *testing.T) {
	app := newTestApp(t)
	token := registerAna(t, app)

	_, section := request(t, app, http.MethodPost, "/api/sections", token, map[string]string{"name": "Work"})
	sectionId := section["id"].(string)

	for i := 0; i < 2; i++ {
		resp, _ := request(t, app, http.MethodPost, "/api/notebooks", token, map[string]interface{}{
			"name":       fmt.Sprintf("Meeting %d", i),
			"section_id": sectionId,
			"content":    "<p>agenda</p>",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// /notebooks/search must not be swallowed by /notebooks/:id
	resp, _ := request(t, app, http.MethodGet, "/api/notebooks/search?q=meeting", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// empty query is a validation error
	resp, _ = request(t, app, http.MethodGet, "/api/notebooks/search?q=", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSectionStatsRoute(t *testing.T) {
	app := newTestApp(t)
	token := registerAna(t, app)

	_, section := request(t, app, http.MethodPost, "/api/sections", token, map[string]string{"name": "Work"})
	sectionId := section["id"].(string)

	resp, stats := request(t, app, http.MethodGet, "/api/sections/"+sectionId+"/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Work", stats["sectionName"])
	assert.Equal(t, float64(0), stats["totalNotebooks"])
}
