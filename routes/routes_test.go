package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cibnlibrary/config"
	"cibnlibrary/handlers"
	"cibnlibrary/models"
	"cibnlibrary/services/backend"
	"cibnlibrary/services/content"
	"cibnlibrary/services/session"
	"cibnlibrary/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthenticator struct {
	resp *backend.TokenResponse
	err  error
}

func (s stubAuthenticator) Login(context.Context, backend.LoginRequest) (*backend.TokenResponse, error) {
	return s.resp, s.err
}

func (s stubAuthenticator) CIBNLogin(context.Context, backend.CIBNLoginRequest) (*backend.TokenResponse, error) {
	return s.resp, s.err
}

func (s stubAuthenticator) Me(context.Context, string) (*models.User, error) {
	return &s.resp.User, s.err
}

type testServer struct {
	router   *gin.Engine
	sessions *session.Service
	store    *content.MemoryStore
}

func setupRouter(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewService(session.NewMemoryStore(), time.Hour)
	store := content.NewMemoryStore(nil)
	debug := handlers.NewDebugHandler("http://backend.test/api/v1")
	upstream := stubAuthenticator{resp: &backend.TokenResponse{
		AccessToken: "upstream-token",
		TokenType:   "bearer",
		User:        models.User{ID: 11, Email: "ada@cibng.org", FullName: "Ada Obi"},
	}}

	hb := &handlers.HandlerBundle{
		Sessions:   sessions,
		AdminToken: "admin-secret",
		Library:    handlers.NewLibraryHandler(sessions),
		Auth:       handlers.NewAuthHandler(upstream, sessions, false),
		Pages:      handlers.NewPageHandler(content.NewReader(store, zap.NewNop()), debug, true),
		Debug:      debug,
		CMS:        handlers.NewCMSHandler(store),
		Config:     handlers.NewConfigHandler(config.DefaultDepartments),
	}

	r := gin.New()
	RegisterRoutes(r, hb)
	return &testServer{router: r, sessions: sessions, store: store}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	token, _, err := s.sessions.Create(context.Background(), models.User{ID: 1, Email: "m@cibng.org"}, "")
	require.NoError(t, err)
	return token
}

func TestLibraryRequiresSession(t *testing.T) {
	s := setupRouter(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/library", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/library", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w = s.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestLibraryWithSession(t *testing.T) {
	s := setupRouter(t)
	token := s.token(t)

	req := httptest.NewRequest(http.MethodGet, "/api/library", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := s.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/library", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: token})
	w = s.do(req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"title":"x"}`, w.Body.String())
}

func TestLoginSetsSessionCookie(t *testing.T) {
	s := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ada@cibng.org","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken string      `json:"access_token"`
		User        models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "Ada Obi", body.User.FullName)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.TokenCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, body.AccessToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	w = s.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@cibng.org")

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusNoContent, s.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusUnauthorized, s.do(req).Code)
}

func TestFAQPageWithoutContent(t *testing.T) {
	s := setupRouter(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/faqs", nil))
	require.Equal(t, http.StatusOK, w.Code)

	html := w.Body.String()
	assert.Contains(t, html, "<h1>FAQs</h1>")
	assert.Contains(t, html, "Frequently asked questions about the platform.")
	assert.Contains(t, html, "No FAQs added yet.")
	assert.NotContains(t, html, "<details")
	assert.NotContains(t, html, "cms-hero")
}

func TestEveryPageRendersWithoutContent(t *testing.T) {
	s := setupRouter(t)
	for _, key := range models.PageKeys {
		w := s.do(httptest.NewRequest(http.MethodGet, "/"+string(key), nil))
		assert.Equal(t, http.StatusOK, w.Code, key)
		assert.Contains(t, w.Body.String(), content.PageDefaults[key].EmptyMessage, key)
	}
}

func TestAdminEditShowsOnPage(t *testing.T) {
	s := setupRouter(t)

	payload := `{"heroImage":"https://cdn.cibng.org/terms.jpg","bodyHtml":"<p>Be <strong>kind</strong>.</p>","items":[{"q":"Can I share?","aHtml":"<em>No.</em>"}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/cms/terms", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusUnauthorized, s.do(req).Code)

	req = httptest.NewRequest(http.MethodPut, "/api/admin/cms/terms", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-secret")
	require.Equal(t, http.StatusOK, s.do(req).Code)

	w := s.do(httptest.NewRequest(http.MethodGet, "/terms", nil))
	html := w.Body.String()
	assert.Contains(t, html, "<h1>Terms of Service</h1>")
	assert.Contains(t, html, `src="https://cdn.cibng.org/terms.jpg"`)
	assert.Contains(t, html, "<p>Be <strong>kind</strong>.</p>")
	assert.Contains(t, html, "<summary>Can I share?</summary>")
	assert.Contains(t, html, "<em>No.</em>")
	assert.NotContains(t, html, "No questions about these terms yet.")

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/cms/pages", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"terms"`)
}

func TestAdminEditUnknownPage(t *testing.T) {
	s := setupRouter(t)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/cms/contact", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer admin-secret")
	assert.Equal(t, http.StatusNotFound, s.do(req).Code)
}

func TestDebugOverlay(t *testing.T) {
	s := setupRouter(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/debug/auth", nil))
	require.Equal(t, http.StatusOK, w.Code)
	html := w.Body.String()
	assert.Contains(t, html, "Base URL: http://backend.test/api/v1")
	assert.Contains(t, html, "Authenticated: false")
	assert.Contains(t, html, "Token stored: false")
	assert.Contains(t, html, "User: null")
	assert.NotContains(t, html, "Last error")

	req := httptest.NewRequest(http.MethodGet, "/api/debug/auth", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(t))
	w = s.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var view handlers.DebugView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.IsAuthenticated)
	assert.True(t, view.TokenPresent)
	require.NotNil(t, view.User)
	assert.Equal(t, "m@cibng.org", view.User.Email)
}

func TestDebugOverlayOnPages(t *testing.T) {
	s := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/help", nil)
	req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: "stale"})
	html := s.do(req).Body.String()

	assert.Contains(t, html, "Auth Debug")
	assert.Contains(t, html, "Token stored: true")
	assert.Contains(t, html, "Last error: ")
}

func TestDepartmentsEndpoint(t *testing.T) {
	s := setupRouter(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/config/departments", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []config.DepartmentOption
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, config.DefaultDepartments, got)
}

func TestNotFound(t *testing.T) {
	s := setupRouter(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	s := setupRouter(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
