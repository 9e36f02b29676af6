package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/energopraktiki/internal/config"
	"github.com/iliyamo/energopraktiki/internal/handler"
	"github.com/iliyamo/energopraktiki/internal/logging"
	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/utils"
)

func setup(t *testing.T, staticDir string) *echo.Echo {
	t.Helper()
	e := echo.New()
	Setup(e, Deps{
		Cfg:        config.Config{JWTSecret: "router-secret", StaticDir: staticDir},
		Logger:     logging.New(logging.Options{Writer: io.Discard}),
		Cache:      config.CacheConfig{},
		RateLimit:  config.RateLimitConfig{},
		Catalog:    &handler.CatalogHandler{},
		Content:    &handler.ContentHandler{},
		Newsletter: &handler.NewsletterHandler{},
		Schedule:   &handler.ScheduleHandler{},
		Auth:       &handler.AuthHandler{},
		Account:    &handler.AccountHandler{},
		Admin:      &handler.AdminHandler{},
	})
	return e
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutesRegistered(t *testing.T) {
	e := setup(t, "")
	have := map[string]bool{}
	for _, r := range e.Routes() {
		have[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /v1/facilitators",
		"GET /v1/facilitators/:slug",
		"GET /v1/retreats/home",
		"GET /v1/blog/:slug",
		"GET /v1/seo",
		"POST /v1/newsletter",
		"PATCH /v1/schedule/:code/sessions/:id",
		"POST /v1/auth/admin/login",
		"PUT /v1/account/password",
		"PATCH /v1/admin/facilitators/:id/active",
		"GET /v1/admin/schedule-codes",
		"PUT /v1/admin/site/:block",
		"DELETE /v1/admin/newsletter/:id",
		"GET /v1/faq",
		"GET /v1/testimonials",
		"PUT /v1/admin/faq/order",
		"PATCH /v1/admin/faq/:id/active",
		"PUT /v1/admin/testimonials/order",
		"DELETE /v1/admin/testimonials/:id",
	} {
		assert.True(t, have[want], "missing route %s", want)
	}
}

func TestHealthAndTraceHeader(t *testing.T) {
	rec := do(setup(t, ""), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	e := setup(t, "")
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/v1/admin/schedule-codes", "").Code)

	tok, err := utils.NewAccessToken("router-secret", "f1", model.RoleFacilitator, 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/v1/admin/schedule-codes", tok.Token).Code)
}

func TestStaticSPAFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644))
	e := setup(t, dir)

	rec := do(e, http.MethodGet, "/facilitators/alina-sokolova", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "spa")

	assert.Equal(t, "ok", do(e, http.MethodGet, "/healthz", "").Body.String())
}
