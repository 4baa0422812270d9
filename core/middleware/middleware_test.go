package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OmatthewY/explore-with-me/core/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, mw *Middleware, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/admin/users", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, mw.AdminAuth())

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminAuth_DisabledWithoutSecret(t *testing.T) {
	rec := serve(t, NewMiddleware(""), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	rec := serve(t, NewMiddleware("s3cret"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth_WrongScope(t *testing.T) {
	token, err := utils.GenerateToken("s3cret", "bob", "user", time.Minute)
	require.NoError(t, err)

	rec := serve(t, NewMiddleware("s3cret"), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminAuth_ValidToken(t *testing.T) {
	token, err := utils.GenerateToken("s3cret", "ops", "admin", time.Minute)
	require.NoError(t, err)

	rec := serve(t, NewMiddleware("s3cret"), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID_SetsHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}
