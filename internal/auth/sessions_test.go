package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rennsz/fansite/internal/config"
)

func newTestRouter(t *testing.T) (*gin.Engine, *SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := NewSessionManager(config.Auth{SessionLifetime: time.Hour})
	service := NewService(newFakeUserStore(t, "admin", "Rennsz5842"))
	controller := NewAuthController(service, sessions, nil)

	router := gin.New()
	router.Use(sessions.SessionLoadSave())
	router.POST("/api/admin/login", controller.Login)
	router.POST("/api/admin/logout", controller.Logout)
	router.GET("/api/admin/check-auth", controller.CheckAuth)

	admin := router.Group("/api/admin", RequireAuth(sessions))
	admin.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, sessions
}

func login(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestLoginFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("valid credentials set a session cookie", func(t *testing.T) {
		rec := login(t, router, `{"username":"admin","password":"Rennsz5842"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())

		cookie := sessionCookie(t, rec)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		rec := login(t, router, `{"username":"admin","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Invalid credentials"}`, rec.Body.String())
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		rec := login(t, router, `{"username":"admin"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("anonymous request is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/protected", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("session cookie grants access", func(t *testing.T) {
		cookie := sessionCookie(t, login(t, router, `{"username":"admin","password":"Rennsz5842"}`))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/protected", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCheckAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/check-auth", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
	})

	t.Run("logged in", func(t *testing.T) {
		cookie := sessionCookie(t, login(t, router, `{"username":"admin","password":"Rennsz5842"}`))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/check-auth", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"authenticated":true,"username":"admin"}`, rec.Body.String())
	})
}

func TestLogout(t *testing.T) {
	router, _ := newTestRouter(t)

	cookie := sessionCookie(t, login(t, router, `{"username":"admin","password":"Rennsz5842"}`))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The old cookie no longer authenticates.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/protected", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
