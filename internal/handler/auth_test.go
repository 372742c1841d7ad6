package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	h := newTestHandler(t)
	h.RegisterRoutes()

	t.Run("success", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"username": "admin",
			"password": "secret",
		})
		rec := httptest.NewRecorder()
		h.Mux.ServeHTTP(rec, req)

		resp := decodeResponse(t, rec, nil)
		require.True(t, resp.Success, resp.Message)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, tokenCookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.NotEmpty(t, cookies[0].Value)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"username": "admin",
			"password": "guess",
		})
		rec := httptest.NewRecorder()
		h.Mux.ServeHTTP(rec, req)

		resp := decodeResponse(t, rec, nil)
		assert.False(t, resp.Success)
		assert.Equal(t, "用户名不存在或密码错误", resp.Message)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("unknown user", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"username": "root",
			"password": "secret",
		})
		rec := httptest.NewRecorder()
		h.Mux.ServeHTTP(rec, req)

		resp := decodeResponse(t, rec, nil)
		assert.False(t, resp.Success)
	})
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newTestHandler(t)
	h.RegisterRoutes()

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}

func TestCreateWorkingWeekRequiresLogin(t *testing.T) {
	h := newTestHandler(t)
	h.RegisterRoutes()

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/working-weeks", map[string]string{"name": "网络中心"}))

	resp := decodeResponse(t, rec, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "用户未登录", resp.Message)
}

func TestAuthMiddleware(t *testing.T) {
	h := newTestHandler(t)

	reached := false
	protected := h.auth(h.RequiredRole([]string{RoleAdmin})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		assert.Equal(t, "admin", r.Context().Value(SubCtxKey))
		h.successResponse(w, r, "ok", nil)
	})))

	validToken, err := IssueToken("test-secret", "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)
	expiredToken, err := IssueToken("test-secret", "admin", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	foreignToken, err := IssueToken("another-secret", "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		message string
	}{
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: validToken})
		}, "ok"},
		{"bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+validToken)
		}, "ok"},
		{"missing", func(r *http.Request) {}, "用户未登录"},
		{"expired", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+expiredToken)
		}, "无效的令牌"},
		{"wrong secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+foreignToken)
		}, "无效的令牌"},
		{"garbage", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+strings.Repeat("x", 20))
		}, "无效的令牌"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)

			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			resp := decodeResponse(t, rec, nil)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.message == "ok", reached)
		})
	}
}

func TestRequiredRoleRejectsOtherRoles(t *testing.T) {
	h := newTestHandler(t)

	guarded := h.RequiredRole([]string{RoleAdmin})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	resp := decodeResponse(t, rec, nil)
	assert.Equal(t, "权限不足", resp.Message)
}

func TestWorkingWeekRejectsInvalidID(t *testing.T) {
	h := newTestHandler(t)
	h.RegisterRoutes()

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/working-weeks/abc", nil))

	resp := decodeResponse(t, rec, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "工作周ID无效", resp.Message)
}
