package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"sessionlogin/pkg/claims"
	"sessionlogin/pkg/handlers"
	"sessionlogin/pkg/user"
)

func newPageHandler(c *mockChecker, i *mockIssuer) *handlers.PageHandler {
	return handlers.NewPageHandler(newAuthHandler(c, i), testLogger)
}

func TestLoginPage(t *testing.T) {
	rr := httptest.NewRecorder()

	newPageHandler(new(mockChecker), new(mockIssuer)).LoginPage(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, `<form id="login-form" method="post" action="/login"`)
	assert.Contains(t, body, `name="email"`)
	assert.Contains(t, body, `name="password"`)
	assert.Contains(t, body, `/api/login`)
}

func TestLoginSubmit(t *testing.T) {
	t.Run("success redirects to dashboard", func(t *testing.T) {
		c, i := new(mockChecker), new(mockIssuer)
		c.On("Check", "user@example.com", "password").Return(validUser, nil)
		i.On("Issue", userSession).Return("tok", userSession, nil)
		rr := httptest.NewRecorder()

		newPageHandler(c, i).LoginSubmit(rr, formRequest("/login", "user@example.com", "password"))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
		cookie := sessionCookie(rr)
		if assert.NotNil(t, cookie) {
			assert.Equal(t, "tok", cookie.Value)
		}
	})

	t.Run("invalid credentials re-render the form", func(t *testing.T) {
		c, i := new(mockChecker), new(mockIssuer)
		c.On("Check", "user@example.com", "nope").Return(nil, user.ErrInvalidCredentials)
		rr := httptest.NewRecorder()

		newPageHandler(c, i).LoginSubmit(rr, formRequest("/login", "user@example.com", "nope"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
		assert.Contains(t, rr.Body.String(), `value="user@example.com"`)
		assert.Nil(t, sessionCookie(rr))
	})

	t.Run("validation errors are shown per field", func(t *testing.T) {
		c, i := new(mockChecker), new(mockIssuer)
		rr := httptest.NewRecorder()

		newPageHandler(c, i).LoginSubmit(rr, formRequest("/login", "", ""))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email is required")
		assert.Contains(t, rr.Body.String(), "Password is required")
	})
}

func TestDashboard(t *testing.T) {
	h := newPageHandler(new(mockChecker), new(mockIssuer))

	t.Run("no session", func(t *testing.T) {
		rr := httptest.NewRecorder()

		h.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Access Denied. Please log in.")
		assert.NotContains(t, rr.Body.String(), "Welcome")
	})

	t.Run("session in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req = req.WithContext(claims.WithSession(req.Context(), &claims.Session{Email: "user@example.com", Role: "user"}))
		rr := httptest.NewRecorder()

		h.Dashboard(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Welcome, user@example.com!")
		assert.Contains(t, rr.Body.String(), "/api/logout")
		assert.NotContains(t, rr.Body.String(), "Access Denied")
	})
}
