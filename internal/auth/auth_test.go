package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clientdesk/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRequest(t *testing.T, employeeID uint) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	auth.CreateSession(w, employeeID)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	req := sessionRequest(t, 42)
	id, ok := auth.ParseSession(req)
	require.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestParseSession_RejectsTamperedCookie(t *testing.T) {
	req := sessionRequest(t, 42)
	c, err := req.Cookie("cd_session")
	require.NoError(t, err)

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: c.Name, Value: "99." + c.Value[len("42."):]})

	_, ok := auth.ParseSession(forged)
	assert.False(t, ok, "signature for another ID must not validate")
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	handler := auth.Middleware(auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous requests")
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	called := false
	handler := auth.Middleware(auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		id, ok := auth.EmployeeIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, sessionRequest(t, 7))
	assert.True(t, called)
}

func TestClearSession_ExpiresCookie(t *testing.T) {
	w := httptest.NewRecorder()
	auth.ClearSession(w)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Unix() <= 0)
}
