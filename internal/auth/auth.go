// Package auth implements cookie-based sessions for console employees.
// Sessions are an HMAC-signed employee ID; the middleware attaches the
// verified ID to the request context for handlers and templates.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type ctxKey string

const (
	sessionCookieName = "cd_session"
	employeeIDCtxKey  = ctxKey("employeeID")

	sessionLifetime = 14 * 24 * time.Hour
)

// EmployeeVerifier optionally confirms that a session still refers to a
// real, active employee. Set during bootstrap; nil skips the check.
type EmployeeVerifier func(ctx context.Context, employeeID uint) bool

var verifier EmployeeVerifier

// SetEmployeeVerifier configures the verifier used by RequireAuth.
func SetEmployeeVerifier(v EmployeeVerifier) { verifier = v }

// Secret returns SESSION_SECRET or a dev default.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets the signed session cookie for an employee.
func CreateSession(w http.ResponseWriter, employeeID uint) {
	id := strconv.FormatUint(uint64(employeeID), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id + "." + sign(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionLifetime),
	})
}

// ClearSession expires the session cookie. Logout also wipes browser
// local/session storage; that half lives in the layout template.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ParseSession validates the cookie signature and returns the employee ID.
func ParseSession(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	id, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return 0, false
	}
	if !hmac.Equal([]byte(sig), []byte(sign(id))) {
		return 0, false
	}
	id64, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}

// WithEmployeeID stores the employee ID in the context.
func WithEmployeeID(ctx context.Context, employeeID uint) context.Context {
	return context.WithValue(ctx, employeeIDCtxKey, employeeID)
}

// EmployeeIDFromContext extracts the employee ID set by Middleware.
func EmployeeIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(employeeIDCtxKey).(uint)
	return id, ok
}

// Middleware attaches the session's employee ID to the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := ParseSession(r); ok {
			r = r.WithContext(WithEmployeeID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects unauthenticated requests to the login page.
// Sessions for removed employees are cleared and treated the same way.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := EmployeeIDFromContext(r.Context())
		if !ok || id == 0 {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if verifier != nil && !verifier(r.Context(), id) {
			ClearSession(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
