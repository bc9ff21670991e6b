package policy

import (
	"context"
	"net/http"
	"time"

	"clientdesk/internal/auth"
	"clientdesk/internal/gate"

	"gorm.io/gorm"
)

// AuthGate is the central authorization point: the gate plus the cached
// role resolver, keyed off the session employee in the request context.
type AuthGate struct {
	Gate          *gate.Gate
	CacheResolver *gate.CachedResolver
}

// NewAuthGate wires the database resolver, cache and gate together.
func NewAuthGate(db *gorm.DB, cacheTTL time.Duration) *AuthGate {
	cached := gate.NewCachedResolver(NewDBRoleResolver(db), cacheTTL)
	return &AuthGate{
		Gate:          gate.New(cached),
		CacheResolver: cached,
	}
}

// Authorize checks the current employee against resource:action.
func (ag *AuthGate) Authorize(ctx context.Context, action gate.Action, resource string, subject any) error {
	employeeID, ok := auth.EmployeeIDFromContext(ctx)
	if !ok {
		return gate.ErrUnauthorized
	}
	return ag.Gate.Authorize(ctx, employeeID, action, resource, subject)
}

// Can reports whether Authorize would succeed.
func (ag *AuthGate) Can(ctx context.Context, action gate.Action, resource string, subject any) bool {
	return ag.Authorize(ctx, action, resource, subject) == nil
}

// CanRole checks only the role permission. Templates use this to show
// or hide controls before any resource is loaded.
func (ag *AuthGate) CanRole(ctx context.Context, action gate.Action, resource string) bool {
	employeeID, ok := auth.EmployeeIDFromContext(ctx)
	if !ok {
		return false
	}
	return ag.Gate.CanRole(ctx, employeeID, action, resource)
}

// RoleName returns the current employee's role name for the badge in
// the navigation shell; "" when unauthenticated or unassigned.
func (ag *AuthGate) RoleName(ctx context.Context) string {
	employeeID, ok := auth.EmployeeIDFromContext(ctx)
	if !ok {
		return ""
	}
	role, err := ag.CacheResolver.Resolve(ctx, employeeID)
	if err != nil || role == nil {
		return ""
	}
	return role.Name()
}

// IsAdmin reports whether the current employee holds the superadmin
// wildcard.
func (ag *AuthGate) IsAdmin(ctx context.Context) bool {
	employeeID, ok := auth.EmployeeIDFromContext(ctx)
	if !ok {
		return false
	}
	role, err := ag.CacheResolver.Resolve(ctx, employeeID)
	if err != nil || role == nil {
		return false
	}
	return role.HasPermission(gate.PermissionSuperAdmin)
}

// InvalidateEmployee clears one employee's cached role after their
// assignment changes.
func (ag *AuthGate) InvalidateEmployee(employeeID uint) {
	ag.CacheResolver.Invalidate(employeeID)
}

// RequirePermission is route middleware enforcing a role permission.
func (ag *AuthGate) RequirePermission(resource string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ag.CanRole(r.Context(), action, resource) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
