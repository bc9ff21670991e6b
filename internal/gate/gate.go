// Package gate implements permission-based authorization for the console.
// A Role is a named set of "resource:action" permissions; the Gate resolves
// the acting employee to a role and checks the requested permission, then
// consults an optional per-resource policy (e.g. client assignment).
package gate

import (
	"context"
	"errors"
)

// Sentinel errors returned by Gate.Authorize.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoRole       = errors.New("no role assigned")
)

// Gate is the central authorization checkpoint for employee IDs.
type Gate struct {
	resolver RoleResolver
	policies map[string]Policy
}

// New creates a gate backed by the given role resolver.
func New(resolver RoleResolver) *Gate {
	return &Gate{
		resolver: resolver,
		policies: make(map[string]Policy),
	}
}

// RegisterPolicy adds a resource-scoped policy consulted after the
// role permission check, when a concrete resource is provided.
func (g *Gate) RegisterPolicy(resource string, p Policy) {
	g.policies[resource] = p
}

// Authorize checks that the employee's role grants resource:action and,
// if a policy is registered and a resource value is given, that the
// policy allows it too.
func (g *Gate) Authorize(ctx context.Context, employeeID uint, action Action, resource string, subject any) error {
	if employeeID == 0 {
		return ErrUnauthorized
	}
	role, err := g.resolver.Resolve(ctx, employeeID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrNoRole
	}
	if !role.HasPermission(NewPermission(resource, action)) {
		return ErrUnauthorized
	}
	if subject != nil {
		if p, ok := g.policies[resource]; ok && !p.Allow(ctx, employeeID, action, subject) {
			return ErrUnauthorized
		}
	}
	return nil
}

// Can reports whether Authorize would succeed.
func (g *Gate) Can(ctx context.Context, employeeID uint, action Action, resource string, subject any) bool {
	return g.Authorize(ctx, employeeID, action, resource, subject) == nil
}

// CanRole checks only the role permission, skipping resource policies.
// Used by templates to show or hide controls before a resource is loaded.
func (g *Gate) CanRole(ctx context.Context, employeeID uint, action Action, resource string) bool {
	if employeeID == 0 {
		return false
	}
	role, err := g.resolver.Resolve(ctx, employeeID)
	if err != nil || role == nil {
		return false
	}
	return role.HasPermission(NewPermission(resource, action))
}

// Policy decides access to a concrete resource after the role check passed.
type Policy interface {
	Allow(ctx context.Context, employeeID uint, action Action, subject any) bool
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(ctx context.Context, employeeID uint, action Action, subject any) bool

func (f PolicyFunc) Allow(ctx context.Context, employeeID uint, action Action, subject any) bool {
	return f(ctx, employeeID, action, subject)
}
