package gate

import "context"

// Role is a named permission set an employee acts under.
type Role interface {
	Name() string
	HasPermission(p Permission) bool
}

// RoleResolver resolves an employee ID to their role. A nil role with a
// nil error means the employee has no role assigned.
type RoleResolver interface {
	Resolve(ctx context.Context, employeeID uint) (Role, error)
}

// StaticRole is an in-memory Role, used in tests and static wiring.
type StaticRole struct {
	name        string
	permissions []Permission
}

// NewStaticRole creates a role with a fixed permission set.
func NewStaticRole(name string, permissions ...Permission) *StaticRole {
	return &StaticRole{name: name, permissions: permissions}
}

func (r *StaticRole) Name() string { return r.name }

// HasPermission reports whether any held permission covers the request,
// wildcards included.
func (r *StaticRole) HasPermission(requested Permission) bool {
	for _, p := range r.permissions {
		if p.Matches(requested) {
			return true
		}
	}
	return false
}

// StaticResolver maps employee IDs to roles in memory.
type StaticResolver struct {
	roles map[uint]Role
}

// NewStaticResolver creates an empty in-memory resolver.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{roles: make(map[uint]Role)}
}

// Set assigns a role to an employee.
func (r *StaticResolver) Set(employeeID uint, role Role) {
	r.roles[employeeID] = role
}

func (r *StaticResolver) Resolve(_ context.Context, employeeID uint) (Role, error) {
	return r.roles[employeeID], nil
}
