package gate

import "strings"

// Action is the kind of operation an employee wants to perform.
type Action string

// Common actions. Domain-specific ones (e.g. "complete") are declared
// where they are seeded and checked.
const (
	ActionView   Action = "view"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Permission is an allowed action on a resource, in "resource:action" form
// (e.g. "contact:update", "document:delete").
type Permission string

// Wildcard permission forms.
const (
	Wildcard                        = "*"
	PermissionSuperAdmin Permission = "*:*"
)

// NewPermission builds a permission from its resource and action parts.
func NewPermission(resource string, action Action) Permission {
	return Permission(resource + ":" + string(action))
}

// Parse splits the permission into resource and action; both empty when
// the permission is malformed.
func (p Permission) Parse() (resource string, action Action) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], Action(parts[1])
}

// Matches reports whether this permission covers the requested one.
// "*:*" covers everything; "document:*" covers every document action.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionSuperAdmin || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	return res == reqRes && string(act) == Wildcard
}
