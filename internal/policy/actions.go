// Package policy wires the generic gate to the console's database:
// role resolution, the client-assignment rule and quotation scoping.
package policy

import "clientdesk/internal/gate"

// Domain-specific actions beyond the common CRUD set. The strings must
// match what db.Seed puts in the permission catalog.
const (
	// ActionComplete marks a client as completed.
	ActionComplete gate.Action = "complete"
	// ActionActOnAny exempts a role from the client-assignment lookup.
	ActionActOnAny gate.Action = "act_on_any"
	// ActionViewAll lifts the approved-only quotation filter.
	ActionViewAll gate.Action = "view_all"
)
