package gate_test

import (
	"testing"

	"clientdesk/internal/gate"
)

func TestPermission_Build(t *testing.T) {
	if p := gate.NewPermission("document", gate.ActionDelete); p != "document:delete" {
		t.Errorf("expected 'document:delete', got %q", p)
	}
}

func TestPermission_Parse(t *testing.T) {
	res, act := gate.Permission("quotation:view_all").Parse()
	if res != "quotation" || act != "view_all" {
		t.Errorf("unexpected parse result: %q %q", res, act)
	}

	res, act = gate.Permission("malformed").Parse()
	if res != "" || act != "" {
		t.Errorf("malformed permission should parse to empty parts, got %q %q", res, act)
	}
}

func TestPermission_Matches(t *testing.T) {
	cases := []struct {
		held      gate.Permission
		requested gate.Permission
		want      bool
	}{
		{"contact:update", "contact:update", true},
		{"contact:update", "contact:delete", false},
		{"contact:update", "document:update", false},
		{"document:*", "document:delete", true},
		{"document:*", "contact:delete", false},
		{gate.PermissionSuperAdmin, "anything:at_all", true},
	}
	for _, c := range cases {
		if got := c.held.Matches(c.requested); got != c.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", c.held, c.requested, got, c.want)
		}
	}
}

func TestStaticRole_Wildcards(t *testing.T) {
	role := gate.NewStaticRole("head", gate.Permission("quotation:*"))
	if !role.HasPermission(gate.NewPermission("quotation", "view_all")) {
		t.Error("resource wildcard should cover any quotation action")
	}
	if role.HasPermission(gate.NewPermission("client", "complete")) {
		t.Error("resource wildcard must not leak to other resources")
	}
}
