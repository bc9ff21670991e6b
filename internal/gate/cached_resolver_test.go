package gate_test

import (
	"context"
	"testing"
	"time"

	"clientdesk/internal/gate"
)

// countingResolver records how often the inner resolver is consulted.
type countingResolver struct {
	inner *gate.StaticResolver
	calls int
}

func (r *countingResolver) Resolve(ctx context.Context, employeeID uint) (gate.Role, error) {
	r.calls++
	return r.inner.Resolve(ctx, employeeID)
}

func TestCachedResolver_CachesWithinTTL(t *testing.T) {
	static := gate.NewStaticResolver()
	static.Set(1, gate.NewStaticRole("employee"))
	counting := &countingResolver{inner: static}

	cached := gate.NewCachedResolver(counting, time.Minute)

	for i := 0; i < 3; i++ {
		role, err := cached.Resolve(context.Background(), 1)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if role == nil || role.Name() != "employee" {
			t.Fatalf("unexpected role: %v", role)
		}
	}
	if counting.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", counting.calls)
	}
}

func TestCachedResolver_Invalidate(t *testing.T) {
	static := gate.NewStaticResolver()
	static.Set(1, gate.NewStaticRole("employee"))
	counting := &countingResolver{inner: static}

	cached := gate.NewCachedResolver(counting, time.Minute)
	if _, err := cached.Resolve(context.Background(), 1); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Role reassignment elsewhere; the cache must be refreshed on demand.
	static.Set(1, gate.NewStaticRole("finance.employee"))
	cached.Invalidate(1)

	role, err := cached.Resolve(context.Background(), 1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if role.Name() != "finance.employee" {
		t.Errorf("expected refreshed role, got %q", role.Name())
	}
	if counting.calls != 2 {
		t.Errorf("expected 2 inner calls, got %d", counting.calls)
	}
}
