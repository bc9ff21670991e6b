package policy_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"clientdesk/internal/auth"
	"clientdesk/internal/db"
	"clientdesk/internal/models"
	"clientdesk/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	require.NoError(t, db.Seed(conn))
	return conn
}

func createEmployee(t *testing.T, conn *gorm.DB, email, roleName string) models.Employee {
	t.Helper()
	var role models.Role
	require.NoError(t, conn.Where("name = ?", roleName).First(&role).Error)
	e := models.Employee{Email: email, Name: email, Password: "x", RoleID: &role.ID}
	require.NoError(t, conn.Create(&e).Error)
	return e
}

func ctxFor(e models.Employee) context.Context {
	return auth.WithEmployeeID(context.Background(), e.ID)
}

func TestAssignment_PrivilegedRolesSkipLookup(t *testing.T) {
	conn := setupTestDB(t)
	gate := policy.NewAuthGate(conn, time.Minute)
	checker := policy.NewAssignmentChecker(conn, gate)

	client := models.Client{Name: "Acme", Status: models.ClientStatusActive}
	require.NoError(t, conn.Create(&client).Error)

	admin := createEmployee(t, conn, "admin2@x", "admin")
	finance := createEmployee(t, conn, "fin@x", "finance.employee")

	// No assignment rows exist, yet both are treated as assigned.
	assert.True(t, checker.IsAssigned(ctxFor(admin), client.ID))
	assert.True(t, checker.IsAssigned(ctxFor(finance), client.ID))
}

func TestAssignment_OtherRolesNeedRow(t *testing.T) {
	conn := setupTestDB(t)
	gate := policy.NewAuthGate(conn, time.Minute)
	checker := policy.NewAssignmentChecker(conn, gate)

	client := models.Client{Name: "Acme", Status: models.ClientStatusActive}
	require.NoError(t, conn.Create(&client).Error)

	emp := createEmployee(t, conn, "emp@x", "employee")
	head := createEmployee(t, conn, "head@x", "head")

	assert.False(t, checker.IsAssigned(ctxFor(emp), client.ID))
	assert.False(t, checker.IsAssigned(ctxFor(head), client.ID))

	require.NoError(t, conn.Create(&models.ClientAssignment{ClientID: client.ID, EmployeeID: emp.ID}).Error)
	assert.True(t, checker.IsAssigned(ctxFor(emp), client.ID))
	assert.False(t, checker.IsAssigned(ctxFor(head), client.ID), "assignment is per employee")
}

func TestQuotationScope(t *testing.T) {
	conn := setupTestDB(t)
	gate := policy.NewAuthGate(conn, time.Minute)

	client := models.Client{Name: "Acme", Status: models.ClientStatusActive}
	require.NoError(t, conn.Create(&client).Error)
	require.NoError(t, conn.Create(&models.Quotation{ClientID: client.ID, Title: "Approved", Status: models.QuotationStatusApproved}).Error)
	require.NoError(t, conn.Create(&models.Quotation{ClientID: client.ID, Title: "Draft", Status: "draft"}).Error)

	admin := createEmployee(t, conn, "admin3@x", "admin")
	head := createEmployee(t, conn, "head2@x", "head")
	emp := createEmployee(t, conn, "emp2@x", "employee")
	finance := createEmployee(t, conn, "fin2@x", "finance.employee")

	countFor := func(e models.Employee) int64 {
		var n int64
		q := gate.ScopeQuotations(ctxFor(e), conn.Model(&models.Quotation{}))
		require.NoError(t, q.Count(&n).Error)
		return n
	}

	assert.Equal(t, int64(2), countFor(admin))
	assert.Equal(t, int64(2), countFor(head))
	assert.Equal(t, int64(1), countFor(emp))
	assert.Equal(t, int64(1), countFor(finance))
}

func TestRoleVisibilityCapabilities(t *testing.T) {
	conn := setupTestDB(t)
	gate := policy.NewAuthGate(conn, time.Minute)

	finance := createEmployee(t, conn, "fin3@x", "finance.employee")
	emp := createEmployee(t, conn, "emp3@x", "employee")

	// finance.employee sees the Completed action and contact Edit controls.
	assert.True(t, gate.CanRole(ctxFor(finance), policy.ActionComplete, "client"))
	assert.True(t, gate.CanRole(ctxFor(finance), "update", "contact"))
	assert.True(t, gate.CanRole(ctxFor(finance), "delete", "document"))

	// A plain employee sees none of them.
	assert.False(t, gate.CanRole(ctxFor(emp), policy.ActionComplete, "client"))
	assert.False(t, gate.CanRole(ctxFor(emp), "update", "contact"))
	assert.False(t, gate.CanRole(ctxFor(emp), "delete", "document"))
}

func TestRoleName(t *testing.T) {
	conn := setupTestDB(t)
	gate := policy.NewAuthGate(conn, time.Minute)

	finance := createEmployee(t, conn, "fin4@x", "finance.employee")
	assert.Equal(t, "finance.employee", gate.RoleName(ctxFor(finance)))
	assert.Empty(t, gate.RoleName(context.Background()))
}
