package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"clientdesk/internal/gate"
	"clientdesk/internal/models"
	"clientdesk/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignRoleForm(employeeID uint, roleID string) *http.Request {
	form := url.Values{
		"employee_id": {strconv.Itoa(int(employeeID))},
		"role_id":     {roleID},
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/employees/assign-role", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAdminEmployeeList(t *testing.T) {
	conn := setupTestDB(t)
	authGate := policy.NewAuthGate(conn, time.Minute)
	h := NewAdminEmployeeHandler(conn, authGate, testLogger())
	createEmployee(t, conn, "emp@x", "employee")

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/admin/employees", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Employees []models.Employee `json:"employees"`
		Roles     []models.Role     `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Employees, 2, "seeded admin plus created employee")
	assert.Len(t, resp.Roles, 4)
}

func TestAdminAssignRoleInvalidatesCache(t *testing.T) {
	conn := setupTestDB(t)
	authGate := policy.NewAuthGate(conn, time.Hour)
	h := NewAdminEmployeeHandler(conn, authGate, testLogger())
	emp := createEmployee(t, conn, "emp@x", "employee")

	// Warm the cache with the old role.
	ctx := asEmployee(httptest.NewRequest(http.MethodGet, "/", nil), emp).Context()
	require.False(t, authGate.CanRole(ctx, gate.ActionDelete, "document"))

	var finance models.Role
	require.NoError(t, conn.Where("name = ?", "finance.employee").First(&finance).Error)

	w := httptest.NewRecorder()
	h.AssignRole(w, assignRoleForm(emp.ID, strconv.Itoa(int(finance.ID))))
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Employee
	require.NoError(t, conn.First(&reloaded, emp.ID).Error)
	require.NotNil(t, reloaded.RoleID)
	assert.Equal(t, finance.ID, *reloaded.RoleID)

	// The new capability is visible without waiting for the TTL.
	assert.True(t, authGate.CanRole(ctx, gate.ActionDelete, "document"))
}

func TestAdminAssignRoleClears(t *testing.T) {
	conn := setupTestDB(t)
	authGate := policy.NewAuthGate(conn, time.Minute)
	h := NewAdminEmployeeHandler(conn, authGate, testLogger())
	emp := createEmployee(t, conn, "emp@x", "employee")

	w := httptest.NewRecorder()
	h.AssignRole(w, assignRoleForm(emp.ID, ""))
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Employee
	require.NoError(t, conn.First(&reloaded, emp.ID).Error)
	assert.Nil(t, reloaded.RoleID)
}

func TestAdminAssignRoleUnknownEmployee(t *testing.T) {
	conn := setupTestDB(t)
	authGate := policy.NewAuthGate(conn, time.Minute)
	h := NewAdminEmployeeHandler(conn, authGate, testLogger())

	w := httptest.NewRecorder()
	h.AssignRole(w, assignRoleForm(999, "1"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
