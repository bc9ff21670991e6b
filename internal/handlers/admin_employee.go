package handlers

import (
	"net/http"
	"strconv"

	"clientdesk/internal/httpx"
	"clientdesk/internal/models"
	"clientdesk/internal/policy"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminEmployeeHandler lets admins inspect employees and reassign
// their roles. Accounts are provisioned here; there is no self-signup.
type AdminEmployeeHandler struct {
	db   *gorm.DB
	gate *policy.AuthGate
	log  *logrus.Logger
}

func NewAdminEmployeeHandler(db *gorm.DB, gate *policy.AuthGate, log *logrus.Logger) *AdminEmployeeHandler {
	return &AdminEmployeeHandler{db: db, gate: gate, log: log}
}

// List returns all employees with their roles, plus the assignable
// roles. JSON only; the page is an admin tool, not part of the console.
func (h *AdminEmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	var employees []models.Employee
	if err := h.db.Preload("Role").Order("email").Find(&employees).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}

	var roles []models.Role
	h.db.Order("name").Find(&roles)

	httpx.JSON(w, http.StatusOK, map[string]any{
		"employees": employees,
		"roles":     roles,
	})
}

// AssignRole sets or clears an employee's role. The cached role is
// invalidated so the change applies to the employee's next request.
func (h *AdminEmployeeHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}

	employeeID, err := strconv.Atoi(r.FormValue("employee_id"))
	if err != nil || employeeID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_employee_id", nil)
		return
	}
	var employee models.Employee
	if err := h.db.First(&employee, employeeID).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "employee_not_found", nil)
		return
	}

	var roleID *uint
	if v := r.FormValue("role_id"); v != "" && v != "0" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_role_id", nil)
			return
		}
		var role models.Role
		if err := h.db.First(&role, id).Error; err != nil {
			httpx.JSONError(w, http.StatusNotFound, "role_not_found", nil)
			return
		}
		roleID = &role.ID
	}

	if err := h.db.Model(&employee).Update("role_id", roleID).Error; err != nil {
		h.log.WithError(err).WithField("employee_id", employeeID).Error("assign role")
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	h.gate.InvalidateEmployee(uint(employeeID))

	httpx.JSON(w, http.StatusOK, map[string]any{
		"employee_id": employeeID,
		"role_id":     roleID,
	})
}
