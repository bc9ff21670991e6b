package policy

import (
	"context"

	"clientdesk/internal/auth"
	"clientdesk/internal/models"

	"gorm.io/gorm"
)

// AssignmentChecker answers "may this employee act on this client?".
// Roles holding client:act_on_any (admin, finance.employee) are assigned
// to every client without a lookup; everyone else needs an existing
// ClientAssignment row.
type AssignmentChecker struct {
	db   *gorm.DB
	gate *AuthGate
}

// NewAssignmentChecker creates a checker over the given gate and database.
func NewAssignmentChecker(db *gorm.DB, gate *AuthGate) *AssignmentChecker {
	return &AssignmentChecker{db: db, gate: gate}
}

// IsAssigned resolves the assignment flag for the current employee and
// client. Lookup errors count as "not assigned".
func (c *AssignmentChecker) IsAssigned(ctx context.Context, clientID uint) bool {
	employeeID, ok := auth.EmployeeIDFromContext(ctx)
	if !ok {
		return false
	}
	if c.gate.CanRole(ctx, ActionActOnAny, "client") {
		return true
	}
	var count int64
	err := c.db.WithContext(ctx).Model(&models.ClientAssignment{}).
		Where("client_id = ? AND employee_id = ?", clientID, employeeID).
		Count(&count).Error
	return err == nil && count > 0
}
