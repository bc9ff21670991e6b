package policy

import (
	"context"
	"errors"

	"clientdesk/internal/gate"
	"clientdesk/internal/models"

	"gorm.io/gorm"
)

// DBRoleResolver fetches employee roles from the database.
type DBRoleResolver struct {
	DB *gorm.DB
}

// NewDBRoleResolver creates a database-backed role resolver.
func NewDBRoleResolver(db *gorm.DB) *DBRoleResolver {
	return &DBRoleResolver{DB: db}
}

// Resolve loads the employee's role with its permissions. A missing
// employee or an employee without a role resolves to nil.
func (r *DBRoleResolver) Resolve(ctx context.Context, employeeID uint) (gate.Role, error) {
	var employee models.Employee
	err := r.DB.WithContext(ctx).Preload("Role.Permissions").First(&employee, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if employee.Role == nil {
		return nil, nil
	}
	return &dbRole{role: employee.Role}, nil
}

// dbRole adapts models.Role to the gate.Role interface.
type dbRole struct {
	role *models.Role
}

func (a *dbRole) Name() string { return a.role.Name }

func (a *dbRole) HasPermission(requested gate.Permission) bool {
	for _, p := range a.role.Permissions {
		if gate.NewPermission(p.ResourceType, gate.Action(p.Action)).Matches(requested) {
			return true
		}
	}
	return false
}
