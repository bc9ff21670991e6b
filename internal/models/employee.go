package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee is an authenticated staff member of the console.
type Employee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string         `gorm:"size:255" json:"name,omitempty"`
	Password  string         `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed
	// RoleID links the employee to an authorization role.
	// A nil value means no role assigned (effectively no access).
	RoleID *uint `gorm:"index" json:"role_id,omitempty"`
	Role   *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// RoleName returns the assigned role's name, or "" when none is set.
func (e Employee) RoleName() string {
	if e.Role == nil {
		return ""
	}
	return e.Role.Name
}
