package models

import (
	"time"

	"gorm.io/gorm"
)

// Client statuses used by this surface. Status is free-form in the
// database; these are the two values the console acts on.
const (
	ClientStatusActive    = "active"    // eligible for document upload
	ClientStatusCompleted = "completed" // terminal
)

// Client is a client record. The console never creates or deletes
// clients; it only reads them and transitions their status.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Company   string         `gorm:"size:255" json:"company,omitempty"`
	Address   string         `gorm:"size:500" json:"address,omitempty"`
	Status    string         `gorm:"size:50;index" json:"status"`

	Contacts  []ContactPerson `gorm:"foreignKey:ClientID" json:"contacts,omitempty"`
	Documents []Document      `gorm:"foreignKey:ClientID" json:"documents,omitempty"`
}

// ContactPerson is a named individual attached to a client.
type ContactPerson struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	ClientID  uint           `gorm:"index;not null" json:"client_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Position  string         `gorm:"size:255" json:"position,omitempty"`
	Email     string         `gorm:"size:255" json:"email,omitempty"`
	Phone     string         `gorm:"size:50" json:"phone,omitempty"`
}

// ClientAssignment links an employee to a client they may act on.
// Existence of the row is the whole record.
type ClientAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ClientID   uint      `gorm:"index:idx_assignment_pair,unique;not null" json:"client_id"`
	EmployeeID uint      `gorm:"index:idx_assignment_pair,unique;not null" json:"employee_id"`
}

// Asset is equipment or property tracked against a client; read-only
// on this surface.
type Asset struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ClientID     uint      `gorm:"index;not null" json:"client_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Category     string    `gorm:"size:100" json:"category,omitempty"`
	SerialNumber string    `gorm:"size:100" json:"serial_number,omitempty"`
}
