package models

import (
	"time"

	"gorm.io/gorm"
)

// Document types accepted by the upload forms.
const (
	DocumentTypeQuotation = "quotation"
	DocumentTypeContract  = "contract"
	DocumentTypeInvoice   = "invoice"
	DocumentTypeProposal  = "proposal"
	DocumentTypeReport    = "report"
	DocumentTypeOther     = "other"
)

// DocumentTypes lists the accepted types in display order.
var DocumentTypes = []string{
	DocumentTypeQuotation,
	DocumentTypeContract,
	DocumentTypeInvoice,
	DocumentTypeProposal,
	DocumentTypeReport,
	DocumentTypeOther,
}

// ValidDocumentType reports whether t is one of the accepted types.
func ValidDocumentType(t string) bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Document is an uploaded file's metadata row. The file itself lives in
// object storage under FilePath; FileURL is the retrievable address.
// Documents are created and deleted, never updated.
type Document struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	ClientID     uint           `gorm:"index;not null" json:"client_id"`
	EmployeeID   uint           `gorm:"index;not null" json:"employee_id"`
	DocumentType string         `gorm:"size:50;not null" json:"document_type"`
	Description  string         `gorm:"size:1000" json:"description,omitempty"`
	FileName     string         `gorm:"size:255;not null" json:"file_name"`
	FileURL      string         `gorm:"size:1000;not null" json:"file_url"`
	FilePath     string         `gorm:"size:1000;not null" json:"file_path"`
	FileType     string         `gorm:"size:100" json:"file_type,omitempty"`
	FileSize     int64          `json:"file_size"`

	// Uploader, preloaded for the denormalized display name.
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// UploaderName returns the uploading employee's display name when the
// association is loaded.
func (d Document) UploaderName() string {
	if d.Employee == nil {
		return ""
	}
	return d.Employee.Name
}

// Quotation statuses acted on by this surface.
const QuotationStatusApproved = "approved"

// Quotation is a priced offer for a client. Non-privileged roles only
// ever see approved quotations; the scoping happens at query level.
type Quotation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	ClientID  uint           `gorm:"index;not null" json:"client_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Amount    float64        `json:"amount"`
	Status    string         `gorm:"size:50;index" json:"status"`

	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}
