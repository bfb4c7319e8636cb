package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StagedRecord is an ingested-but-not-yet-reconciled financial record.
// Date and Amount are pointers: unparsable values arrive as nil and simply
// fail the corresponding tolerance check during matching.
type StagedRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    string         `gorm:"index" json:"tenant_id"`
	Date        *time.Time     `json:"date"`
	Amount      *float64       `json:"amount"`
	Vendor      string         `json:"vendor"`
	Description string         `json:"description"`
	Reference   string         `json:"reference"`
	Currency    string         `json:"currency"`
	Extra       datatypes.JSON `json:"extra,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`

	// VendorNormalized is attached during matching only; it is never
	// written back to the staging table.
	VendorNormalized string `gorm:"-" json:"vendor_normalized,omitempty"`
}
