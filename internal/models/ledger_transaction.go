package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerTransaction is already-recorded activity that staged records are
// matched against. Read-only to the reconciliation engine.
type LedgerTransaction struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  string     `gorm:"index" json:"tenant_id"`
	Date      *time.Time `json:"date"`
	Amount    *float64   `json:"amount"`
	Vendor    string     `json:"vendor"`
	Reference string     `json:"reference"`
	CreatedAt time.Time  `json:"created_at"`
}
