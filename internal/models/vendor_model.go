package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VendorModel persists a tenant's canonical vendor names. The similarity
// index is rebuilt deterministically from Names on load, so the list and
// the index can never go stale relative to each other.
type VendorModel struct {
	ID        uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  string                       `gorm:"uniqueIndex" json:"tenant_id"`
	Names     datatypes.JSONType[[]string] `json:"names"`
	TrainedAt time.Time                    `json:"trained_at"`
}
