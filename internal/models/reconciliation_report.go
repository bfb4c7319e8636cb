package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MatchResult pairs one staged record with at most one ledger transaction.
// Reason lists the matched attributes: [amount date vendor] for a full
// match, [amount date] for an amount/date-only match, empty when unmatched.
type MatchResult struct {
	Staging StagedRecord       `json:"staging"`
	Match   *LedgerTransaction `json:"match"`
	Reason  []string           `json:"reason"`
}

// ReconciliationReport holds the latest reconciliation run for a tenant.
// Each run replaces the previous report wholesale.
type ReconciliationReport struct {
	ID             uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       string                            `gorm:"uniqueIndex" json:"tenant_id"`
	Matches        datatypes.JSONType[[]MatchResult] `json:"matches"`
	UnmatchedCount int                               `json:"unmatched_count"`
	RunAt          time.Time                         `json:"run_at"`
}
