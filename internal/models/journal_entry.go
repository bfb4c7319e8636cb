package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalEntry is one balanced double-entry record: the amount is debited
// to DebitAccount and credited to CreditAccount in full. Entries are
// append-only; corrections are new offsetting entries.
type JournalEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID      string          `gorm:"index" json:"tenant_id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	DebitAccount  string          `gorm:"index" json:"debit_account"`
	CreditAccount string          `gorm:"index" json:"credit_account"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2)" json:"amount"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
}
