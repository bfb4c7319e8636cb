package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RuleConditions gate which documents a rule applies to. A missing bound
// is not checked; an empty set of conditions matches every document.
type RuleConditions struct {
	MinAmount *float64 `json:"min_amount,omitempty"`
	MaxAmount *float64 `json:"max_amount,omitempty"`
	VendorIn  []string `json:"vendor_in,omitempty"`
}

// ApprovalRule is immutable once created. Rules are evaluated in creation
// order and the first matching rule wins.
type ApprovalRule struct {
	ID            uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID      string                             `gorm:"index:idx_rules_tenant_doc" json:"tenant_id"`
	DocType       string                             `gorm:"index:idx_rules_tenant_doc" json:"doc_type"`
	Conditions    datatypes.JSONType[RuleConditions] `json:"conditions"`
	RequiredRoles datatypes.JSONType[[]string]       `json:"required_roles"`
	Quorum        int                                `json:"quorum"`
	CreatedAt     time.Time                          `json:"created_at"`
}
