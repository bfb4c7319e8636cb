package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	InstancePending  = "pending"
	InstanceApproved = "approved"

	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// ApprovalDecision is one recorded decision. Rejections are kept for
// audit but never change instance state.
type ApprovalDecision struct {
	UserID    string    `json:"user_id"`
	RoleName  string    `json:"role_name"`
	Decision  string    `json:"decision"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"ts"`
}

// ApprovalInstance tracks the approval state of one gated document.
// State only ever moves pending -> approved. Exactly one instance exists
// per (tenant, doc_type, doc_id).
type ApprovalInstance struct {
	ID        uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	RuleID    uuid.UUID                              `gorm:"type:uuid;index" json:"rule_id"`
	TenantID  string                                 `gorm:"uniqueIndex:idx_instances_doc" json:"tenant_id"`
	DocType   string                                 `gorm:"uniqueIndex:idx_instances_doc" json:"doc_type"`
	DocID     string                                 `gorm:"uniqueIndex:idx_instances_doc" json:"doc_id"`
	State     string                                 `gorm:"index" json:"state"`
	Approvals datatypes.JSONType[[]ApprovalDecision] `json:"approvals"`
	CreatedAt time.Time                              `json:"created_at"`
}
