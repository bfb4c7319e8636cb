package workflow

import (
	"errors"
	"fmt"
	"time"

	"bookkeeping-control-backend/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	ErrInstanceNotFound = errors.New("approval instance not found")
	ErrInvalidQuorum    = errors.New("quorum must be at least 1")
)

// Document carries the attributes rule conditions can inspect.
type Document struct {
	Amount *float64
	Vendor string
}

type RuleStore interface {
	Create(rule *models.ApprovalRule) error
	GetByID(id uuid.UUID) (*models.ApprovalRule, error)
	ListForDoc(tenantID, docType string) ([]models.ApprovalRule, error)
	ListByTenant(tenantID string) ([]models.ApprovalRule, error)
}

type InstanceStore interface {
	Create(inst *models.ApprovalInstance) error
	GetByID(id uuid.UUID) (*models.ApprovalInstance, error)
	FindByDoc(tenantID, docType, docID string) (*models.ApprovalInstance, error)
	Save(inst *models.ApprovalInstance) error
	ListByTenant(tenantID string) ([]models.ApprovalInstance, error)
}

// Engine holds approval rules and per-document instances, gating risky
// postings behind a role-quorum state machine.
type Engine struct {
	rules     RuleStore
	instances InstanceStore
	log       *logrus.Logger
}

func NewEngine(rules RuleStore, instances InstanceStore, log *logrus.Logger) *Engine {
	return &Engine{rules: rules, instances: instances, log: log}
}

// CreateRule registers an immutable rule. The only validation is
// quorum >= 1.
func (e *Engine) CreateRule(tenantID, docType string, conditions models.RuleConditions, requiredRoles []string, quorum int) (*models.ApprovalRule, error) {
	if quorum < 1 {
		return nil, ErrInvalidQuorum
	}
	rule := &models.ApprovalRule{
		ID:            uuid.New(),
		TenantID:      tenantID,
		DocType:       docType,
		Conditions:    datatypes.NewJSONType(conditions),
		RequiredRoles: datatypes.NewJSONType(requiredRoles),
		Quorum:        quorum,
		CreatedAt:     time.Now(),
	}
	if err := e.rules.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (e *Engine) ListRules(tenantID string) ([]models.ApprovalRule, error) {
	return e.rules.ListByTenant(tenantID)
}

func (e *Engine) ListInstances(tenantID string) ([]models.ApprovalInstance, error) {
	return e.instances.ListByTenant(tenantID)
}

func (e *Engine) GetInstance(id uuid.UUID) (*models.ApprovalInstance, error) {
	inst, err := e.instances.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}
	return inst, nil
}

// MatchRuleForDoc scans the tenant's rules for the doc type in creation
// order and returns the first rule whose conditions all pass, or nil.
func (e *Engine) MatchRuleForDoc(tenantID, docType string, doc Document) (*models.ApprovalRule, error) {
	rules, err := e.rules.ListForDoc(tenantID, docType)
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if ruleMatches(&rules[i], doc) {
			return &rules[i], nil
		}
	}
	return nil, nil
}

// A missing document amount fails any amount bound.
func ruleMatches(rule *models.ApprovalRule, doc Document) bool {
	cond := rule.Conditions.Data()
	if cond.MinAmount != nil && (doc.Amount == nil || *doc.Amount < *cond.MinAmount) {
		return false
	}
	if cond.MaxAmount != nil && (doc.Amount == nil || *doc.Amount > *cond.MaxAmount) {
		return false
	}
	if cond.VendorIn != nil {
		found := false
		for _, v := range cond.VendorIn {
			if v == doc.Vendor {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// EnforcePostingAllowed is the sole gate callers must pass before
// posting a document. With no matching rule it allows. With a matching
// rule it returns the state of the existing instance, or creates a
// pending instance (exactly once per document) and blocks.
func (e *Engine) EnforcePostingAllowed(tenantID, docType, docID string, doc Document) (bool, error) {
	rule, err := e.MatchRuleForDoc(tenantID, docType, doc)
	if err != nil {
		return false, err
	}
	if rule == nil {
		return true, nil
	}

	inst, err := e.instances.FindByDoc(tenantID, docType, docID)
	if err != nil {
		return false, err
	}
	if inst != nil {
		return inst.State == models.InstanceApproved, nil
	}

	inst = &models.ApprovalInstance{
		ID:        uuid.New(),
		RuleID:    rule.ID,
		TenantID:  tenantID,
		DocType:   docType,
		DocID:     docID,
		State:     models.InstancePending,
		Approvals: datatypes.NewJSONType([]models.ApprovalDecision{}),
		CreatedAt: time.Now(),
	}
	if err := e.instances.Create(inst); err != nil {
		return false, err
	}

	e.log.WithFields(logrus.Fields{
		"module":   "workflow",
		"tenant":   tenantID,
		"doc_type": docType,
		"doc_id":   docID,
		"rule_id":  rule.ID,
	}).Info("posting blocked pending approval")
	return false, nil
}

// AddApproval appends a decision to an instance. Rejections are recorded
// for audit but never change state. The instance transitions to approved
// once approved decisions cover at least quorum distinct required roles;
// two approvers holding the same role count once.
func (e *Engine) AddApproval(instanceID uuid.UUID, userID, roleName, decision, comment string) (*models.ApprovalInstance, error) {
	inst, err := e.instances.GetByID(instanceID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, instanceID)
	}

	approvals := append(inst.Approvals.Data(), models.ApprovalDecision{
		UserID:    userID,
		RoleName:  roleName,
		Decision:  decision,
		Comment:   comment,
		Timestamp: time.Now(),
	})
	inst.Approvals = datatypes.NewJSONType(approvals)

	rule, err := e.rules.GetByID(inst.RuleID)
	if err != nil {
		return nil, err
	}
	if rule != nil && quorumMet(rule, approvals) {
		inst.State = models.InstanceApproved
	}

	if err := e.instances.Save(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func quorumMet(rule *models.ApprovalRule, approvals []models.ApprovalDecision) bool {
	required := make(map[string]bool)
	for _, role := range rule.RequiredRoles.Data() {
		required[role] = true
	}
	approvedRoles := make(map[string]bool)
	for _, a := range approvals {
		if a.Decision == models.DecisionApproved && required[a.RoleName] {
			approvedRoles[a.RoleName] = true
		}
	}
	return len(approvedRoles) >= rule.Quorum
}
