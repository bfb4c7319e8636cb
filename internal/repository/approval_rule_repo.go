package repository

import (
	"errors"

	"bookkeeping-control-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalRuleRepository struct {
	db *gorm.DB
}

func NewApprovalRuleRepository(db *gorm.DB) *ApprovalRuleRepository {
	return &ApprovalRuleRepository{db: db}
}

func (r *ApprovalRuleRepository) Create(rule *models.ApprovalRule) error {
	return r.db.Create(rule).Error
}

func (r *ApprovalRuleRepository) GetByID(id uuid.UUID) (*models.ApprovalRule, error) {
	var rule models.ApprovalRule
	err := r.db.First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListForDoc returns the tenant's rules for a doc type in creation order.
// Rule order is the tie-break policy: first match wins.
func (r *ApprovalRuleRepository) ListForDoc(tenantID, docType string) ([]models.ApprovalRule, error) {
	var rules []models.ApprovalRule
	err := r.db.
		Where("tenant_id = ? AND doc_type = ?", tenantID, docType).
		Order("created_at ASC, id ASC").
		Find(&rules).Error
	return rules, err
}

func (r *ApprovalRuleRepository) ListByTenant(tenantID string) ([]models.ApprovalRule, error) {
	var rules []models.ApprovalRule
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC, id ASC").
		Find(&rules).Error
	return rules, err
}
