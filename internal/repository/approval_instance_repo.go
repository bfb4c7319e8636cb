package repository

import (
	"errors"

	"bookkeeping-control-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalInstanceRepository struct {
	db *gorm.DB
}

func NewApprovalInstanceRepository(db *gorm.DB) *ApprovalInstanceRepository {
	return &ApprovalInstanceRepository{db: db}
}

func (r *ApprovalInstanceRepository) Create(inst *models.ApprovalInstance) error {
	return r.db.Create(inst).Error
}

func (r *ApprovalInstanceRepository) GetByID(id uuid.UUID) (*models.ApprovalInstance, error) {
	var inst models.ApprovalInstance
	err := r.db.First(&inst, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// FindByDoc looks up the single instance for a gated document, or
// (nil, nil) when none exists yet.
func (r *ApprovalInstanceRepository) FindByDoc(tenantID, docType, docID string) (*models.ApprovalInstance, error) {
	var inst models.ApprovalInstance
	err := r.db.First(&inst, "tenant_id = ? AND doc_type = ? AND doc_id = ?", tenantID, docType, docID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *ApprovalInstanceRepository) Save(inst *models.ApprovalInstance) error {
	return r.db.Save(inst).Error
}

func (r *ApprovalInstanceRepository) ListByTenant(tenantID string) ([]models.ApprovalInstance, error) {
	var insts []models.ApprovalInstance
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC, id ASC").
		Find(&insts).Error
	return insts, err
}
