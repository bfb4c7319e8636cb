package repository

import (
	"time"

	"bookkeeping-control-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StagedRecordRepository struct {
	db *gorm.DB
}

func NewStagedRecordRepository(db *gorm.DB) *StagedRecordRepository {
	return &StagedRecordRepository{db: db}
}

// BulkInsert stores ingested records. Insertion order is preserved via
// created_at/id ordering on read, which the first-fit matcher relies on.
func (r *StagedRecordRepository) BulkInsert(tenantID string, records []models.StagedRecord) ([]models.StagedRecord, error) {
	now := time.Now()
	for i := range records {
		records[i].ID = uuid.New()
		records[i].TenantID = tenantID
		records[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
	}
	if len(records) == 0 {
		return records, nil
	}
	if err := r.db.Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *StagedRecordRepository) ListByTenant(tenantID string) ([]models.StagedRecord, error) {
	var records []models.StagedRecord
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	return records, err
}

func (r *StagedRecordRepository) DeleteByTenant(tenantID string) error {
	return r.db.Where("tenant_id = ?", tenantID).Delete(&models.StagedRecord{}).Error
}
