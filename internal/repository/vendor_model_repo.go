package repository

import (
	"errors"
	"time"

	"bookkeeping-control-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VendorModelRepository struct {
	db *gorm.DB
}

func NewVendorModelRepository(db *gorm.DB) *VendorModelRepository {
	return &VendorModelRepository{db: db}
}

// Get returns the tenant's vendor model, or (nil, nil) when the tenant
// has never trained one.
func (r *VendorModelRepository) Get(tenantID string) (*models.VendorModel, error) {
	var m models.VendorModel
	err := r.db.First(&m, "tenant_id = ?", tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Save upserts the canonical name list in a single row write, so a crash
// mid-save can never leave a partial list/index pair behind.
func (r *VendorModelRepository) Save(tenantID string, names []string) (*models.VendorModel, error) {
	m := models.VendorModel{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Names:     datatypes.NewJSONType(names),
		TrainedAt: time.Now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"names", "trained_at"}),
	}).Create(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
