package repository

import (
	"errors"

	"bookkeeping-control-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReconciliationReportRepository struct {
	db *gorm.DB
}

func NewReconciliationReportRepository(db *gorm.DB) *ReconciliationReportRepository {
	return &ReconciliationReportRepository{db: db}
}

// Save replaces the tenant's report wholesale; re-running reconciliation
// recomputes, it never merges.
func (r *ReconciliationReportRepository) Save(report *models.ReconciliationReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"matches", "unmatched_count", "run_at"}),
	}).Create(report).Error
}

func (r *ReconciliationReportRepository) Get(tenantID string) (*models.ReconciliationReport, error) {
	var report models.ReconciliationReport
	err := r.db.First(&report, "tenant_id = ?", tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
