package repository

import (
	"bookkeeping-control-backend/internal/models"

	"gorm.io/gorm"
)

type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Append inserts one entry. The journal has no update or delete path;
// corrections are new offsetting entries.
func (r *JournalRepository) Append(entry *models.JournalEntry) error {
	return r.db.Create(entry).Error
}

func (r *JournalRepository) ListByTenant(tenantID string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
