package repository

import (
	"time"

	"bookkeeping-control-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerTransactionRepository struct {
	db *gorm.DB
}

func NewLedgerTransactionRepository(db *gorm.DB) *LedgerTransactionRepository {
	return &LedgerTransactionRepository{db: db}
}

func (r *LedgerTransactionRepository) BulkInsert(tenantID string, txns []models.LedgerTransaction) ([]models.LedgerTransaction, error) {
	now := time.Now()
	for i := range txns {
		txns[i].ID = uuid.New()
		txns[i].TenantID = tenantID
		txns[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
	}
	if len(txns) == 0 {
		return txns, nil
	}
	if err := r.db.Create(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *LedgerTransactionRepository) ListByTenant(tenantID string) ([]models.LedgerTransaction, error) {
	var txns []models.LedgerTransaction
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC, id ASC").
		Find(&txns).Error
	return txns, err
}
