package repository

import (
	"errors"

	"bookkeeping-control-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// SeedDefaults inserts the default chart of accounts, leaving any
// customized rows untouched.
func (r *AccountRepository) SeedDefaults() error {
	accounts := models.DefaultChartOfAccounts()
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&accounts).Error
}

func (r *AccountRepository) List() ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Order("code ASC").Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) GetByCode(code string) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
