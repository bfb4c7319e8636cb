package handler

import (
	"net/http"

	"bookkeeping-control-backend/internal/models"
	"bookkeeping-control-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// IngestionHandler is the storage boundary for the two reconciliation
// inputs: staged records and ledger transactions.
type IngestionHandler struct {
	staging *repository.StagedRecordRepository
	ledger  *repository.LedgerTransactionRepository
}

func NewIngestionHandler(staging *repository.StagedRecordRepository, ledger *repository.LedgerTransactionRepository) *IngestionHandler {
	return &IngestionHandler{staging: staging, ledger: ledger}
}

type recordPayload struct {
	Date        string   `json:"date"`
	Amount      *float64 `json:"amount"`
	Vendor      string   `json:"vendor"`
	Description string   `json:"description"`
	Reference   string   `json:"reference"`
	Currency    string   `json:"currency"`
}

func (h *IngestionHandler) UploadStaging(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		Records []recordPayload `json:"records" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	records := make([]models.StagedRecord, 0, len(payload.Records))
	for _, r := range payload.Records {
		records = append(records, models.StagedRecord{
			Date:        parseDate(r.Date),
			Amount:      r.Amount,
			Vendor:      r.Vendor,
			Description: r.Description,
			Reference:   r.Reference,
			Currency:    r.Currency,
		})
	}

	created, err := h.staging.BulkInsert(tid, records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inserted": len(created), "records": created})
}

func (h *IngestionHandler) UploadTransactions(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		Transactions []recordPayload `json:"transactions" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	txns := make([]models.LedgerTransaction, 0, len(payload.Transactions))
	for _, r := range payload.Transactions {
		txns = append(txns, models.LedgerTransaction{
			Date:      parseDate(r.Date),
			Amount:    r.Amount,
			Vendor:    r.Vendor,
			Reference: r.Reference,
		})
	}

	created, err := h.ledger.BulkInsert(tid, txns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inserted": len(created), "transactions": created})
}

// ClearStaging drops the tenant's staging area, typically after the
// matched records have been posted to the journal.
func (h *IngestionHandler) ClearStaging(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.staging.DeleteByTenant(tid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
