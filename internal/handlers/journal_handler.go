package handler

import (
	"net/http"

	"bookkeeping-control-backend/internal/services/ledger"
	"bookkeeping-control-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type JournalHandler struct {
	ledger *ledger.Service
	recon  *reconciliation.Engine
}

func NewJournalHandler(ledgerSvc *ledger.Service, recon *reconciliation.Engine) *JournalHandler {
	return &JournalHandler{ledger: ledgerSvc, recon: recon}
}

func (h *JournalHandler) PostEntry(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		Date          string          `json:"date" binding:"required"`
		Description   string          `json:"description"`
		DebitAccount  string          `json:"debit_account" binding:"required"`
		CreditAccount string          `json:"credit_account" binding:"required"`
		Amount        decimal.Decimal `json:"amount"`
		Reference     string          `json:"reference"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be non-negative"})
		return
	}
	date := parseDate(payload.Date)
	if date == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	entry, err := h.ledger.Post(tid, *date, payload.Description, payload.DebitAccount, payload.CreditAccount, payload.Amount, payload.Reference)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// PostFromReconciliation posts the tenant's latest reconciliation report:
// one expense/cash entry per matched record, unmatched records skipped.
func (h *JournalHandler) PostFromReconciliation(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	report, err := h.recon.LatestReport(tid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reconciliation report for tenant"})
		return
	}

	posted, err := h.ledger.PostFromReconciliation(tid, report.Matches.Data())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"posted": len(posted), "entries": posted})
}

func (h *JournalHandler) ListEntries(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	entries, err := h.ledger.Journal(tid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *JournalHandler) TrialBalance(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	tb, err := h.ledger.TrialBalance(tid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trial_balance": tb})
}

func (h *JournalHandler) BalanceSheet(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	bs, err := h.ledger.BalanceSheet(tid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (h *JournalHandler) ProfitAndLoss(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	pl, err := h.ledger.ProfitAndLoss(tid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pl)
}

func (h *JournalHandler) ChartOfAccounts(c *gin.Context) {
	accounts, err := h.ledger.ChartOfAccounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}
