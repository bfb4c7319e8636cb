package handler

import (
	"errors"
	"io"
	"net/http"

	"bookkeeping-control-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
)

type ReconciliationHandler struct {
	engine *reconciliation.Engine
}

func NewReconciliationHandler(engine *reconciliation.Engine) *ReconciliationHandler {
	return &ReconciliationHandler{engine: engine}
}

// Run recomputes the tenant's full reconciliation report from current
// staging and ledger state.
func (h *ReconciliationHandler) Run(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		DateToleranceDays *int     `json:"date_tolerance_days"`
		AmountTolerance   *float64 `json:"amount_tolerance"`
		FuzzyThreshold    *int     `json:"fuzzy_threshold"`
	}
	// Body is optional; an empty request runs with defaults.
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	opts := reconciliation.DefaultOptions()
	if payload.DateToleranceDays != nil {
		opts.DateToleranceDays = *payload.DateToleranceDays
	}
	if payload.AmountTolerance != nil {
		opts.AmountTolerance = *payload.AmountTolerance
	}
	if payload.FuzzyThreshold != nil {
		opts.FuzzyThreshold = *payload.FuzzyThreshold
	}

	report, err := h.engine.Run(tid, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReconciliationHandler) GetReport(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	report, err := h.engine.LatestReport(tid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reconciliation report for tenant"})
		return
	}
	c.JSON(http.StatusOK, report)
}
