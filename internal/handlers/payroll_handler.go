package handler

import (
	"net/http"

	"bookkeeping-control-backend/internal/services/payroll"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	payroll *payroll.Service
}

func NewPayrollHandler(s *payroll.Service) *PayrollHandler {
	return &PayrollHandler{payroll: s}
}

// Run computes a payroll run and, unless dry_run is set, posts it gated
// through the approval workflow.
func (h *PayrollHandler) Run(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		RunID     string             `json:"run_id" binding:"required"`
		Employees []payroll.Employee `json:"employees" binding:"required"`
		DryRun    bool               `json:"dry_run"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.DryRun {
		c.JSON(http.StatusOK, gin.H{
			"run_id": payload.RunID,
			"slips":  h.payroll.RunPayroll(payload.Employees),
		})
		return
	}

	result, err := h.payroll.PostPayroll(tid, payload.RunID, payload.Employees)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.Blocked {
		c.JSON(http.StatusAccepted, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}
