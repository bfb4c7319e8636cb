package handler

import (
	"errors"
	"net/http"

	"bookkeeping-control-backend/internal/models"
	"bookkeeping-control-backend/internal/services/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkflowHandler struct {
	engine *workflow.Engine
}

func NewWorkflowHandler(engine *workflow.Engine) *WorkflowHandler {
	return &WorkflowHandler{engine: engine}
}

func (h *WorkflowHandler) CreateRule(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		DocType       string                `json:"doc_type" binding:"required"`
		Conditions    models.RuleConditions `json:"conditions"`
		RequiredRoles []string              `json:"required_roles" binding:"required"`
		Quorum        int                   `json:"quorum" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	rule, err := h.engine.CreateRule(tid, payload.DocType, payload.Conditions, payload.RequiredRoles, payload.Quorum)
	if errors.Is(err, workflow.ErrInvalidQuorum) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h *WorkflowHandler) ListRules(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	rules, err := h.engine.ListRules(tid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (h *WorkflowHandler) ListInstances(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}
	instances, err := h.engine.ListInstances(tid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"instances": instances})
}

// CheckPosting exposes EnforcePostingAllowed: callers must consult it
// before posting a gated document and re-check after each approval.
func (h *WorkflowHandler) CheckPosting(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		DocType string   `json:"doc_type" binding:"required"`
		DocID   string   `json:"doc_id" binding:"required"`
		Amount  *float64 `json:"amount"`
		Vendor  string   `json:"vendor"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	allowed, err := h.engine.EnforcePostingAllowed(tid, payload.DocType, payload.DocID, workflow.Document{
		Amount: payload.Amount,
		Vendor: payload.Vendor,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": allowed})
}

func (h *WorkflowHandler) AddApproval(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instance ID"})
		return
	}

	var payload struct {
		UserID   string `json:"user_id" binding:"required"`
		RoleName string `json:"role_name" binding:"required"`
		Decision string `json:"decision" binding:"required,oneof=approved rejected"`
		Comment  string `json:"comment"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	inst, err := h.engine.AddApproval(id, payload.UserID, payload.RoleName, payload.Decision, payload.Comment)
	if errors.Is(err, workflow.ErrInstanceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inst)
}
