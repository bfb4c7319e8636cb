package handler

import (
	"net/http"

	"bookkeeping-control-backend/internal/services/vendors"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	vendors *vendors.Service
}

func NewVendorHandler(s *vendors.Service) *VendorHandler {
	return &VendorHandler{vendors: s}
}

// Retrain replaces the tenant's vendor master list and rebuilds the
// similarity index. The vendor-master collaborator calls this after any
// change to the list.
func (h *VendorHandler) Retrain(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		Names []string `json:"names" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	trained, err := h.vendors.Retrain(tid, payload.Names)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if trained == 0 {
		c.JSON(http.StatusOK, gin.H{"trained": 0, "message": "too few distinct names, index unchanged"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trained": trained})
}

func (h *VendorHandler) Normalize(c *gin.Context) {
	tid, ok := tenantID(c)
	if !ok {
		return
	}

	var payload struct {
		Name           string `json:"name" binding:"required"`
		FuzzyThreshold *int   `json:"fuzzy_threshold"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	threshold := vendors.DefaultFuzzyThreshold
	if payload.FuzzyThreshold != nil {
		threshold = *payload.FuzzyThreshold
	}
	c.JSON(http.StatusOK, h.vendors.Normalize(tid, payload.Name, threshold))
}
