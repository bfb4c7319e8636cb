package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// tenantID pulls the tenant from the X-Tenant-ID header. Auth proper is
// handled upstream; the backend only needs the tenant scope.
func tenantID(c *gin.Context) (string, bool) {
	tid := c.GetHeader("X-Tenant-ID")
	if tid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Tenant-ID header"})
		return "", false
	}
	return tid, true
}

// parseDate accepts ISO dates with or without a time component. An
// unparsable value comes back nil: the record is kept and the date
// simply never matches.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
