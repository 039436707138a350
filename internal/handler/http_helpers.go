package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gito/internal/db"
	"github.com/gito/internal/logging"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// currentUserID returns the id set by AuthRequired or OptionalAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString(logging.UserIDKey)
}

// dateQuery reads a YYYY-MM-DD query value, defaulting to today.
func (a *API) dateQuery(c *gin.Context, key string) string {
	if raw := strings.TrimSpace(c.Query(key)); raw != "" {
		return raw
	}
	return a.now().Format(db.DateLayout)
}
