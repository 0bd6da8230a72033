package utils

import (
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
)

// JSONError writes the error body shape the frontend expects: a single
// human-readable message.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// ValidEmail reports whether s parses as a bare address (no display name).
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
