package auth

import "github.com/gin-gonic/gin"

// GetStaffID returns the authenticated staff account's ID or empty string.
func GetStaffID(c *gin.Context) string {
	if v, ok := c.Get("staffID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetStaffEmail returns the authenticated staff account's email or empty string.
func GetStaffEmail(c *gin.Context) string {
	if v, ok := c.Get("staffEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
