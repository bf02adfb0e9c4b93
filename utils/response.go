package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a success envelope with the given top-level fields
func JSONResponse(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// JSONError sends a failure envelope carrying a caller-facing message
func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// AbortWithError sends a failure envelope and stops the handler chain
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
