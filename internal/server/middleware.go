package server

import (
	"fmt"
	"net/http"
	"time"

	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-Id"

const requestIDKey = "request_id"

// RequestIDMiddleware reuses the caller's request id when it is a UUID and mints one otherwise
func RequestIDMiddleware(c *gin.Context) {
	id := utils.RequestID(c.GetHeader(HeaderRequestID))
	c.Set(requestIDKey, id)
	c.Header(HeaderRequestID, id)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString(requestIDKey),
	})
}

// RecoveryHandler answers a handler panic with the failure envelope
func RecoveryHandler(c *gin.Context, recovered any) {
	utils.Error("panic while handling request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString(requestIDKey),
		"panic":      fmt.Sprint(recovered),
	})
	utils.AbortWithError(c, http.StatusInternalServerError, "Internal server error")
}
