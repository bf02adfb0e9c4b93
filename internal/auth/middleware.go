package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	model "auction-marketplace/internal/models"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// Identity headers set by the gateway after it has authenticated the user
const (
	HeaderUserID        = "X-User-Id"
	HeaderUserRole      = "X-User-Role"
	HeaderGatewaySecret = "X-Gateway-Secret"
)

// MsgUnauthorized is returned when no caller can be resolved
const MsgUnauthorized = "Unauthorized"

const callerKey = "marketplace.caller"

// RequireAuth resolves the caller from gateway headers and rejects the request with
// 401 when there is none. A non-empty gatewaySecret must match X-Gateway-Secret.
func RequireAuth(gatewaySecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gatewaySecret != "" {
			presented := c.GetHeader(HeaderGatewaySecret)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(gatewaySecret)) != 1 {
				utils.Warn("RequireAuth: gateway secret mismatch", map[string]any{"path": c.Request.URL.Path})
				utils.AbortWithError(c, http.StatusUnauthorized, MsgUnauthorized)
				return
			}
		}

		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			utils.Warn("RequireAuth: missing caller identity", map[string]any{"path": c.Request.URL.Path})
			utils.AbortWithError(c, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		c.Set(callerKey, model.Caller{
			ID:   userID,
			Role: model.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole)))),
		})
		c.Next()
	}
}

// CallerFromContext returns the caller stored by RequireAuth
func CallerFromContext(c *gin.Context) (model.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return model.Caller{}, false
	}
	caller, ok := v.(model.Caller)
	return caller, ok
}
