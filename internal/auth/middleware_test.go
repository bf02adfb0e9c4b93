package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	model "auction-marketplace/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireAuth(secret), func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, caller)
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		headers    map[string]string
		wantStatus int
		wantCaller model.Caller
	}{
		{
			name:       "seller",
			headers:    map[string]string{HeaderUserID: "u1", HeaderUserRole: "seller"},
			wantStatus: http.StatusOK,
			wantCaller: model.Caller{ID: "u1", Role: model.RoleSeller},
		},
		{
			name:       "role_normalised",
			headers:    map[string]string{HeaderUserID: " u1 ", HeaderUserRole: " Admin "},
			wantStatus: http.StatusOK,
			wantCaller: model.Caller{ID: "u1", Role: model.RoleAdmin},
		},
		{
			name:       "no_role",
			headers:    map[string]string{HeaderUserID: "u1"},
			wantStatus: http.StatusOK,
			wantCaller: model.Caller{ID: "u1"},
		},
		{name: "missing_user", headers: map[string]string{HeaderUserRole: "admin"}, wantStatus: http.StatusUnauthorized},
		{
			name:       "secret_ok",
			secret:     "s3cret",
			headers:    map[string]string{HeaderUserID: "u1", HeaderUserRole: "buyer", HeaderGatewaySecret: "s3cret"},
			wantStatus: http.StatusOK,
			wantCaller: model.Caller{ID: "u1", Role: model.RoleBuyer},
		},
		{
			name:       "secret_wrong",
			secret:     "s3cret",
			headers:    map[string]string{HeaderUserID: "u1", HeaderGatewaySecret: "guess"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newAuthRouter(tc.secret)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus != http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Equal(t, false, resp["success"])
				require.Equal(t, MsgUnauthorized, resp["error"])
				return
			}
			var caller model.Caller
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &caller))
			require.Equal(t, tc.wantCaller, caller)
		})
	}
}
