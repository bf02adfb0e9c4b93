package helpers

import (
	"errors"
	"net/http"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/auth"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// Caller-facing messages for failures outside the per-item loop
const (
	MsgBulkOperationFailed  = "Failed to perform bulk operation"
	MsgFetchLiveFailed      = "Failed to fetch live auctions"
	MsgFetchFeaturedFailed  = "Failed to fetch featured auctions"
	MsgFetchWatchlistFailed = "Failed to fetch watchlist"
)

// HandleBindError answers an unreadable request body. The body is parsed
// outside the item loop, so this is the generic 500.
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusInternalServerError, MsgBulkOperationFailed)
	utils.Error(handlerName+": failed to read request body", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps service errors to an HTTP status code and message.
// Errors it does not recognise become a 500 carrying fallback.
func MapErrorToHTTP(err error, fallback string) (int, string) {
	var reqErr *auctionerrors.RequestError
	message := fallback
	if errors.As(err, &reqErr) {
		message = reqErr.Message
	}

	switch {
	case errors.Is(err, auctionerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, auth.MsgUnauthorized
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, message
	case errors.Is(err, auctionerrors.ErrInvalidArgument):
		return http.StatusBadRequest, message
	default:
		return http.StatusInternalServerError, fallback
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
