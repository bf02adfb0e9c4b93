package auction

import (
	"strings"

	"auction-marketplace/internal/auctionerrors"
	model "auction-marketplace/internal/models"
)

// Caller-facing messages for request-level failures
const (
	MsgBulkForbidden       = "Only sellers and admins can perform bulk operations"
	MsgBulkFieldsRequired  = "Action and auctionIds array are required"
	MsgUpdateDataRequired  = "Update data is required"
	MsgAuctionNotFound     = "Auction not found"
	MsgNotAuthorizedToEdit = "Not authorized to edit this auction"
)

// MsgInvalidAction lists the accepted actions
var MsgInvalidAction = invalidActionMessage()

func invalidActionMessage() string {
	names := make([]string, len(model.BulkActions))
	for i, a := range model.BulkActions {
		names[i] = string(a)
	}
	return "Invalid action. Must be one of: " + strings.Join(names, ", ")
}

// AuthorizeBulk rejects callers whose role may not run bulk operations
func AuthorizeBulk(caller model.Caller) error {
	if caller.Role != model.RoleSeller && caller.Role != model.RoleAdmin {
		return &auctionerrors.RequestError{Kind: auctionerrors.ErrForbidden, Message: MsgBulkForbidden}
	}
	return nil
}

// ValidateBulkRequest checks the caller's role and the raw request body.
// It has no side effects.
func ValidateBulkRequest(caller model.Caller, body map[string]any) (model.BulkRequest, error) {
	if err := AuthorizeBulk(caller); err != nil {
		return model.BulkRequest{}, err
	}

	action, _ := body["action"].(string)
	ids, idsOK := stringList(body["auctionIds"])
	if action == "" || !idsOK || len(ids) == 0 {
		return model.BulkRequest{}, &auctionerrors.RequestError{Kind: auctionerrors.ErrInvalidArgument, Message: MsgBulkFieldsRequired}
	}

	bulkAction := model.BulkAction(action)
	if !bulkAction.Valid() {
		return model.BulkRequest{}, &auctionerrors.RequestError{Kind: auctionerrors.ErrInvalidArgument, Message: MsgInvalidAction}
	}

	req := model.BulkRequest{Action: bulkAction, AuctionIDs: ids}
	if data, ok := body["data"].(map[string]any); ok {
		req.Data = data
	}
	return req, nil
}

// stringList accepts a JSON array whose elements are all non-empty strings
func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		for _, s := range list {
			if s == "" {
				return nil, false
			}
		}
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok || s == "" {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
