package models

// BulkAction is an operation applied to every auction in a bulk request
type BulkAction string

const (
	ActionStart     BulkAction = "start"
	ActionEnd       BulkAction = "end"
	ActionCancel    BulkAction = "cancel"
	ActionFeature   BulkAction = "feature"
	ActionUnfeature BulkAction = "unfeature"
	ActionDelete    BulkAction = "delete"
	ActionUpdate    BulkAction = "update"
)

// BulkActions lists the accepted actions in their documented order
var BulkActions = []BulkAction{
	ActionStart, ActionEnd, ActionCancel, ActionFeature, ActionUnfeature, ActionDelete, ActionUpdate,
}

// Valid reports whether a is one of BulkActions
func (a BulkAction) Valid() bool {
	for _, known := range BulkActions {
		if a == known {
			return true
		}
	}
	return false
}

// BulkRequest is a validated bulk operation
type BulkRequest struct {
	Action     BulkAction
	AuctionIDs []string
	Data       map[string]any // only read for ActionUpdate
}

// ItemResult is the outcome for a single auction id
type ItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Summary tallies a bulk run
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BulkResult holds per-item outcomes in input order plus their summary
type BulkResult struct {
	Results []ItemResult `json:"results"`
	Summary Summary      `json:"summary"`
}
