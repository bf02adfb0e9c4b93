package auction

import model "auction-marketplace/internal/models"

// TransitionRule lists the statuses an action may be applied from
type TransitionRule struct {
	RequiredPriorStatuses []model.AuctionStatus
	RejectionMessage      string
}

// Allows reports whether status satisfies the rule
func (r TransitionRule) Allows(status model.AuctionStatus) bool {
	for _, s := range r.RequiredPriorStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// feature, unfeature and update carry no status precondition
var transitionRules = map[model.BulkAction]TransitionRule{
	model.ActionStart: {
		RequiredPriorStatuses: []model.AuctionStatus{model.StatusScheduled},
		RejectionMessage:      "Only scheduled auctions can be started",
	},
	model.ActionEnd: {
		RequiredPriorStatuses: []model.AuctionStatus{model.StatusActive},
		RejectionMessage:      "Only active auctions can be ended",
	},
	model.ActionCancel: {
		RequiredPriorStatuses: []model.AuctionStatus{model.StatusScheduled, model.StatusActive},
		RejectionMessage:      "Can only cancel scheduled or active auctions",
	},
	model.ActionDelete: {
		RequiredPriorStatuses: []model.AuctionStatus{model.StatusDraft, model.StatusEnded, model.StatusCancelled},
		RejectionMessage:      "Can only delete draft, ended, or cancelled auctions",
	},
}

// TransitionRuleFor returns the rule guarding action, if it has one
func TransitionRuleFor(action model.BulkAction) (TransitionRule, bool) {
	rule, ok := transitionRules[action]
	return rule, ok
}
