package services

// Allowed status transitions. Moderation (pending -> active/rejected) is
// admin-only; completion closes a campaign for new donations.
var CampaignTransitions = map[string]map[string]bool{
	"pending":   {"active": true, "rejected": true},
	"active":    {"completed": true},
	"rejected":  {},
	"completed": {},
}

var ItemTransitions = map[string]map[string]bool{
	"pending_review": {"published": true, "removed": true},
	"published":      {"reserved": true, "removed": true},
	"reserved":       {"removed": true, "published": true}, // re-publish if pickup falls through
	"removed":        {},
}

func canTransition(current, to string, table map[string]map[string]bool) bool {
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}
