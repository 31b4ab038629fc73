package models

import "time"

// Campaign statuses. Amounts are integer minor units (FCFA has no cents, so
// the unit is simply one franc).
const (
	CampaignPending   = "pending"
	CampaignActive    = "active"
	CampaignRejected  = "rejected"
	CampaignCompleted = "completed"
)

type Campaign struct {
	ID            int       `json:"id"`
	OwnerID       int       `json:"owner_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	GoalAmount    int64     `json:"goal_amount"`
	CurrentAmount int64     `json:"current_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
