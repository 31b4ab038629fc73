package models

import "time"

const (
	DonationPending  = "pending"
	DonationApproved = "approved"
	DonationRejected = "rejected"
)

type Donation struct {
	ID         int       `json:"id"`
	CampaignID int       `json:"campaign_id"`
	DonorID    *int      `json:"donor_id,omitempty"` // nil for anonymous donations
	DonorName  string    `json:"donor_name,omitempty"`
	DonorEmail string    `json:"-"` // used for the receipt mail, never serialized
	Amount     int64     `json:"amount"`
	Reference  string    `json:"reference"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
