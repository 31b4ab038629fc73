package models

import "time"

const (
	PaymentInitiated = "initiated"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
)

// PaymentIntent records a mobile-money payment attempt. The provider
// integration is a stub; intents stay "initiated" until the operator
// callback flow exists.
type PaymentIntent struct {
	ID         int       `json:"id"`
	CampaignID int       `json:"campaign_id"`
	Amount     int64     `json:"amount"`
	Operator   string    `json:"operator"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	Reference  string    `json:"reference"`
	CreatedAt  time.Time `json:"created_at"`
}
