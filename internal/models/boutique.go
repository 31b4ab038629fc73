package models

import "time"

// Donated goods offered on the boutique page.
const (
	ItemPendingReview = "pending_review"
	ItemPublished     = "published"
	ItemReserved      = "reserved"
	ItemRemoved       = "removed"
)

const (
	OrderPending  = "pending"
	OrderApproved = "approved"
	OrderRejected = "rejected"
)

type BoutiqueItem struct {
	ID          int       `json:"id"`
	DonorID     *int      `json:"donor_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// BoutiqueOrder is a beneficiary's pickup request for a published item.
type BoutiqueOrder struct {
	ID            int       `json:"id"`
	ItemID        int       `json:"item_id"`
	BeneficiaryID int       `json:"beneficiary_id"`
	Motivation    string    `json:"motivation"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
