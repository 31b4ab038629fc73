package models

import "time"

// ContentPage is an admin-editable public page (about, FAQ, legal...).
type ContentPage struct {
	ID        int       `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}
