package domain

import "time"

type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author,omitempty"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Trending      bool      `json:"trending"`
	CoverImage    string    `json:"coverImage,omitempty"`
	NewPriceCents int64     `json:"newPriceCents"`
	OldPriceCents int64     `json:"oldPriceCents,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
