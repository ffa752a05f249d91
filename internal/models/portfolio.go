package models

import (
	"time"
)

// PortfolioItem is an owned child of a portfolio, addressed by its id within
// the parent. Order values form a contiguous 0-based sequence.
type PortfolioItem struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url"`
	Category    ServiceCategory `json:"category"`
	Tags        []string        `json:"tags,omitempty"`
	Order       int             `json:"order"`
	Featured    bool            `json:"featured"`
	Location    string          `json:"location,omitempty"`
	DateShot    *time.Time      `json:"date_shot,omitempty"`
}

// Portfolio is a partner's showcase. One per partner.
type Portfolio struct {
	ID          int             `json:"id"`
	PartnerID   int             `json:"partner_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	CoverImage  string          `json:"cover_image,omitempty"`
	Items       []PortfolioItem `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// ItemOrder is one element of a reorder request payload.
type ItemOrder struct {
	ItemID int `json:"item_id"`
	Order  int `json:"order"`
}
