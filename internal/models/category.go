package models

import (
	"time"
)

// ServiceCategory is the fixed set of service types shared by inquiries,
// partner profiles and portfolio items. Keeping one enumeration avoids the
// same string literals drifting apart across tables.
type ServiceCategory string

const (
	CategoryWedding    ServiceCategory = "wedding"
	CategoryPortrait   ServiceCategory = "portrait"
	CategoryCommercial ServiceCategory = "commercial"
	CategoryEvent      ServiceCategory = "event"
	CategoryMaternity  ServiceCategory = "maternity"
	CategoryProduct    ServiceCategory = "product"
	CategoryOther      ServiceCategory = "other"
)

var serviceCategories = map[ServiceCategory]struct{}{
	CategoryWedding:    {},
	CategoryPortrait:   {},
	CategoryCommercial: {},
	CategoryEvent:      {},
	CategoryMaternity:  {},
	CategoryProduct:    {},
	CategoryOther:      {},
}

// ValidServiceCategory reports whether c is one of the known categories.
func ValidServiceCategory(c ServiceCategory) bool {
	_, ok := serviceCategories[c]
	return ok
}

// Category is an admin-managed reference row describing a service category
// for display purposes (icon, ordering). The slug values mirror the
// ServiceCategory enumeration.
type Category struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description,omitempty"`
	IconURL       string     `json:"icon_url,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	IsActive      bool       `json:"is_active"`
	DisplayOrder  int        `json:"display_order"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
