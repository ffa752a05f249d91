package models

import (
	"time"
)

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}

// PartnerService is a named offering with an indicative price range,
// embedded in the partner profile.
type PartnerService struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	PriceMin    float64 `json:"price_min,omitempty"`
	PriceMax    float64 `json:"price_max,omitempty"`
}

type Verification struct {
	Status    string     `json:"status"`
	Comment   string     `json:"comment,omitempty"`
	UpdatedBy *int       `json:"updated_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Partner is a service-provider profile owned by exactly one user.
type Partner struct {
	ID           int               `json:"id"`
	UserID       int               `json:"user_id"`
	BusinessName string            `json:"business_name"`
	Description  string            `json:"description"`
	Address      Address           `json:"address"`
	ContactEmail string            `json:"contact_email"`
	ContactPhone string            `json:"contact_phone"`
	Categories   []ServiceCategory `json:"categories"`
	Services     []PartnerService  `json:"services,omitempty"`
	Verification Verification      `json:"verification_status"`
	Featured     bool              `json:"featured"`
	Rating       float64           `json:"rating"`
	TotalReviews int               `json:"total_reviews"`
	YearsOfExp   int               `json:"years_of_experience"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
}

// PartnerStats summarises a partner's lead funnel.
type PartnerStats struct {
	TotalLeads     int     `json:"total_leads"`
	RespondedLeads int     `json:"responded_leads"`
	BookedLeads    int     `json:"booked_leads"`
	ResponseRate   float64 `json:"response_rate"`
	ConversionRate float64 `json:"conversion_rate"`
	Rating         float64 `json:"rating"`
	TotalReviews   int     `json:"total_reviews"`
}

// LeadFilter narrows a partner's assigned-lead listing.
type LeadFilter struct {
	Status    string          `json:"status,omitempty"`
	Category  ServiceCategory `json:"category,omitempty"`
	City      string          `json:"city,omitempty"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
}
