package models

import (
	"time"
)

// Inquiry status lifecycle. Transitions are enforced by internal/leads/fsm.
const (
	InquiryStatusNew       = "new"
	InquiryStatusAssigned  = "assigned"
	InquiryStatusResponded = "responded"
	InquiryStatusBooked    = "booked"
	InquiryStatusCompleted = "completed"
	InquiryStatusCancelled = "cancelled"
)

const (
	ResponseStatusPending  = "pending"
	ResponseStatusAccepted = "accepted"
	ResponseStatusRejected = "rejected"
)

// MaxAssignedPartners caps how many partners the matcher may assign to one
// inquiry.
const MaxAssignedPartners = 5

type InquiryLocation struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode,omitempty"`
	Address string `json:"address,omitempty"`
}

type Budget struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

type Quotation struct {
	Amount      float64    `json:"amount"`
	Description string     `json:"description,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
}

// Response is a partner's reply to an inquiry. Responses live inside the
// inquiry aggregate: at most one per partner, addressed by partner id and
// mutated only through the inquiry repository.
type Response struct {
	ID        int        `json:"id"`
	PartnerID int        `json:"partner_id"`
	Message   string     `json:"message"`
	Quotation *Quotation `json:"quotation,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// Inquiry is a client's service request, the central workflow object.
type Inquiry struct {
	ID                int             `json:"id"`
	ClientID          int             `json:"client_id"`
	Category          ServiceCategory `json:"category"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	EventDate         time.Time       `json:"event_date"`
	Location          InquiryLocation `json:"location"`
	Budget            Budget          `json:"budget"`
	ReferenceImageURL string          `json:"reference_image_url,omitempty"`
	Requirements      []string        `json:"requirements,omitempty"`
	Status            string          `json:"status"`
	AssignedPartners  []int           `json:"assigned_partners"`
	Responses         []Response      `json:"responses"`
	BookedPartner     *int            `json:"booked_partner,omitempty"`
	LeadMatchScore    float64         `json:"lead_match_score"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

// HasAssigned reports whether the partner is in the assigned set.
func (i *Inquiry) HasAssigned(partnerID int) bool {
	for _, id := range i.AssignedPartners {
		if id == partnerID {
			return true
		}
	}
	return false
}

// ResponseFor returns the partner's response, if any.
func (i *Inquiry) ResponseFor(partnerID int) *Response {
	for idx := range i.Responses {
		if i.Responses[idx].PartnerID == partnerID {
			return &i.Responses[idx]
		}
	}
	return nil
}
