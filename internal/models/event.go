package models

import (
	"time"
)

const (
	EventLeadAssigned  = "lead.assigned"
	EventLeadResponded = "lead.responded"
	EventLeadBooked    = "lead.booked"
)

// LeadEvent is the realtime payload pushed over the websocket and mirrored
// as a push notification.
type LeadEvent struct {
	Type      string          `json:"type"`
	InquiryID int             `json:"inquiry_id"`
	Category  ServiceCategory `json:"category"`
	City      string          `json:"city"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
}
