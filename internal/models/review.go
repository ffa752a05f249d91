package models

import (
	"time"
)

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

type Review struct {
	ID                int        `json:"id"`
	PartnerID         int        `json:"partner_id"`
	ClientID          int        `json:"client_id"`
	InquiryID         *int       `json:"inquiry_id,omitempty"`
	Rating            int        `json:"rating"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Reply             string     `json:"reply,omitempty"`
	Status            string     `json:"status"`
	ModerationComment string     `json:"moderation_comment,omitempty"`
	ModeratedBy       *int       `json:"moderated_by,omitempty"`
	ModeratedAt       *time.Time `json:"moderated_at,omitempty"`
	ClientName        string     `json:"client_name,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}
