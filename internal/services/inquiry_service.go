package services

import (
	"context"

	"lenslink/internal/leads/fsm"
	"lenslink/internal/models"
)

// InquiryStore is the persistence surface the service needs. Satisfied by
// repositories.InquiryRepository.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error)
	GetInquiryByID(ctx context.Context, id int) (models.Inquiry, error)
	ListByClient(ctx context.Context, clientID int) ([]models.Inquiry, error)
	ListAssignedToPartner(ctx context.Context, partnerID int, filter models.LeadFilter) ([]models.Inquiry, error)
	UpsertResponse(ctx context.Context, inquiryID int, resp models.Response) (models.Response, error)
	SetBooking(ctx context.Context, inquiryID, partnerID int) error
	UpdateStatus(ctx context.Context, inquiryID int, status string) error
	TransitionStatus(ctx context.Context, inquiryID int, from, to string) error
}

// Matcher assigns partners to a fresh inquiry. Satisfied by match.Engine.
type Matcher interface {
	MatchAndAssign(ctx context.Context, inq models.Inquiry) (models.Inquiry, error)
}

// LeadEvents receives lifecycle notifications. Delivery is best-effort; the
// service never fails a request because an event could not be pushed.
type LeadEvents interface {
	LeadResponded(ctx context.Context, inquiry models.Inquiry, partnerID int)
	LeadBooked(ctx context.Context, inquiry models.Inquiry, partnerID int)
}

type InquiryService struct {
	Inquiries InquiryStore
	Matcher   Matcher
	Events    LeadEvents
}

// CreateInquiry validates and stores the inquiry, then runs matching
// synchronously. An unmatched inquiry is a normal outcome: it stays "new"
// and the call still succeeds.
func (s *InquiryService) CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error) {
	if !models.ValidServiceCategory(inq.Category) {
		return models.Inquiry{}, models.ErrInvalidCategory
	}
	if inq.Budget.Max < inq.Budget.Min {
		return models.Inquiry{}, models.ErrInvalidBudget
	}
	if inq.Budget.Currency == "" {
		inq.Budget.Currency = "INR"
	}

	created, err := s.Inquiries.CreateInquiry(ctx, inq)
	if err != nil {
		return models.Inquiry{}, err
	}
	return s.Matcher.MatchAndAssign(ctx, created)
}

// GetInquiryForActor loads an inquiry and enforces read access: the owning
// client, an assigned partner, or an admin.
func (s *InquiryService) GetInquiryForActor(ctx context.Context, id, userID int, role string, partnerID int) (models.Inquiry, error) {
	inq, err := s.Inquiries.GetInquiryByID(ctx, id)
	if err != nil {
		return models.Inquiry{}, err
	}
	switch role {
	case models.RoleAdmin:
	case models.RoleClient:
		if inq.ClientID != userID {
			return models.Inquiry{}, models.ErrNotInquiryOwner
		}
	case models.RolePartner:
		if !inq.HasAssigned(partnerID) {
			return models.Inquiry{}, models.ErrNotAssigned
		}
	default:
		return models.Inquiry{}, models.ErrNotInquiryOwner
	}
	return inq, nil
}

func (s *InquiryService) ListClientInquiries(ctx context.Context, clientID int) ([]models.Inquiry, error) {
	return s.Inquiries.ListByClient(ctx, clientID)
}

func (s *InquiryService) ListPartnerLeads(ctx context.Context, partnerID int, filter models.LeadFilter) ([]models.Inquiry, error) {
	return s.Inquiries.ListAssignedToPartner(ctx, partnerID, filter)
}

// UpdateStatus is the client-driven status change. The value must be a
// known status and the inquiry must not already be terminal; beyond that
// the client may set any status (booking and responses use their dedicated
// paths, which carry stricter guards).
func (s *InquiryService) UpdateStatus(ctx context.Context, inquiryID, userID int, status string) (models.Inquiry, error) {
	if !fsm.IsValid(status) {
		return models.Inquiry{}, models.ErrInvalidStatus
	}
	inq, err := s.Inquiries.GetInquiryByID(ctx, inquiryID)
	if err != nil {
		return models.Inquiry{}, err
	}
	if inq.ClientID != userID {
		return models.Inquiry{}, models.ErrNotInquiryOwner
	}
	if fsm.IsTerminal(inq.Status) {
		return models.Inquiry{}, models.ErrInquiryClosed
	}
	if err := s.Inquiries.UpdateStatus(ctx, inquiryID, status); err != nil {
		return models.Inquiry{}, err
	}
	inq.Status = status
	return inq, nil
}

// RecordResponse stores a partner's reply. Only assigned partners may
// respond; a repeat response replaces the partner's existing entry. The
// first response moves the inquiry from assigned to responded.
func (s *InquiryService) RecordResponse(ctx context.Context, inquiryID, partnerID int, message string, quotation *models.Quotation) (models.Inquiry, error) {
	inq, err := s.Inquiries.GetInquiryByID(ctx, inquiryID)
	if err != nil {
		return models.Inquiry{}, err
	}
	if !inq.HasAssigned(partnerID) {
		return models.Inquiry{}, models.ErrNotAssigned
	}

	stored, err := s.Inquiries.UpsertResponse(ctx, inquiryID, models.Response{
		PartnerID: partnerID,
		Message:   message,
		Quotation: quotation,
	})
	if err != nil {
		return models.Inquiry{}, err
	}

	if inq.Status == models.InquiryStatusAssigned && fsm.CanTransition(inq.Status, models.InquiryStatusResponded) {
		if err := s.Inquiries.TransitionStatus(ctx, inquiryID, inq.Status, models.InquiryStatusResponded); err != nil {
			return models.Inquiry{}, err
		}
		inq.Status = models.InquiryStatusResponded
	}

	if existing := inq.ResponseFor(partnerID); existing != nil {
		*existing = stored
	} else {
		inq.Responses = append(inq.Responses, stored)
	}

	if s.Events != nil {
		s.Events.LeadResponded(ctx, inq, partnerID)
	}
	return inq, nil
}

// BookPartner finalises the client's choice. The actor must own the
// inquiry and the partner must be one of the assigned ones; a prior
// response from that partner is deliberately not required.
func (s *InquiryService) BookPartner(ctx context.Context, inquiryID, partnerID, userID int) (models.Inquiry, error) {
	inq, err := s.Inquiries.GetInquiryByID(ctx, inquiryID)
	if err != nil {
		return models.Inquiry{}, err
	}
	if inq.ClientID != userID {
		return models.Inquiry{}, models.ErrNotInquiryOwner
	}
	if !inq.HasAssigned(partnerID) {
		return models.Inquiry{}, models.ErrNotAssigned
	}
	if fsm.IsTerminal(inq.Status) {
		return models.Inquiry{}, models.ErrInquiryClosed
	}

	if err := s.Inquiries.SetBooking(ctx, inquiryID, partnerID); err != nil {
		return models.Inquiry{}, err
	}
	inq.BookedPartner = &partnerID
	inq.Status = models.InquiryStatusBooked

	if s.Events != nil {
		s.Events.LeadBooked(ctx, inq, partnerID)
	}
	return inq, nil
}
