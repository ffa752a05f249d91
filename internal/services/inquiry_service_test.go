package services

import (
	"context"
	"testing"
	"time"

	"lenslink/internal/models"
)

// stubInquiryStore keeps one inquiry in memory and mirrors the repository's
// upsert semantics for responses.
type stubInquiryStore struct {
	inquiry models.Inquiry
	nextID  int
}

func (s *stubInquiryStore) CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error) {
	inq.ID = 1
	inq.Status = models.InquiryStatusNew
	inq.CreatedAt = time.Now()
	s.inquiry = inq
	return inq, nil
}

func (s *stubInquiryStore) GetInquiryByID(ctx context.Context, id int) (models.Inquiry, error) {
	if s.inquiry.ID != id {
		return models.Inquiry{}, models.ErrInquiryNotFound
	}
	return s.inquiry, nil
}

func (s *stubInquiryStore) ListByClient(ctx context.Context, clientID int) ([]models.Inquiry, error) {
	return []models.Inquiry{s.inquiry}, nil
}

func (s *stubInquiryStore) ListAssignedToPartner(ctx context.Context, partnerID int, filter models.LeadFilter) ([]models.Inquiry, error) {
	return nil, nil
}

func (s *stubInquiryStore) UpsertResponse(ctx context.Context, inquiryID int, resp models.Response) (models.Response, error) {
	for i := range s.inquiry.Responses {
		if s.inquiry.Responses[i].PartnerID == resp.PartnerID {
			s.inquiry.Responses[i].Message = resp.Message
			if resp.Quotation != nil {
				s.inquiry.Responses[i].Quotation = resp.Quotation
			}
			s.inquiry.Responses[i].CreatedAt = time.Now()
			return s.inquiry.Responses[i], nil
		}
	}
	s.nextID++
	resp.ID = s.nextID
	resp.Status = models.ResponseStatusPending
	resp.CreatedAt = time.Now()
	s.inquiry.Responses = append(s.inquiry.Responses, resp)
	return resp, nil
}

func (s *stubInquiryStore) SetBooking(ctx context.Context, inquiryID, partnerID int) error {
	s.inquiry.BookedPartner = &partnerID
	s.inquiry.Status = models.InquiryStatusBooked
	return nil
}

func (s *stubInquiryStore) UpdateStatus(ctx context.Context, inquiryID int, status string) error {
	s.inquiry.Status = status
	return nil
}

func (s *stubInquiryStore) TransitionStatus(ctx context.Context, inquiryID int, from, to string) error {
	if s.inquiry.Status != from {
		return models.ErrInvalidStatus
	}
	s.inquiry.Status = to
	return nil
}

type passthroughMatcher struct{}

func (passthroughMatcher) MatchAndAssign(ctx context.Context, inq models.Inquiry) (models.Inquiry, error) {
	return inq, nil
}

func assignedInquiry(clientID int, partners ...int) *stubInquiryStore {
	return &stubInquiryStore{inquiry: models.Inquiry{
		ID:               1,
		ClientID:         clientID,
		Category:         models.CategoryWedding,
		Location:         models.InquiryLocation{City: "Mumbai", State: "MH"},
		Status:           models.InquiryStatusAssigned,
		AssignedPartners: partners,
	}}
}

func TestRecordResponseTransitionsToResponded(t *testing.T) {
	store := assignedInquiry(100, 7)
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	inq, err := svc.RecordResponse(context.Background(), 1, 7, "Available June 10", nil)
	if err != nil {
		t.Fatalf("RecordResponse error: %v", err)
	}
	if inq.Status != models.InquiryStatusResponded {
		t.Fatalf("expected status responded, got %s", inq.Status)
	}
	if len(inq.Responses) != 1 {
		t.Fatalf("expected 1 response, got %d", len(inq.Responses))
	}
	resp := inq.Responses[0]
	if resp.PartnerID != 7 || resp.Status != models.ResponseStatusPending {
		t.Fatalf("unexpected response entry: %+v", resp)
	}
}

func TestRecordResponseUpsertsPerPartner(t *testing.T) {
	store := assignedInquiry(100, 7)
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	quote := &models.Quotation{Amount: 45000, Description: "Full day coverage"}
	if _, err := svc.RecordResponse(context.Background(), 1, 7, "Available June 10", quote); err != nil {
		t.Fatalf("first response error: %v", err)
	}
	first := store.inquiry.Responses[0]

	inq, err := svc.RecordResponse(context.Background(), 1, 7, "Updated: Available June 10-12", nil)
	if err != nil {
		t.Fatalf("second response error: %v", err)
	}
	if len(inq.Responses) != 1 {
		t.Fatalf("expected a single response entry, got %d", len(inq.Responses))
	}
	second := inq.Responses[0]
	if second.Message != "Updated: Available June 10-12" {
		t.Fatalf("message not replaced: %q", second.Message)
	}
	if second.Quotation == nil || second.Quotation.Amount != 45000 {
		t.Fatal("quotation should be preserved when the repeat response omits it")
	}
	if second.CreatedAt.Before(first.CreatedAt) {
		t.Fatal("timestamp should be refreshed on repeat response")
	}
	// A second response must not bounce the status.
	if inq.Status != models.InquiryStatusResponded {
		t.Fatalf("expected status responded, got %s", inq.Status)
	}
}

func TestRecordResponseRequiresAssignment(t *testing.T) {
	store := assignedInquiry(100, 7)
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	if _, err := svc.RecordResponse(context.Background(), 1, 8, "hello", nil); err != models.ErrNotAssigned {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
	if len(store.inquiry.Responses) != 0 {
		t.Fatal("no response should be recorded for an unassigned partner")
	}
}

func TestBookPartner(t *testing.T) {
	store := assignedInquiry(100, 7)
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	inq, err := svc.BookPartner(context.Background(), 1, 7, 100)
	if err != nil {
		t.Fatalf("BookPartner error: %v", err)
	}
	if inq.Status != models.InquiryStatusBooked {
		t.Fatalf("expected status booked, got %s", inq.Status)
	}
	if inq.BookedPartner == nil || *inq.BookedPartner != 7 {
		t.Fatalf("booked partner not set: %v", inq.BookedPartner)
	}
}

func TestBookPartnerRejectsUnassigned(t *testing.T) {
	store := assignedInquiry(100, 7)
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	if _, err := svc.BookPartner(context.Background(), 1, 9, 100); err != models.ErrNotAssigned {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
	if store.inquiry.Status != models.InquiryStatusAssigned {
		t.Fatalf("status must stay unchanged, got %s", store.inquiry.Status)
	}
	if store.inquiry.BookedPartner != nil {
		t.Fatal("booked partner must stay unset")
	}
}

func TestBookPartnerRequiresOwnership(t *testing.T) {
	store := assignedInquiry(100, 7)
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	if _, err := svc.BookPartner(context.Background(), 1, 7, 200); err != models.ErrNotInquiryOwner {
		t.Fatalf("expected ErrNotInquiryOwner, got %v", err)
	}
}

func TestBookingWithoutResponseAllowed(t *testing.T) {
	store := assignedInquiry(100, 7)
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	inq, err := svc.BookPartner(context.Background(), 1, 7, 100)
	if err != nil {
		t.Fatalf("BookPartner error: %v", err)
	}
	if len(inq.Responses) != 0 {
		t.Fatal("test premise broken: partner should have no response")
	}
	if inq.Status != models.InquiryStatusBooked {
		t.Fatalf("expected booked, got %s", inq.Status)
	}
}

func TestUpdateStatusGuards(t *testing.T) {
	store := assignedInquiry(100, 7)
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	if _, err := svc.UpdateStatus(context.Background(), 1, 100, "archived"); err != models.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), 1, 200, models.InquiryStatusCancelled); err != models.ErrNotInquiryOwner {
		t.Fatalf("expected ErrNotInquiryOwner, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), 1, 100, models.InquiryStatusCancelled); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), 1, 100, models.InquiryStatusNew); err != models.ErrInquiryClosed {
		t.Fatalf("expected ErrInquiryClosed after cancellation, got %v", err)
	}
}

func TestCreateInquiryValidation(t *testing.T) {
	store := &stubInquiryStore{}
	svc := &InquiryService{Inquiries: store, Matcher: passthroughMatcher{}}

	_, err := svc.CreateInquiry(context.Background(), models.Inquiry{
		Category: "skydiving",
		Budget:   models.Budget{Min: 10, Max: 20},
	})
	if err != models.ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}

	_, err = svc.CreateInquiry(context.Background(), models.Inquiry{
		Category: models.CategoryWedding,
		Budget:   models.Budget{Min: 20, Max: 10},
	})
	if err != models.ErrInvalidBudget {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}

	inq, err := svc.CreateInquiry(context.Background(), models.Inquiry{
		Category: models.CategoryWedding,
		Budget:   models.Budget{Min: 10, Max: 20},
	})
	if err != nil {
		t.Fatalf("CreateInquiry error: %v", err)
	}
	if inq.Budget.Currency != "INR" {
		t.Fatalf("expected default currency INR, got %q", inq.Budget.Currency)
	}
	if inq.Status != models.InquiryStatusNew {
		t.Fatalf("expected status new, got %s", inq.Status)
	}
}
