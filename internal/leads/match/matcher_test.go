package match

import (
	"context"
	"testing"

	"lenslink/internal/models"
)

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}

type stubDirectory struct {
	partners []models.Partner
}

func (s *stubDirectory) FindEligible(ctx context.Context, category models.ServiceCategory, city string, limit int) ([]models.Partner, error) {
	var out []models.Partner
	for _, p := range s.partners {
		if p.Verification.Status != models.VerificationApproved || p.Address.City != city {
			continue
		}
		for _, c := range p.Categories {
			if c == category {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

type stubStore struct {
	inquiryID  int
	partnerIDs []int
	status     string
	score      float64
	saves      int
}

func (s *stubStore) SaveAssignment(ctx context.Context, inquiryID int, partnerIDs []int, status string, matchScore float64) error {
	s.inquiryID = inquiryID
	s.partnerIDs = partnerIDs
	s.status = status
	s.score = matchScore
	s.saves++
	return nil
}

type stubNotifier struct {
	notified [][]int
}

func (s *stubNotifier) LeadAssigned(ctx context.Context, inquiry models.Inquiry, partnerIDs []int) {
	s.notified = append(s.notified, partnerIDs)
}

func approvedPartner(id int, city string, rating float64, cats ...models.ServiceCategory) models.Partner {
	return models.Partner{
		ID:           id,
		Address:      models.Address{City: city, State: "MH"},
		Categories:   cats,
		Rating:       rating,
		Verification: models.Verification{Status: models.VerificationApproved},
	}
}

func newInquiry(id int, category models.ServiceCategory, city string) models.Inquiry {
	return models.Inquiry{
		ID:       id,
		Category: category,
		Location: models.InquiryLocation{City: city, State: "MH"},
		Status:   models.InquiryStatusNew,
	}
}

func TestMatchAssignsEligiblePartners(t *testing.T) {
	dir := &stubDirectory{partners: []models.Partner{
		approvedPartner(1, "Mumbai", 4.5, models.CategoryWedding),
		approvedPartner(2, "Mumbai", 4.0, models.CategoryWedding, models.CategoryEvent),
		approvedPartner(3, "Mumbai", 3.5, models.CategoryWedding),
		approvedPartner(4, "Pune", 5.0, models.CategoryWedding),
		approvedPartner(5, "Delhi", 5.0, models.CategoryWedding),
	}}
	store := &stubStore{}
	notifier := &stubNotifier{}
	engine := New(dir, store, notifier, testLogger{})

	inq, err := engine.MatchAndAssign(context.Background(), newInquiry(10, models.CategoryWedding, "Mumbai"))
	if err != nil {
		t.Fatalf("MatchAndAssign error: %v", err)
	}
	if inq.Status != models.InquiryStatusAssigned {
		t.Fatalf("expected status assigned, got %s", inq.Status)
	}
	if len(inq.AssignedPartners) != 3 {
		t.Fatalf("expected 3 assigned partners, got %v", inq.AssignedPartners)
	}
	for _, id := range inq.AssignedPartners {
		if id == 4 || id == 5 {
			t.Fatalf("partner outside Mumbai assigned: %d", id)
		}
	}
	if store.saves != 1 || store.status != models.InquiryStatusAssigned {
		t.Fatalf("assignment not persisted: %+v", store)
	}
	if len(notifier.notified) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.notified))
	}
}

func TestMatchCapsAtFivePartners(t *testing.T) {
	dir := &stubDirectory{}
	for id := 1; id <= 8; id++ {
		dir.partners = append(dir.partners, approvedPartner(id, "Mumbai", float64(id), models.CategoryEvent))
	}
	store := &stubStore{}
	engine := New(dir, store, nil, testLogger{})

	inq, err := engine.MatchAndAssign(context.Background(), newInquiry(11, models.CategoryEvent, "Mumbai"))
	if err != nil {
		t.Fatalf("MatchAndAssign error: %v", err)
	}
	if len(inq.AssignedPartners) != models.MaxAssignedPartners {
		t.Fatalf("expected %d assigned partners, got %d", models.MaxAssignedPartners, len(inq.AssignedPartners))
	}
	// Highest ratings win: ids 8..4.
	want := []int{8, 7, 6, 5, 4}
	for i, id := range inq.AssignedPartners {
		if id != want[i] {
			t.Fatalf("expected assignment %v, got %v", want, inq.AssignedPartners)
		}
	}
}

func TestMatchNoEligiblePartners(t *testing.T) {
	dir := &stubDirectory{partners: []models.Partner{
		approvedPartner(1, "Pune", 4.5, models.CategoryWedding),
		{
			ID:           2,
			Address:      models.Address{City: "Mumbai"},
			Categories:   []models.ServiceCategory{models.CategoryWedding},
			Verification: models.Verification{Status: models.VerificationPending},
		},
	}}
	store := &stubStore{}
	engine := New(dir, store, nil, testLogger{})

	inq, err := engine.MatchAndAssign(context.Background(), newInquiry(12, models.CategoryWedding, "Mumbai"))
	if err != nil {
		t.Fatalf("MatchAndAssign error: %v", err)
	}
	if inq.Status != models.InquiryStatusNew {
		t.Fatalf("expected status to stay new, got %s", inq.Status)
	}
	if len(inq.AssignedPartners) != 0 {
		t.Fatalf("expected empty assignment, got %v", inq.AssignedPartners)
	}
	if store.saves != 0 {
		t.Fatal("no assignment should be persisted when nothing matches")
	}
}

func TestMatchDeterministicTieBreak(t *testing.T) {
	dir := &stubDirectory{partners: []models.Partner{
		approvedPartner(9, "Mumbai", 4.0, models.CategoryPortrait),
		approvedPartner(3, "Mumbai", 4.0, models.CategoryPortrait),
		approvedPartner(6, "Mumbai", 4.0, models.CategoryPortrait),
	}}
	store := &stubStore{}
	engine := New(dir, store, nil, testLogger{})

	inq, err := engine.MatchAndAssign(context.Background(), newInquiry(13, models.CategoryPortrait, "Mumbai"))
	if err != nil {
		t.Fatalf("MatchAndAssign error: %v", err)
	}
	want := []int{3, 6, 9}
	for i, id := range inq.AssignedPartners {
		if id != want[i] {
			t.Fatalf("expected id-ascending tie-break %v, got %v", want, inq.AssignedPartners)
		}
	}
}

func TestMatchScoreIsMeanRating(t *testing.T) {
	dir := &stubDirectory{partners: []models.Partner{
		approvedPartner(1, "Mumbai", 5.0, models.CategoryWedding),
		approvedPartner(2, "Mumbai", 3.0, models.CategoryWedding),
	}}
	store := &stubStore{}
	engine := New(dir, store, nil, testLogger{})

	inq, err := engine.MatchAndAssign(context.Background(), newInquiry(14, models.CategoryWedding, "Mumbai"))
	if err != nil {
		t.Fatalf("MatchAndAssign error: %v", err)
	}
	if inq.LeadMatchScore != 4.0 {
		t.Fatalf("expected match score 4.0, got %v", inq.LeadMatchScore)
	}
	if store.score != 4.0 {
		t.Fatalf("expected persisted score 4.0, got %v", store.score)
	}
}
