package match

import (
	"context"
	"sort"

	"lenslink/internal/leads/fsm"
	"lenslink/internal/models"
)

// Logger is the minimal logger interface required by the engine.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// PartnerDirectory looks up partners eligible for an inquiry: approved
// verification, matching category, matching city.
type PartnerDirectory interface {
	FindEligible(ctx context.Context, category models.ServiceCategory, city string, limit int) ([]models.Partner, error)
}

// InquiryStore persists the assignment produced by the engine.
type InquiryStore interface {
	SaveAssignment(ctx context.Context, inquiryID int, partnerIDs []int, status string, matchScore float64) error
}

// Notifier is told about fresh assignments. Delivery is best-effort.
type Notifier interface {
	LeadAssigned(ctx context.Context, inquiry models.Inquiry, partnerIDs []int)
}

// Engine selects and assigns partners for newly created inquiries.
type Engine struct {
	partners  PartnerDirectory
	inquiries InquiryStore
	notifier  Notifier
	logger    Logger
}

// New creates an engine instance. notifier may be nil.
func New(partners PartnerDirectory, inquiries InquiryStore, notifier Notifier, logger Logger) *Engine {
	return &Engine{partners: partners, inquiries: inquiries, notifier: notifier, logger: logger}
}

// MatchAndAssign selects up to models.MaxAssignedPartners approved partners
// whose category set and city match the inquiry, assigns them and moves the
// inquiry to "assigned". Ordering is rating descending, then partner id
// ascending, so equal inputs always produce the same assignment. An inquiry
// with no eligible partners stays "new"; that is a normal outcome, not an
// error.
func (e *Engine) MatchAndAssign(ctx context.Context, inquiry models.Inquiry) (models.Inquiry, error) {
	candidates, err := e.partners.FindEligible(ctx, inquiry.Category, inquiry.Location.City, models.MaxAssignedPartners)
	if err != nil {
		return inquiry, err
	}
	if len(candidates) == 0 {
		e.logger.Infof("match: no eligible partners for inquiry %d (%s, %s)", inquiry.ID, inquiry.Category, inquiry.Location.City)
		return inquiry, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Rating != candidates[j].Rating {
			return candidates[i].Rating > candidates[j].Rating
		}
		return candidates[i].ID < candidates[j].ID
	})
	if len(candidates) > models.MaxAssignedPartners {
		candidates = candidates[:models.MaxAssignedPartners]
	}

	ids := make([]int, 0, len(candidates))
	var ratingSum float64
	for _, p := range candidates {
		ids = append(ids, p.ID)
		ratingSum += p.Rating
	}
	score := ratingSum / float64(len(candidates))

	if !fsm.CanTransition(inquiry.Status, models.InquiryStatusAssigned) {
		e.logger.Errorf("match: inquiry %d in status %s cannot be assigned", inquiry.ID, inquiry.Status)
		return inquiry, nil
	}
	if err := e.inquiries.SaveAssignment(ctx, inquiry.ID, ids, models.InquiryStatusAssigned, score); err != nil {
		return inquiry, err
	}

	inquiry.AssignedPartners = ids
	inquiry.Status = models.InquiryStatusAssigned
	inquiry.LeadMatchScore = score

	if e.notifier != nil {
		e.notifier.LeadAssigned(ctx, inquiry, ids)
	}
	e.logger.Infof("match: inquiry %d assigned to %d partner(s)", inquiry.ID, len(ids))
	return inquiry, nil
}
