package services

import (
	"context"

	"lenslink/internal/models"
	"lenslink/internal/repositories"
)

type ReviewService struct {
	ReviewRepo  *repositories.ReviewRepository
	PartnerRepo *repositories.PartnerRepository
}

// CreateReview stores a client review in pending status. Moderation decides
// whether it becomes visible and counts toward the partner rating.
func (s *ReviewService) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return models.Review{}, models.ErrInvalidRating
	}
	if _, err := s.PartnerRepo.GetPartnerByID(ctx, rev.PartnerID); err != nil {
		return models.Review{}, err
	}
	return s.ReviewRepo.CreateReview(ctx, rev)
}

func (s *ReviewService) GetPartnerReviews(ctx context.Context, partnerID int) ([]models.Review, error) {
	return s.ReviewRepo.GetApprovedByPartnerID(ctx, partnerID)
}

// Reply records the partner's answer on a review left for them.
func (s *ReviewService) Reply(ctx context.Context, reviewID, userID int, reply string) (models.Review, error) {
	partner, err := s.PartnerRepo.GetPartnerByUserID(ctx, userID)
	if err != nil {
		return models.Review{}, err
	}
	rev, err := s.ReviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return models.Review{}, err
	}
	if rev.PartnerID != partner.ID {
		return models.Review{}, models.ErrNotReviewRecipient
	}
	if err := s.ReviewRepo.SetReply(ctx, reviewID, reply); err != nil {
		return models.Review{}, err
	}
	rev.Reply = reply
	return rev, nil
}

func (s *ReviewService) ListForModeration(ctx context.Context, status string) ([]models.Review, error) {
	return s.ReviewRepo.ListByStatus(ctx, status)
}

// Moderate applies the admin decision and refreshes the partner aggregates,
// since approval and rejection both change what counts toward the rating.
func (s *ReviewService) Moderate(ctx context.Context, reviewID int, status, comment string, adminID int) (models.Review, error) {
	if status != models.ReviewStatusApproved && status != models.ReviewStatusRejected {
		return models.Review{}, models.ErrInvalidStatus
	}
	rev, err := s.ReviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return models.Review{}, err
	}
	if err := s.ReviewRepo.Moderate(ctx, reviewID, status, comment, adminID); err != nil {
		return models.Review{}, err
	}
	if err := s.ReviewRepo.RefreshPartnerRating(ctx, rev.PartnerID); err != nil {
		return models.Review{}, err
	}
	return s.ReviewRepo.GetReviewByID(ctx, reviewID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID int) error {
	rev, err := s.ReviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.ReviewRepo.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	return s.ReviewRepo.RefreshPartnerRating(ctx, rev.PartnerID)
}
