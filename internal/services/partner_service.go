package services

import (
	"context"

	"lenslink/internal/models"
	"lenslink/internal/repositories"
)

type PartnerService struct {
	PartnerRepo *repositories.PartnerRepository
	InquiryRepo *repositories.InquiryRepository
}

func (s *PartnerService) CreateProfile(ctx context.Context, partner models.Partner) (models.Partner, error) {
	for _, c := range partner.Categories {
		if !models.ValidServiceCategory(c) {
			return models.Partner{}, models.ErrInvalidCategory
		}
	}
	return s.PartnerRepo.CreatePartner(ctx, partner)
}

func (s *PartnerService) GetProfileByUserID(ctx context.Context, userID int) (models.Partner, error) {
	return s.PartnerRepo.GetPartnerByUserID(ctx, userID)
}

func (s *PartnerService) GetPartnerByID(ctx context.Context, id int) (models.Partner, error) {
	return s.PartnerRepo.GetPartnerByID(ctx, id)
}

// UpdateProfile applies partner-editable fields. The verification block is
// never taken from the caller; only the admin path can change it.
func (s *PartnerService) UpdateProfile(ctx context.Context, userID int, update models.Partner) (models.Partner, error) {
	existing, err := s.PartnerRepo.GetPartnerByUserID(ctx, userID)
	if err != nil {
		return models.Partner{}, err
	}
	for _, c := range update.Categories {
		if !models.ValidServiceCategory(c) {
			return models.Partner{}, models.ErrInvalidCategory
		}
	}
	update.ID = existing.ID
	update.UserID = existing.UserID
	update.Verification = existing.Verification
	return s.PartnerRepo.UpdatePartner(ctx, update)
}

func (s *PartnerService) GetLeads(ctx context.Context, userID int, filter models.LeadFilter) ([]models.Inquiry, error) {
	partner, err := s.PartnerRepo.GetPartnerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.InquiryRepo.ListAssignedToPartner(ctx, partner.ID, filter)
}

func (s *PartnerService) GetStats(ctx context.Context, userID int) (models.PartnerStats, error) {
	partner, err := s.PartnerRepo.GetPartnerByUserID(ctx, userID)
	if err != nil {
		return models.PartnerStats{}, err
	}

	total, err := s.InquiryRepo.CountAssignedToPartner(ctx, partner.ID)
	if err != nil {
		return models.PartnerStats{}, err
	}
	responded, err := s.InquiryRepo.CountRespondedByPartner(ctx, partner.ID)
	if err != nil {
		return models.PartnerStats{}, err
	}
	booked, err := s.InquiryRepo.CountBookedForPartner(ctx, partner.ID)
	if err != nil {
		return models.PartnerStats{}, err
	}

	stats := leadFunnelStats(total, responded, booked)
	stats.Rating = partner.Rating
	stats.TotalReviews = partner.TotalReviews
	return stats, nil
}

// leadFunnelStats derives the rate fields. Response rate is over all
// assigned leads, conversion rate over responded leads only.
func leadFunnelStats(total, responded, booked int) models.PartnerStats {
	stats := models.PartnerStats{
		TotalLeads:     total,
		RespondedLeads: responded,
		BookedLeads:    booked,
	}
	if total > 0 {
		stats.ResponseRate = float64(responded) / float64(total) * 100
	}
	if responded > 0 {
		stats.ConversionRate = float64(booked) / float64(responded) * 100
	}
	return stats
}

// Verify is the admin decision on a partner profile.
func (s *PartnerService) Verify(ctx context.Context, partnerID int, status, comment string, adminID int) (models.Partner, error) {
	if status != models.VerificationApproved && status != models.VerificationRejected {
		return models.Partner{}, models.ErrInvalidStatus
	}
	v := models.Verification{Status: status, Comment: comment, UpdatedBy: &adminID}
	if err := s.PartnerRepo.UpdateVerificationStatus(ctx, partnerID, v); err != nil {
		return models.Partner{}, err
	}
	return s.PartnerRepo.GetPartnerByID(ctx, partnerID)
}

func (s *PartnerService) ListVerificationRequests(ctx context.Context, status string) ([]models.Partner, error) {
	return s.PartnerRepo.ListByVerificationStatus(ctx, status)
}
