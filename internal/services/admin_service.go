package services

import (
	"context"

	"lenslink/internal/models"
	"lenslink/internal/repositories"
)

const topCitiesLimit = 10

type AdminService struct {
	UserRepo      *repositories.UserRepository
	PartnerRepo   *repositories.PartnerRepository
	InquiryRepo   *repositories.InquiryRepository
	PortfolioRepo *repositories.PortfolioRepository
}

// GetStats assembles the admin dashboard summary.
func (s *AdminService) GetStats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	var err error

	if stats.Counts.TotalClients, err = s.UserRepo.CountByRole(ctx, models.RoleClient); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Counts.TotalPartners, err = s.UserRepo.CountByRole(ctx, models.RolePartner); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Counts.PendingVerifications, err = s.PartnerRepo.CountPendingVerifications(ctx); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Counts.TotalInquiries, err = s.InquiryRepo.CountAll(ctx); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Counts.CompletedInquiries, err = s.InquiryRepo.CountByStatus(ctx, models.InquiryStatusCompleted); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Counts.TotalPortfolioItems, err = s.PortfolioRepo.CountItems(ctx); err != nil {
		return models.AdminStats{}, err
	}

	if stats.Analytics.InquiriesByCategory, err = s.InquiryRepo.CountByCategory(ctx); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Analytics.InquiriesByStatus, err = s.InquiryRepo.CountGroupedByStatus(ctx); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Analytics.InquiriesByCity, err = s.InquiryRepo.TopCities(ctx, topCitiesLimit); err != nil {
		return models.AdminStats{}, err
	}
	return stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	return s.UserRepo.ListUsers(ctx, role)
}
