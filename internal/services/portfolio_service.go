package services

import (
	"context"

	"lenslink/internal/models"
	"lenslink/internal/repositories"
)

type PortfolioService struct {
	PortfolioRepo *repositories.PortfolioRepository
	PartnerRepo   *repositories.PartnerRepository
}

func (s *PortfolioService) partnerFor(ctx context.Context, userID int) (models.Partner, error) {
	return s.PartnerRepo.GetPartnerByUserID(ctx, userID)
}

// CreateOrUpdate upserts the caller's portfolio shell.
func (s *PortfolioService) CreateOrUpdate(ctx context.Context, userID int, portfolio models.Portfolio) (models.Portfolio, error) {
	partner, err := s.partnerFor(ctx, userID)
	if err != nil {
		return models.Portfolio{}, err
	}
	portfolio.PartnerID = partner.ID
	return s.PortfolioRepo.CreateOrUpdate(ctx, portfolio)
}

func (s *PortfolioService) GetOwn(ctx context.Context, userID int) (models.Portfolio, error) {
	partner, err := s.partnerFor(ctx, userID)
	if err != nil {
		return models.Portfolio{}, err
	}
	return s.PortfolioRepo.GetByPartnerID(ctx, partner.ID)
}

func (s *PortfolioService) GetByPartnerID(ctx context.Context, partnerID int) (models.Portfolio, error) {
	return s.PortfolioRepo.GetByPartnerID(ctx, partnerID)
}

// AddItem appends an item to the caller's portfolio, creating the portfolio
// on first use.
func (s *PortfolioService) AddItem(ctx context.Context, userID int, item models.PortfolioItem) (models.PortfolioItem, error) {
	if !models.ValidServiceCategory(item.Category) {
		return models.PortfolioItem{}, models.ErrInvalidCategory
	}
	partner, err := s.partnerFor(ctx, userID)
	if err != nil {
		return models.PortfolioItem{}, err
	}
	portfolio, err := s.PortfolioRepo.GetByPartnerID(ctx, partner.ID)
	if err == models.ErrPortfolioNotFound {
		portfolio, err = s.PortfolioRepo.CreateOrUpdate(ctx, models.Portfolio{PartnerID: partner.ID})
	}
	if err != nil {
		return models.PortfolioItem{}, err
	}
	return s.PortfolioRepo.AddItem(ctx, portfolio.ID, item)
}

func (s *PortfolioService) UpdateItem(ctx context.Context, userID int, item models.PortfolioItem) (models.PortfolioItem, error) {
	if item.Category != "" && !models.ValidServiceCategory(item.Category) {
		return models.PortfolioItem{}, models.ErrInvalidCategory
	}
	partner, err := s.partnerFor(ctx, userID)
	if err != nil {
		return models.PortfolioItem{}, err
	}
	portfolio, err := s.PortfolioRepo.GetByPartnerID(ctx, partner.ID)
	if err != nil {
		return models.PortfolioItem{}, err
	}
	return s.PortfolioRepo.UpdateItem(ctx, portfolio.ID, item)
}

func (s *PortfolioService) DeleteItem(ctx context.Context, userID, itemID int) (models.Portfolio, error) {
	partner, err := s.partnerFor(ctx, userID)
	if err != nil {
		return models.Portfolio{}, err
	}
	portfolio, err := s.PortfolioRepo.GetByPartnerID(ctx, partner.ID)
	if err != nil {
		return models.Portfolio{}, err
	}
	if err := s.PortfolioRepo.DeleteItem(ctx, portfolio.ID, itemID); err != nil {
		return models.Portfolio{}, err
	}
	return s.PortfolioRepo.GetByPartnerID(ctx, partner.ID)
}

func (s *PortfolioService) Reorder(ctx context.Context, userID int, orders []models.ItemOrder) (models.Portfolio, error) {
	partner, err := s.partnerFor(ctx, userID)
	if err != nil {
		return models.Portfolio{}, err
	}
	portfolio, err := s.PortfolioRepo.GetByPartnerID(ctx, partner.ID)
	if err != nil {
		return models.Portfolio{}, err
	}
	if err := s.PortfolioRepo.Reorder(ctx, portfolio.ID, orders); err != nil {
		return models.Portfolio{}, err
	}
	return s.PortfolioRepo.GetByPartnerID(ctx, partner.ID)
}
