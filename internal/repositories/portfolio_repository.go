package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"lenslink/internal/models"
)

type PortfolioRepository struct {
	DB *sql.DB
}

func (r *PortfolioRepository) GetByPartnerID(ctx context.Context, partnerID int) (models.Portfolio, error) {
	var p models.Portfolio
	query := `SELECT id, partner_id, title, description, cover_image, created_at, updated_at FROM portfolios WHERE partner_id = ?`
	err := r.DB.QueryRowContext(ctx, query, partnerID).Scan(
		&p.ID, &p.PartnerID, &p.Title, &p.Description, &p.CoverImage, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Portfolio{}, models.ErrPortfolioNotFound
	}
	if err != nil {
		return models.Portfolio{}, err
	}
	items, err := r.itemsFor(ctx, p.ID)
	if err != nil {
		return models.Portfolio{}, err
	}
	p.Items = items
	return p, nil
}

func (r *PortfolioRepository) itemsFor(ctx context.Context, portfolioID int) ([]models.PortfolioItem, error) {
	query := `
		SELECT id, title, description, image_url, category, tags, sort_order, featured, location, date_shot
		FROM portfolio_items
		WHERE portfolio_id = ?
		ORDER BY sort_order, id
	`
	rows, err := r.DB.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PortfolioItem
	for rows.Next() {
		var item models.PortfolioItem
		var tags []byte
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.Category,
			&tags, &item.Order, &item.Featured, &item.Location, &item.DateShot); err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &item.Tags); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateOrUpdate upserts the portfolio shell (title, description, cover)
// without touching the items.
func (r *PortfolioRepository) CreateOrUpdate(ctx context.Context, portfolio models.Portfolio) (models.Portfolio, error) {
	existing, err := r.GetByPartnerID(ctx, portfolio.PartnerID)
	if err != nil && !errors.Is(err, models.ErrPortfolioNotFound) {
		return models.Portfolio{}, err
	}
	if errors.Is(err, models.ErrPortfolioNotFound) {
		if portfolio.Title == "" {
			portfolio.Title = "My Portfolio"
		}
		res, err := r.DB.ExecContext(ctx,
			`INSERT INTO portfolios (partner_id, title, description, cover_image, created_at) VALUES (?, ?, ?, ?, NOW())`,
			portfolio.PartnerID, portfolio.Title, portfolio.Description, portfolio.CoverImage)
		if err != nil {
			return models.Portfolio{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return models.Portfolio{}, err
		}
		portfolio.ID = int(id)
		portfolio.Items = []models.PortfolioItem{}
		portfolio.CreatedAt = time.Now()
		return portfolio, nil
	}

	if portfolio.Title != "" {
		existing.Title = portfolio.Title
	}
	if portfolio.Description != "" {
		existing.Description = portfolio.Description
	}
	if portfolio.CoverImage != "" {
		existing.CoverImage = portfolio.CoverImage
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE portfolios SET title = ?, description = ?, cover_image = ?, updated_at = NOW() WHERE id = ?`,
		existing.Title, existing.Description, existing.CoverImage, existing.ID)
	if err != nil {
		return models.Portfolio{}, err
	}
	return existing, nil
}

// AddItem appends the item at the end of the sequence: its order is the
// current item count.
func (r *PortfolioRepository) AddItem(ctx context.Context, portfolioID int, item models.PortfolioItem) (models.PortfolioItem, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM portfolio_items WHERE portfolio_id = ?`, portfolioID).Scan(&count); err != nil {
		return models.PortfolioItem{}, err
	}
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return models.PortfolioItem{}, err
	}
	query := `
		INSERT INTO portfolio_items
			(portfolio_id, title, description, image_url, category, tags, sort_order, featured, location, date_shot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.DB.ExecContext(ctx, query,
		portfolioID, item.Title, item.Description, item.ImageURL, string(item.Category),
		string(tags), count, item.Featured, item.Location, item.DateShot)
	if err != nil {
		return models.PortfolioItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.PortfolioItem{}, err
	}
	item.ID = int(id)
	item.Order = count
	return item, nil
}

func (r *PortfolioRepository) UpdateItem(ctx context.Context, portfolioID int, item models.PortfolioItem) (models.PortfolioItem, error) {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return models.PortfolioItem{}, err
	}
	query := `
		UPDATE portfolio_items
		SET title = ?, description = ?, image_url = ?, category = ?, tags = ?, featured = ?, location = ?, date_shot = ?
		WHERE id = ? AND portfolio_id = ?
	`
	res, err := r.DB.ExecContext(ctx, query,
		item.Title, item.Description, item.ImageURL, string(item.Category), string(tags),
		item.Featured, item.Location, item.DateShot, item.ID, portfolioID)
	if err != nil {
		return models.PortfolioItem{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM portfolio_items WHERE id = ? AND portfolio_id = ?`, item.ID, portfolioID).Scan(&exists); err != nil {
			return models.PortfolioItem{}, err
		}
		if exists == 0 {
			return models.PortfolioItem{}, models.ErrPortfolioItemNotFound
		}
	}
	return item, nil
}

// DeleteItem removes the item and renumbers the remaining ones so their
// orders form a contiguous 0-based sequence in their current relative order.
func (r *PortfolioRepository) DeleteItem(ctx context.Context, portfolioID, itemID int) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM portfolio_items WHERE id = ? AND portfolio_id = ?`, itemID, portfolioID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrPortfolioItemNotFound
	}
	return r.renumber(ctx, portfolioID, nil)
}

// Reorder applies the (item, order) pairs and stably re-sorts the whole
// collection; unknown item ids are ignored.
func (r *PortfolioRepository) Reorder(ctx context.Context, portfolioID int, orders []models.ItemOrder) error {
	overrides := make(map[int]int, len(orders))
	for _, o := range orders {
		overrides[o.ItemID] = o.Order
	}
	return r.renumber(ctx, portfolioID, overrides)
}

// renumber rewrites sort_order as 0..n-1. When overrides are given they are
// applied first; the sort is stable so ties keep their current relative
// order.
func (r *PortfolioRepository) renumber(ctx context.Context, portfolioID int, overrides map[int]int) error {
	items, err := r.itemsFor(ctx, portfolioID)
	if err != nil {
		return err
	}
	for _, item := range renumberItems(items, overrides) {
		if _, err := r.DB.ExecContext(ctx,
			`UPDATE portfolio_items SET sort_order = ? WHERE id = ?`, item.Order, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// renumberItems is the ordering rule: apply overrides, sort stably by the
// resulting order values, then assign 0..n-1.
func renumberItems(items []models.PortfolioItem, overrides map[int]int) []models.PortfolioItem {
	if overrides != nil {
		for i := range items {
			if order, ok := overrides[items[i].ID]; ok {
				items[i].Order = order
			}
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	}
	for i := range items {
		items[i].Order = i
	}
	return items
}

func (r *PortfolioRepository) CountItems(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM portfolio_items`).Scan(&count)
	return count, err
}
