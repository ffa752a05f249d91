package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lenslink/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE slug = ?`, category.Slug).Scan(&count); err != nil {
		return models.Category{}, err
	}
	if count > 0 {
		return models.Category{}, models.ErrDuplicateSlug
	}

	query := `
		INSERT INTO categories (name, slug, description, icon_url, cover_image_url, is_active, display_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`
	res, err := r.DB.ExecContext(ctx, query,
		category.Name, category.Slug, category.Description, category.IconURL, category.CoverImageURL,
		category.IsActive, category.DisplayOrder)
	if err != nil {
		return models.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Category{}, err
	}
	category.ID = int(id)
	category.CreatedAt = time.Now()
	return category, nil
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT id, name, slug, description, icon_url, cover_image_url, is_active, display_order, created_at, updated_at
		FROM categories
		ORDER BY display_order, name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IconURL, &c.CoverImageURL,
			&c.IsActive, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	var c models.Category
	query := `
		SELECT id, name, slug, description, icon_url, cover_image_url, is_active, display_order, created_at, updated_at
		FROM categories WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.IconURL, &c.CoverImageURL,
		&c.IsActive, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, models.ErrCategoryNotFound
	}
	return c, err
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	query := `
		UPDATE categories
		SET name = ?, slug = ?, description = ?, icon_url = ?, cover_image_url = ?, is_active = ?, display_order = ?, updated_at = NOW()
		WHERE id = ?
	`
	res, err := r.DB.ExecContext(ctx, query,
		category.Name, category.Slug, category.Description, category.IconURL, category.CoverImageURL,
		category.IsActive, category.DisplayOrder, category.ID)
	if err != nil {
		return models.Category{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetCategoryByID(ctx, category.ID); err != nil {
			return models.Category{}, err
		}
	}
	return r.GetCategoryByID(ctx, category.ID)
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}
