package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lenslink/internal/models"
)

type LocationRepository struct {
	DB *sql.DB
}

func (r *LocationRepository) CreateLocation(ctx context.Context, loc models.Location) (models.Location, error) {
	if loc.Country == "" {
		loc.Country = "India"
	}
	var count int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM locations WHERE city = ? AND state = ? AND country = ?`,
		loc.City, loc.State, loc.Country).Scan(&count); err != nil {
		return models.Location{}, err
	}
	if count > 0 {
		return models.Location{}, models.ErrDuplicateLocation
	}

	query := `
		INSERT INTO locations (city, state, country, pincode, latitude, longitude, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`
	res, err := r.DB.ExecContext(ctx, query,
		loc.City, loc.State, loc.Country, loc.Pincode, loc.Latitude, loc.Longitude, loc.IsActive)
	if err != nil {
		return models.Location{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Location{}, err
	}
	loc.ID = int(id)
	loc.CreatedAt = time.Now()
	return loc, nil
}

func (r *LocationRepository) GetLocations(ctx context.Context) ([]models.Location, error) {
	query := `
		SELECT id, city, state, country, pincode, latitude, longitude, is_active, created_at, updated_at
		FROM locations
		ORDER BY state, city
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.City, &loc.State, &loc.Country, &loc.Pincode,
			&loc.Latitude, &loc.Longitude, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) GetLocationByID(ctx context.Context, id int) (models.Location, error) {
	var loc models.Location
	query := `
		SELECT id, city, state, country, pincode, latitude, longitude, is_active, created_at, updated_at
		FROM locations WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&loc.ID, &loc.City, &loc.State, &loc.Country, &loc.Pincode,
		&loc.Latitude, &loc.Longitude, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Location{}, models.ErrLocationNotFound
	}
	return loc, err
}

func (r *LocationRepository) UpdateLocation(ctx context.Context, loc models.Location) (models.Location, error) {
	query := `
		UPDATE locations
		SET city = ?, state = ?, country = ?, pincode = ?, latitude = ?, longitude = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?
	`
	res, err := r.DB.ExecContext(ctx, query,
		loc.City, loc.State, loc.Country, loc.Pincode, loc.Latitude, loc.Longitude, loc.IsActive, loc.ID)
	if err != nil {
		return models.Location{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetLocationByID(ctx, loc.ID); err != nil {
			return models.Location{}, err
		}
	}
	return r.GetLocationByID(ctx, loc.ID)
}

func (r *LocationRepository) DeleteLocation(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrLocationNotFound
	}
	return nil
}
