package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lenslink/internal/models"
)

type PartnerRepository struct {
	DB *sql.DB
}

func (r *PartnerRepository) CreatePartner(ctx context.Context, partner models.Partner) (models.Partner, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM partners WHERE user_id = ?`, partner.UserID).Scan(&count); err != nil {
		return models.Partner{}, err
	}
	if count > 0 {
		return models.Partner{}, models.ErrPartnerProfileExists
	}

	query := `
		INSERT INTO partners
			(user_id, business_name, description, street, city, state, pincode, country,
			 contact_email, contact_phone, verification_status, featured, rating, total_reviews,
			 years_of_experience, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, ?, NOW())
	`
	res, err := r.DB.ExecContext(ctx, query,
		partner.UserID, partner.BusinessName, partner.Description,
		partner.Address.Street, partner.Address.City, partner.Address.State, partner.Address.Pincode, partner.Address.Country,
		partner.ContactEmail, partner.ContactPhone, models.VerificationPending, partner.YearsOfExp,
	)
	if err != nil {
		return models.Partner{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Partner{}, err
	}
	partner.ID = int(id)
	partner.Verification = models.Verification{Status: models.VerificationPending}
	partner.CreatedAt = time.Now()

	if err := r.replaceCategories(ctx, partner.ID, partner.Categories); err != nil {
		return models.Partner{}, err
	}
	if err := r.replaceServices(ctx, partner.ID, partner.Services); err != nil {
		return models.Partner{}, err
	}
	return partner, nil
}

func (r *PartnerRepository) replaceCategories(ctx context.Context, partnerID int, categories []models.ServiceCategory) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM partner_categories WHERE partner_id = ?`, partnerID); err != nil {
		return err
	}
	for _, c := range categories {
		if _, err := r.DB.ExecContext(ctx, `INSERT INTO partner_categories (partner_id, category) VALUES (?, ?)`, partnerID, string(c)); err != nil {
			return err
		}
	}
	return nil
}

func (r *PartnerRepository) replaceServices(ctx context.Context, partnerID int, services []models.PartnerService) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM partner_services WHERE partner_id = ?`, partnerID); err != nil {
		return err
	}
	for _, s := range services {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO partner_services (partner_id, name, description, price_min, price_max) VALUES (?, ?, ?, ?, ?)`,
			partnerID, s.Name, s.Description, s.PriceMin, s.PriceMax); err != nil {
			return err
		}
	}
	return nil
}

func (r *PartnerRepository) scanPartner(row *sql.Row) (models.Partner, error) {
	var p models.Partner
	err := row.Scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.Description,
		&p.Address.Street, &p.Address.City, &p.Address.State, &p.Address.Pincode, &p.Address.Country,
		&p.ContactEmail, &p.ContactPhone,
		&p.Verification.Status, &p.Verification.Comment, &p.Verification.UpdatedBy, &p.Verification.UpdatedAt,
		&p.Featured, &p.Rating, &p.TotalReviews, &p.YearsOfExp, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Partner{}, models.ErrPartnerNotFound
	}
	if err != nil {
		return models.Partner{}, err
	}
	return p, nil
}

const partnerColumns = `
	id, user_id, business_name, description,
	street, city, state, pincode, country,
	contact_email, contact_phone,
	verification_status, verification_comment, verified_by, verified_at,
	featured, rating, total_reviews, years_of_experience, created_at, updated_at`

func (r *PartnerRepository) GetPartnerByID(ctx context.Context, id int) (models.Partner, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = ?`, id)
	partner, err := r.scanPartner(row)
	if err != nil {
		return models.Partner{}, err
	}
	return r.loadChildren(ctx, partner)
}

func (r *PartnerRepository) GetPartnerByUserID(ctx context.Context, userID int) (models.Partner, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+partnerColumns+` FROM partners WHERE user_id = ?`, userID)
	partner, err := r.scanPartner(row)
	if err != nil {
		return models.Partner{}, err
	}
	return r.loadChildren(ctx, partner)
}

func (r *PartnerRepository) loadChildren(ctx context.Context, partner models.Partner) (models.Partner, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT category FROM partner_categories WHERE partner_id = ? ORDER BY category`, partner.ID)
	if err != nil {
		return models.Partner{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return models.Partner{}, err
		}
		partner.Categories = append(partner.Categories, models.ServiceCategory(c))
	}
	if err := rows.Err(); err != nil {
		return models.Partner{}, err
	}

	srows, err := r.DB.QueryContext(ctx, `SELECT name, description, price_min, price_max FROM partner_services WHERE partner_id = ? ORDER BY id`, partner.ID)
	if err != nil {
		return models.Partner{}, err
	}
	defer srows.Close()
	for srows.Next() {
		var s models.PartnerService
		if err := srows.Scan(&s.Name, &s.Description, &s.PriceMin, &s.PriceMax); err != nil {
			return models.Partner{}, err
		}
		partner.Services = append(partner.Services, s)
	}
	return partner, srows.Err()
}

func (r *PartnerRepository) UpdatePartner(ctx context.Context, partner models.Partner) (models.Partner, error) {
	query := `
		UPDATE partners
		SET business_name = ?, description = ?, street = ?, city = ?, state = ?, pincode = ?, country = ?,
		    contact_email = ?, contact_phone = ?, years_of_experience = ?, updated_at = NOW()
		WHERE id = ?
	`
	res, err := r.DB.ExecContext(ctx, query,
		partner.BusinessName, partner.Description,
		partner.Address.Street, partner.Address.City, partner.Address.State, partner.Address.Pincode, partner.Address.Country,
		partner.ContactEmail, partner.ContactPhone, partner.YearsOfExp, partner.ID,
	)
	if err != nil {
		return models.Partner{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetPartnerByID(ctx, partner.ID); err != nil {
			return models.Partner{}, err
		}
	}
	if partner.Categories != nil {
		if err := r.replaceCategories(ctx, partner.ID, partner.Categories); err != nil {
			return models.Partner{}, err
		}
	}
	if partner.Services != nil {
		if err := r.replaceServices(ctx, partner.ID, partner.Services); err != nil {
			return models.Partner{}, err
		}
	}
	return r.GetPartnerByID(ctx, partner.ID)
}

// FindEligible returns approved partners serving the category in the given
// city, ordered by rating descending then id so assignment is reproducible.
func (r *PartnerRepository) FindEligible(ctx context.Context, category models.ServiceCategory, city string, limit int) ([]models.Partner, error) {
	query := `
		SELECT p.id, p.user_id, p.business_name, p.city, p.rating, p.total_reviews
		FROM partners p
		JOIN partner_categories pc ON pc.partner_id = p.id
		WHERE pc.category = ? AND p.city = ? AND p.verification_status = ?
		ORDER BY p.rating DESC, p.id ASC
		LIMIT ?
	`
	rows, err := r.DB.QueryContext(ctx, query, string(category), city, models.VerificationApproved, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []models.Partner
	for rows.Next() {
		var p models.Partner
		if err := rows.Scan(&p.ID, &p.UserID, &p.BusinessName, &p.Address.City, &p.Rating, &p.TotalReviews); err != nil {
			return nil, err
		}
		p.Categories = []models.ServiceCategory{category}
		p.Verification.Status = models.VerificationApproved
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

func (r *PartnerRepository) UpdateVerificationStatus(ctx context.Context, partnerID int, v models.Verification) error {
	query := `
		UPDATE partners
		SET verification_status = ?, verification_comment = ?, verified_by = ?, verified_at = NOW(), updated_at = NOW()
		WHERE id = ?
	`
	res, err := r.DB.ExecContext(ctx, query, v.Status, v.Comment, v.UpdatedBy, partnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrPartnerNotFound
	}
	return nil
}

func (r *PartnerRepository) ListByVerificationStatus(ctx context.Context, status string) ([]models.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE verification_status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY verified_at DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []models.Partner
	for rows.Next() {
		var p models.Partner
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.BusinessName, &p.Description,
			&p.Address.Street, &p.Address.City, &p.Address.State, &p.Address.Pincode, &p.Address.Country,
			&p.ContactEmail, &p.ContactPhone,
			&p.Verification.Status, &p.Verification.Comment, &p.Verification.UpdatedBy, &p.Verification.UpdatedAt,
			&p.Featured, &p.Rating, &p.TotalReviews, &p.YearsOfExp, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

// UserIDsForPartners maps partner ids to their account user ids. Partners
// that do not exist are simply absent from the result.
func (r *PartnerRepository) UserIDsForPartners(ctx context.Context, partnerIDs []int) (map[int]int, error) {
	if len(partnerIDs) == 0 {
		return map[int]int{}, nil
	}
	query := `SELECT id, user_id FROM partners WHERE id IN (?`
	args := []interface{}{partnerIDs[0]}
	for _, id := range partnerIDs[1:] {
		query += `, ?`
		args = append(args, id)
	}
	query += `)`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make(map[int]int, len(partnerIDs))
	for rows.Next() {
		var partnerID, userID int
		if err := rows.Scan(&partnerID, &userID); err != nil {
			return nil, err
		}
		users[partnerID] = userID
	}
	return users, rows.Err()
}

func (r *PartnerRepository) CountPendingVerifications(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM partners WHERE verification_status = ?`, models.VerificationPending).Scan(&count)
	return count, err
}
