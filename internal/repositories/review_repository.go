package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lenslink/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if rev.InquiryID != nil {
		var count int
		if err := r.DB.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM reviews WHERE client_id = ? AND inquiry_id = ?`,
			rev.ClientID, *rev.InquiryID).Scan(&count); err != nil {
			return models.Review{}, err
		}
		if count > 0 {
			return models.Review{}, models.ErrAlreadyReviewed
		}
	}

	query := `
		INSERT INTO reviews (partner_id, client_id, inquiry_id, rating, title, content, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`
	res, err := r.DB.ExecContext(ctx, query,
		rev.PartnerID, rev.ClientID, rev.InquiryID, rev.Rating, rev.Title, rev.Content, models.ReviewStatusPending)
	if err != nil {
		return models.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}
	rev.ID = int(id)
	rev.Status = models.ReviewStatusPending
	rev.CreatedAt = time.Now()
	return rev, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	var rev models.Review
	query := `
		SELECT id, partner_id, client_id, inquiry_id, rating, title, content, reply,
		       status, moderation_comment, moderated_by, moderated_at, created_at, updated_at
		FROM reviews WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rev.ID, &rev.PartnerID, &rev.ClientID, &rev.InquiryID, &rev.Rating, &rev.Title, &rev.Content, &rev.Reply,
		&rev.Status, &rev.ModerationComment, &rev.ModeratedBy, &rev.ModeratedAt, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Review{}, models.ErrReviewNotFound
	}
	return rev, err
}

// GetApprovedByPartnerID is the public review listing for a partner page.
func (r *ReviewRepository) GetApprovedByPartnerID(ctx context.Context, partnerID int) ([]models.Review, error) {
	query := `
		SELECT r.id, r.partner_id, r.client_id, r.inquiry_id, r.rating, r.title, r.content, r.reply,
		       r.status, r.created_at, r.updated_at, u.name
		FROM reviews r
		JOIN users u ON r.client_id = u.id
		WHERE r.partner_id = ? AND r.status = ?
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, partnerID, models.ReviewStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.PartnerID, &rev.ClientID, &rev.InquiryID, &rev.Rating,
			&rev.Title, &rev.Content, &rev.Reply, &rev.Status, &rev.CreatedAt, &rev.UpdatedAt, &rev.ClientName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) ListByStatus(ctx context.Context, status string) ([]models.Review, error) {
	query := `
		SELECT id, partner_id, client_id, inquiry_id, rating, title, content, reply,
		       status, moderation_comment, moderated_by, moderated_at, created_at, updated_at
		FROM reviews
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.PartnerID, &rev.ClientID, &rev.InquiryID, &rev.Rating,
			&rev.Title, &rev.Content, &rev.Reply, &rev.Status, &rev.ModerationComment,
			&rev.ModeratedBy, &rev.ModeratedAt, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// SetReply stores the partner's single reply to a review.
func (r *ReviewRepository) SetReply(ctx context.Context, reviewID int, reply string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE reviews SET reply = ?, updated_at = NOW() WHERE id = ?`, reply, reviewID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

// Moderate records an admin decision on the review.
func (r *ReviewRepository) Moderate(ctx context.Context, reviewID int, status, comment string, moderatorID int) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE reviews
		SET status = ?, moderation_comment = ?, moderated_by = ?, moderated_at = NOW(), updated_at = NOW()
		WHERE id = ?`,
		status, comment, moderatorID, reviewID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}
