package repositories

import (
	"context"
	"database/sql"
)

// getPartnerRatingAggregates recomputes a partner's average rating and
// approved-review count from the reviews table.
func getPartnerRatingAggregates(ctx context.Context, db *sql.DB, partnerID int) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE partner_id = ? AND status = 'approved'
	`
	var avg float64
	var count int
	if err := db.QueryRowContext(ctx, query, partnerID).Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

// RefreshPartnerRating writes the recomputed aggregates back onto the
// partner row. Called after a review is approved or removed.
func (r *ReviewRepository) RefreshPartnerRating(ctx context.Context, partnerID int) error {
	avg, count, err := getPartnerRatingAggregates(ctx, r.DB, partnerID)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE partners SET rating = ?, total_reviews = ?, updated_at = NOW() WHERE id = ?`,
		avg, count, partnerID)
	return err
}
