package repositories

import (
	"context"
	"database/sql"

	"lenslink/internal/models"
)

type FCMTokenRepository struct {
	DB *sql.DB
}

// SaveToken registers or replaces the device token for a user.
func (r *FCMTokenRepository) SaveToken(ctx context.Context, token models.FCMToken) error {
	query := `
		INSERT INTO fcm_tokens (user_id, token)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token)
	`
	_, err := r.DB.ExecContext(ctx, query, token.UserID, token.Token)
	return err
}

// TokensForUsers returns the registered device tokens for the given users.
// Users without a token are simply absent from the result.
func (r *FCMTokenRepository) TokensForUsers(ctx context.Context, userIDs []int) ([]models.FCMToken, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query := `SELECT user_id, token FROM fcm_tokens WHERE user_id IN (?` // expanded below
	args := []interface{}{userIDs[0]}
	for _, id := range userIDs[1:] {
		query += `, ?`
		args = append(args, id)
	}
	query += `)`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []models.FCMToken
	for rows.Next() {
		var t models.FCMToken
		if err := rows.Scan(&t.UserID, &t.Token); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *FCMTokenRepository) DeleteToken(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM fcm_tokens WHERE user_id = ?`, userID)
	return err
}
