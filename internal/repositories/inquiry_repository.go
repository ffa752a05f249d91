package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"lenslink/internal/leads/fsm"
	"lenslink/internal/models"
)

type InquiryRepository struct {
	DB *sql.DB
}

func (r *InquiryRepository) CreateInquiry(ctx context.Context, inq models.Inquiry) (models.Inquiry, error) {
	requirements, err := json.Marshal(inq.Requirements)
	if err != nil {
		return models.Inquiry{}, err
	}
	query := `
		INSERT INTO inquiries
			(client_id, category, title, description, event_date,
			 city, state, pincode, address,
			 budget_min, budget_max, budget_currency,
			 reference_image_url, requirements, status, lead_match_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NOW())
	`
	res, err := r.DB.ExecContext(ctx, query,
		inq.ClientID, string(inq.Category), inq.Title, inq.Description, inq.EventDate,
		inq.Location.City, inq.Location.State, inq.Location.Pincode, inq.Location.Address,
		inq.Budget.Min, inq.Budget.Max, inq.Budget.Currency,
		inq.ReferenceImageURL, string(requirements), models.InquiryStatusNew,
	)
	if err != nil {
		return models.Inquiry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Inquiry{}, err
	}
	inq.ID = int(id)
	inq.Status = models.InquiryStatusNew
	inq.CreatedAt = time.Now()
	return inq, nil
}

const inquiryColumns = `
	id, client_id, category, title, description, event_date,
	city, state, pincode, address,
	budget_min, budget_max, budget_currency,
	reference_image_url, requirements, status, booked_partner_id, lead_match_score,
	created_at, updated_at`

func (r *InquiryRepository) scanInquiry(scan func(dest ...interface{}) error) (models.Inquiry, error) {
	var inq models.Inquiry
	var requirements []byte
	err := scan(
		&inq.ID, &inq.ClientID, &inq.Category, &inq.Title, &inq.Description, &inq.EventDate,
		&inq.Location.City, &inq.Location.State, &inq.Location.Pincode, &inq.Location.Address,
		&inq.Budget.Min, &inq.Budget.Max, &inq.Budget.Currency,
		&inq.ReferenceImageURL, &requirements, &inq.Status, &inq.BookedPartner, &inq.LeadMatchScore,
		&inq.CreatedAt, &inq.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Inquiry{}, models.ErrInquiryNotFound
	}
	if err != nil {
		return models.Inquiry{}, err
	}
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &inq.Requirements); err != nil {
			return models.Inquiry{}, err
		}
	}
	return inq, nil
}

// GetInquiryByID loads the full aggregate: row, assigned partner ids in
// assignment order, and responses.
func (r *InquiryRepository) GetInquiryByID(ctx context.Context, id int) (models.Inquiry, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = ?`, id)
	inq, err := r.scanInquiry(row.Scan)
	if err != nil {
		return models.Inquiry{}, err
	}
	return r.loadChildren(ctx, inq)
}

func (r *InquiryRepository) loadChildren(ctx context.Context, inq models.Inquiry) (models.Inquiry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT partner_id FROM inquiry_partners WHERE inquiry_id = ? ORDER BY position`, inq.ID)
	if err != nil {
		return models.Inquiry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var pid int
		if err := rows.Scan(&pid); err != nil {
			return models.Inquiry{}, err
		}
		inq.AssignedPartners = append(inq.AssignedPartners, pid)
	}
	if err := rows.Err(); err != nil {
		return models.Inquiry{}, err
	}

	responses, err := r.responsesFor(ctx, inq.ID)
	if err != nil {
		return models.Inquiry{}, err
	}
	inq.Responses = responses
	return inq, nil
}

func (r *InquiryRepository) responsesFor(ctx context.Context, inquiryID int) ([]models.Response, error) {
	query := `
		SELECT id, partner_id, message, quote_amount, quote_description, quote_valid_until, status, created_at
		FROM inquiry_responses
		WHERE inquiry_id = ?
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, inquiryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []models.Response
	for rows.Next() {
		var resp models.Response
		var amount sql.NullFloat64
		var description sql.NullString
		var validUntil sql.NullTime
		if err := rows.Scan(&resp.ID, &resp.PartnerID, &resp.Message, &amount, &description, &validUntil, &resp.Status, &resp.CreatedAt); err != nil {
			return nil, err
		}
		if amount.Valid {
			resp.Quotation = &models.Quotation{Amount: amount.Float64, Description: description.String}
			if validUntil.Valid {
				t := validUntil.Time
				resp.Quotation.ValidUntil = &t
			}
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (r *InquiryRepository) ListByClient(ctx context.Context, clientID int) ([]models.Inquiry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE client_id = ? ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []models.Inquiry
	for rows.Next() {
		inq, err := r.scanInquiry(rows.Scan)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range inquiries {
		inquiries[i], err = r.loadChildren(ctx, inquiries[i])
		if err != nil {
			return nil, err
		}
	}
	return inquiries, nil
}

// ListAssignedToPartner returns the partner's leads, newest first, narrowed
// by the optional filter.
func (r *InquiryRepository) ListAssignedToPartner(ctx context.Context, partnerID int, filter models.LeadFilter) ([]models.Inquiry, error) {
	query := `
		SELECT ` + inquiryColumns + `
		FROM inquiries
		WHERE id IN (SELECT inquiry_id FROM inquiry_partners WHERE partner_id = ?)
	`
	args := []interface{}{partnerID}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.City != "" {
		query += ` AND city = ?`
		args = append(args, filter.City)
	}
	if filter.StartDate != nil {
		query += ` AND event_date >= ?`
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND event_date <= ?`
		args = append(args, *filter.EndDate)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []models.Inquiry
	for rows.Next() {
		inq, err := r.scanInquiry(rows.Scan)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range inquiries {
		inquiries[i], err = r.loadChildren(ctx, inquiries[i])
		if err != nil {
			return nil, err
		}
	}
	return inquiries, nil
}

// SaveAssignment records the matcher's output: the ordered partner set, the
// new status and the match score.
func (r *InquiryRepository) SaveAssignment(ctx context.Context, inquiryID int, partnerIDs []int, status string, matchScore float64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM inquiry_partners WHERE inquiry_id = ?`, inquiryID); err != nil {
		return err
	}
	for pos, pid := range partnerIDs {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO inquiry_partners (inquiry_id, partner_id, position) VALUES (?, ?, ?)`,
			inquiryID, pid, pos); err != nil {
			return err
		}
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE inquiries SET status = ?, lead_match_score = ?, updated_at = NOW() WHERE id = ?`,
		status, matchScore, inquiryID)
	return err
}

// UpsertResponse implements the at-most-one-response-per-partner contract:
// a repeat response overwrites the message and refreshes the timestamp; the
// quotation is only replaced when a new one is supplied.
func (r *InquiryRepository) UpsertResponse(ctx context.Context, inquiryID int, resp models.Response) (models.Response, error) {
	var existingID int
	err := r.DB.QueryRowContext(ctx,
		`SELECT id FROM inquiry_responses WHERE inquiry_id = ? AND partner_id = ?`,
		inquiryID, resp.PartnerID).Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		now := time.Now()
		query := `
			INSERT INTO inquiry_responses
				(inquiry_id, partner_id, message, quote_amount, quote_description, quote_valid_until, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		var amount, description, validUntil interface{}
		if resp.Quotation != nil {
			amount = resp.Quotation.Amount
			description = resp.Quotation.Description
			validUntil = resp.Quotation.ValidUntil
		}
		res, err := r.DB.ExecContext(ctx, query,
			inquiryID, resp.PartnerID, resp.Message, amount, description, validUntil,
			models.ResponseStatusPending, now)
		if err != nil {
			return models.Response{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return models.Response{}, err
		}
		resp.ID = int(id)
		resp.Status = models.ResponseStatusPending
		resp.CreatedAt = now
		return resp, nil
	case err != nil:
		return models.Response{}, err
	}

	now := time.Now()
	if resp.Quotation != nil {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE inquiry_responses
			SET message = ?, quote_amount = ?, quote_description = ?, quote_valid_until = ?, created_at = ?
			WHERE id = ?`,
			resp.Message, resp.Quotation.Amount, resp.Quotation.Description, resp.Quotation.ValidUntil, now, existingID)
	} else {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE inquiry_responses
			SET message = ?, created_at = ?
			WHERE id = ?`,
			resp.Message, now, existingID)
	}
	if err != nil {
		return models.Response{}, err
	}
	resp.ID = existingID
	resp.CreatedAt = now
	responses, err := r.responsesFor(ctx, inquiryID)
	if err != nil {
		return models.Response{}, err
	}
	for _, stored := range responses {
		if stored.ID == existingID {
			return stored, nil
		}
	}
	return resp, nil
}

func (r *InquiryRepository) SetBooking(ctx context.Context, inquiryID, partnerID int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE inquiries SET booked_partner_id = ?, status = ?, updated_at = NOW() WHERE id = ?`,
		partnerID, models.InquiryStatusBooked, inquiryID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrInquiryNotFound
	}
	return nil
}

// TransitionStatus moves the inquiry between two known statuses, failing
// if another writer got there first.
func (r *InquiryRepository) TransitionStatus(ctx context.Context, inquiryID int, from, to string) error {
	return fsm.Apply(ctx, r.DB, inquiryID, from, to)
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, inquiryID int, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE inquiries SET status = ?, updated_at = NOW() WHERE id = ?`, status, inquiryID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) CountAssignedToPartner(ctx context.Context, partnerID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inquiry_partners WHERE partner_id = ?`, partnerID).Scan(&count)
	return count, err
}

func (r *InquiryRepository) CountRespondedByPartner(ctx context.Context, partnerID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT inquiry_id) FROM inquiry_responses WHERE partner_id = ?`, partnerID).Scan(&count)
	return count, err
}

func (r *InquiryRepository) CountBookedForPartner(ctx context.Context, partnerID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inquiries WHERE booked_partner_id = ?`, partnerID).Scan(&count)
	return count, err
}

func (r *InquiryRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&count)
	return count, err
}

func (r *InquiryRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries WHERE status = ?`, status).Scan(&count)
	return count, err
}

func (r *InquiryRepository) groupCounts(ctx context.Context, query string, args ...interface{}) ([]models.BucketCount, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.BucketCount
	for rows.Next() {
		var b models.BucketCount
		if err := rows.Scan(&b.Key, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *InquiryRepository) CountByCategory(ctx context.Context) ([]models.BucketCount, error) {
	return r.groupCounts(ctx,
		`SELECT category, COUNT(*) FROM inquiries GROUP BY category ORDER BY COUNT(*) DESC`)
}

func (r *InquiryRepository) CountGroupedByStatus(ctx context.Context) ([]models.BucketCount, error) {
	return r.groupCounts(ctx,
		`SELECT status, COUNT(*) FROM inquiries GROUP BY status ORDER BY COUNT(*) DESC`)
}

func (r *InquiryRepository) TopCities(ctx context.Context, limit int) ([]models.BucketCount, error) {
	return r.groupCounts(ctx,
		`SELECT city, COUNT(*) FROM inquiries GROUP BY city ORDER BY COUNT(*) DESC LIMIT ?`, limit)
}
