package fsm

import (
	"context"
	"database/sql"
	"errors"

	"lenslink/internal/models"
)

// transitions encodes the inquiry lifecycle:
// new -> assigned -> responded -> booked -> completed, with cancellation
// possible from any non-terminal state and booking possible from any
// non-terminal state (a client may book a partner that never responded).
var transitions = map[string]map[string]struct{}{
	models.InquiryStatusNew: {
		models.InquiryStatusAssigned:  {},
		models.InquiryStatusBooked:    {},
		models.InquiryStatusCancelled: {},
	},
	models.InquiryStatusAssigned: {
		models.InquiryStatusResponded: {},
		models.InquiryStatusBooked:    {},
		models.InquiryStatusCancelled: {},
	},
	models.InquiryStatusResponded: {
		models.InquiryStatusBooked:    {},
		models.InquiryStatusCancelled: {},
	},
	models.InquiryStatusBooked: {
		models.InquiryStatusCompleted: {},
		models.InquiryStatusCancelled: {},
	},
	models.InquiryStatusCompleted: {},
	models.InquiryStatusCancelled: {},
}

// IsValid reports whether status is a known inquiry status.
func IsValid(status string) bool {
	_, ok := transitions[status]
	return ok
}

// IsTerminal reports whether status permits no further transitions.
func IsTerminal(status string) bool {
	allowed, ok := transitions[status]
	return ok && len(allowed) == 0
}

// CanTransition returns whether an inquiry can move from the current status
// to the target status. Same-status transitions are allowed so repeated
// events stay idempotent.
func CanTransition(from, to string) bool {
	if from == to {
		return IsValid(from)
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// Apply updates an inquiry status using optimistic validation: the row is
// only touched while it still holds the expected current status, so two
// racing writers cannot both win.
func Apply(ctx context.Context, db *sql.DB, inquiryID int, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return errors.New("invalid status transition")
	}
	if fromStatus == toStatus {
		return nil
	}
	res, err := db.ExecContext(ctx, `UPDATE inquiries SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`, toStatus, inquiryID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
