package fsm

import (
	"testing"

	"lenslink/internal/models"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(models.InquiryStatusNew, models.InquiryStatusAssigned) {
		t.Fatal("expected new -> assigned to be allowed")
	}
	if !CanTransition(models.InquiryStatusAssigned, models.InquiryStatusResponded) {
		t.Fatal("expected assigned -> responded to be allowed")
	}
	if !CanTransition(models.InquiryStatusResponded, models.InquiryStatusBooked) {
		t.Fatal("expected responded -> booked to be allowed")
	}
	if !CanTransition(models.InquiryStatusBooked, models.InquiryStatusCompleted) {
		t.Fatal("expected booked -> completed to be allowed")
	}
	if CanTransition(models.InquiryStatusNew, models.InquiryStatusResponded) {
		t.Fatal("unexpected new -> responded allowed")
	}
	if CanTransition(models.InquiryStatusCompleted, models.InquiryStatusCancelled) {
		t.Fatal("unexpected transition out of completed")
	}
	if CanTransition(models.InquiryStatusCancelled, models.InquiryStatusNew) {
		t.Fatal("unexpected transition out of cancelled")
	}
	if !CanTransition(models.InquiryStatusAssigned, models.InquiryStatusAssigned) {
		t.Fatal("expected same-status transition to be idempotent")
	}
	if CanTransition("bogus", models.InquiryStatusNew) {
		t.Fatal("unknown status should not transition")
	}
}

func TestBookingAllowedWithoutResponse(t *testing.T) {
	// A client may book straight from new or assigned; no response required.
	if !CanTransition(models.InquiryStatusNew, models.InquiryStatusBooked) {
		t.Fatal("expected new -> booked to be allowed")
	}
	if !CanTransition(models.InquiryStatusAssigned, models.InquiryStatusBooked) {
		t.Fatal("expected assigned -> booked to be allowed")
	}
}

func TestCancellationFromNonTerminal(t *testing.T) {
	for _, from := range []string{
		models.InquiryStatusNew,
		models.InquiryStatusAssigned,
		models.InquiryStatusResponded,
		models.InquiryStatusBooked,
	} {
		if !CanTransition(from, models.InquiryStatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be allowed", from)
		}
	}
}

func TestTerminal(t *testing.T) {
	if !IsTerminal(models.InquiryStatusCompleted) || !IsTerminal(models.InquiryStatusCancelled) {
		t.Fatal("completed and cancelled must be terminal")
	}
	if IsTerminal(models.InquiryStatusBooked) {
		t.Fatal("booked is not terminal")
	}
	if IsTerminal("bogus") {
		t.Fatal("unknown status is not terminal")
	}
}
