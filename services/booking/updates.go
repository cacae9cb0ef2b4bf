package booking

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"fieldly/models"
)

// allowedTransitions is the booking state machine. cancelled, completed and
// rejected are terminal. Cancellation from pending/accepted is policy-gated
// and goes through Cancel, not here.
var allowedTransitions = map[string][]string{
	models.BookingStatusPending:    {models.BookingStatusAccepted, models.BookingStatusRejected, models.BookingStatusCancelled},
	models.BookingStatusAccepted:   {models.BookingStatusOnTheWay, models.BookingStatusCancelled},
	models.BookingStatusOnTheWay:   {models.BookingStatusInProgress},
	models.BookingStatusInProgress: {models.BookingStatusCompleted},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus performs a generic status transition. Moving to cancelled or
// rejected releases the booking's slot best-effort before the status write.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, status string, extra bson.M) error {
	if !models.ValidBookingStatus(status) {
		return &PolicyViolationError{Reason: fmt.Sprintf("unknown booking status %q", status)}
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if !transitionAllowed(b.Status, status) {
		return &PolicyViolationError{Reason: fmt.Sprintf("cannot move booking from %s to %s", b.Status, status)}
	}

	if status == models.BookingStatusCancelled || status == models.BookingStatusRejected {
		s.releaseSlotBestEffort(ctx, b)
	}

	fields := bson.M{"status": status, "updatedAt": time.Now()}
	for k, v := range extra {
		fields[k] = v
	}
	return s.Repo.UpdateFields(ctx, bookingID, fields)
}
