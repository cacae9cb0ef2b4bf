package booking

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"fieldly/models"
	"fieldly/utils"
)

// CanCancel evaluates the cancellation policy without mutating anything.
func (s *DefaultBookingService) CanCancel(ctx context.Context, bookingID string) (CancelCheck, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return CancelCheck{}, err
	}
	if b == nil {
		return CancelCheck{}, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	return evaluateCancellation(b, time.Now()), nil
}

// Cancel cancels a booking within policy, storing the computed fee. The
// reserved slot is released best-effort: a leaked reservation is less harmful
// than blocking the cancellation.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, reason string) (float64, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, &NotFoundError{Resource: "booking", ID: bookingID}
	}

	check := evaluateCancellation(b, time.Now())
	if !check.CanCancel {
		return 0, &PolicyViolationError{Reason: check.Reason}
	}
	fee := cancellationFee(b, check)

	now := time.Now()
	fields := bson.M{
		"status":          models.BookingStatusCancelled,
		"cancellationFee": fee,
		"cancelledAt":     now,
		"updatedAt":       now,
	}
	if reason != "" {
		fields["cancellationReason"] = reason
	}
	if err := s.Repo.UpdateFields(ctx, bookingID, fields); err != nil {
		return 0, err
	}

	s.releaseSlotBestEffort(ctx, b)
	return fee, nil
}

// releaseSlotBestEffort frees the booking's slot when one could have been
// reserved. Failures are logged, never propagated.
func (s *DefaultBookingService) releaseSlotBestEffort(ctx context.Context, b *models.Booking) {
	if b.WorkerID == "" {
		return
	}
	date := normalizeScheduleDate(b.ScheduleDate)
	if date == "" {
		return
	}
	if err := s.Availability.ReleaseSlot(ctx, b.WorkerID, date, b.ID); err != nil {
		utils.GetLogger().Warn("failed to release slot, reservation may leak",
			zap.String("bookingId", b.ID), zap.String("workerId", b.WorkerID),
			zap.String("date", date), zap.Error(err))
	}
}
