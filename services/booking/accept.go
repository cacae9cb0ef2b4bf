package booking

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	availabilityRepo "fieldly/database/repository/availability"
	"fieldly/models"
	"fieldly/utils"
)

// Accept marks a pending booking as taken by the worker. When the booking
// carries a schedule, the matching slot is reserved first; a conflict aborts
// the whole accept and the booking status is left untouched.
func (s *DefaultBookingService) Accept(ctx context.Context, bookingID, workerID string) error {
	logger := utils.GetLogger()

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if b.Status != models.BookingStatusPending {
		return &PolicyViolationError{Reason: "only pending bookings can be accepted"}
	}

	if b.ScheduleDate != "" && b.ScheduleTime != "" {
		date := normalizeScheduleDate(b.ScheduleDate)
		if date == "" {
			// Unparseable schedule: accept without holding a slot.
			logger.Warn("accept: unparseable schedule date, no slot reserved",
				zap.String("bookingId", bookingID), zap.String("scheduleDate", b.ScheduleDate))
		} else {
			// TODO: reserve the service's estimated duration instead of a
			// fixed hour once product confirms how long jobs should hold the
			// calendar.
			err := s.Availability.BookSlot(ctx, workerID, date, b.ScheduleTime, 1, b.ID)
			if errors.Is(err, availabilityRepo.ErrSlotConflict) {
				return &ConflictError{Message: "worker may have a conflicting booking at that time"}
			}
			if err != nil {
				return err
			}
		}
	}

	now := time.Now()
	fields := bson.M{
		"status":    models.BookingStatusAccepted,
		"workerId":  workerID,
		"updatedAt": now,
	}
	if err := s.Repo.UpdateFields(ctx, bookingID, fields); err != nil {
		return err
	}

	if err := s.WorkerRepo.SetCurrentJob(ctx, workerID, bookingID); err != nil {
		logger.Warn("accept: failed to update worker current job pointer",
			zap.String("workerId", workerID), zap.String("bookingId", bookingID), zap.Error(err))
	}
	return nil
}

// Reject declines a pending booking. No slot was ever reserved for it, so
// the availability store is not touched.
func (s *DefaultBookingService) Reject(ctx context.Context, bookingID string) error {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if b.Status != models.BookingStatusPending {
		return &PolicyViolationError{Reason: "only pending bookings can be rejected"}
	}

	return s.Repo.UpdateFields(ctx, bookingID, bson.M{
		"status":    models.BookingStatusRejected,
		"updatedAt": time.Now(),
	})
}
