package availability

import (
	"context"

	"go.uber.org/zap"

	"fieldly/models"
	"fieldly/utils"
)

// BookSlot reserves [startTime, startTime+durationHours) for bookingID. The
// repository re-validates overlap inside its transaction, so the reservation
// either commits conflict-free or fails with ErrSlotConflict.
func (s *DefaultAvailabilityService) BookSlot(ctx context.Context, workerID, date, startTime string, durationHours int, bookingID string) error {
	if durationHours <= 0 {
		durationHours = 1
	}
	return s.Repo.AppendBookedSlot(ctx, workerID, date, startTime, durationHours, bookingID)
}

// ReleaseSlot removes every slot entry held by bookingID. Calling it again
// for the same booking is a no-op.
func (s *DefaultAvailabilityService) ReleaseSlot(ctx context.Context, workerID, date, bookingID string) error {
	return s.Repo.ReleaseBookedSlot(ctx, workerID, date, bookingID)
}

// ListAvailableWorkersForQuickBookings returns workers who are online and
// opted into quick bookings.
func (s *DefaultAvailabilityService) ListAvailableWorkersForQuickBookings(ctx context.Context) ([]models.WorkerOnlineStatus, error) {
	return s.Repo.ListQuickBookingWorkers(ctx)
}

// ListAvailableWorkersForSchedule intersects online workers with those free
// at the requested window (presence already filtered, so the per-worker check
// skips the online gate).
func (s *DefaultAvailabilityService) ListAvailableWorkersForSchedule(ctx context.Context, date, startTime string, durationHours int) ([]string, error) {
	online, err := s.Repo.ListOnlineWorkers(ctx)
	if err != nil {
		return nil, err
	}

	var workerIDs []string
	for _, status := range online {
		res := s.CheckAvailability(ctx, status.WorkerID, date, startTime, durationHours, CheckOptions{RespectOnlineStatus: false})
		if !res.HasConflict {
			workerIDs = append(workerIDs, status.WorkerID)
		}
	}
	utils.GetLogger().Debug("availability: schedule candidates",
		zap.String("date", date), zap.String("startTime", startTime),
		zap.Int("online", len(online)), zap.Int("free", len(workerIDs)))
	return workerIDs, nil
}
