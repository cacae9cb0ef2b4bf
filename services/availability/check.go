package availability

import (
	"context"

	"go.uber.org/zap"

	"fieldly/models"
	"fieldly/utils"
)

// CheckAvailability scans the worker's day for conflicts with the requested
// window [startTime, startTime+durationHours).
//
// A worker with no presence record and no day document is free. A day
// document with IsAvailable=false is a global conflict: absence means
// available, explicit false means unavailable. Backend read failures are
// logged and answered leniently (no conflict) so an infra blip never blocks
// a booking.
func (s *DefaultAvailabilityService) CheckAvailability(
	ctx context.Context,
	workerID, date, startTime string,
	durationHours int,
	opts CheckOptions,
) models.AvailabilityResult {
	logger := utils.GetLogger()
	if durationHours <= 0 {
		durationHours = 1
	}

	if opts.RespectOnlineStatus {
		status, err := s.GetOnlineStatus(ctx, workerID)
		if err != nil {
			logger.Error("availability: presence read failed, ignoring online gate",
				zap.String("workerId", workerID), zap.Error(err))
		} else if status != nil && !status.IsOnline {
			// Explicitly offline: global conflict, no slot inspection.
			return models.AvailabilityResult{HasConflict: true}
		}
	}

	day, err := s.Repo.GetDaySlot(ctx, workerID, date)
	if err != nil {
		logger.Error("availability: day slot read failed, answering leniently",
			zap.String("workerId", workerID), zap.String("date", date), zap.Error(err))
		return models.AvailabilityResult{HasConflict: false}
	}
	if day == nil {
		return models.AvailabilityResult{HasConflict: false}
	}
	if !day.IsAvailable {
		return models.AvailabilityResult{HasConflict: true}
	}

	startMin, err := utils.MinutesOf(startTime)
	if err != nil {
		logger.Warn("availability: malformed start time in check",
			zap.String("startTime", startTime), zap.Error(err))
		return models.AvailabilityResult{HasConflict: false}
	}
	endMin := startMin + durationHours*60

	var conflicts []string
	var free []models.TimeSlot
	for _, ts := range day.TimeSlots {
		slotStart, err := utils.MinutesOf(ts.StartTime)
		if err != nil {
			continue
		}
		slotEnd, err := utils.MinutesOf(ts.EndTime)
		if err != nil {
			continue
		}
		overlaps := utils.RangesOverlap(startMin, endMin, slotStart, slotEnd)
		switch {
		case overlaps && ts.IsBooked:
			conflicts = append(conflicts, ts.BookingID)
		case !overlaps && !ts.IsBooked:
			free = append(free, ts)
		}
	}

	return models.AvailabilityResult{
		HasConflict:           len(conflicts) > 0,
		ConflictingBookingIDs: conflicts,
		FreeSlots:             free,
	}
}
