package availability

import (
	"context"

	"github.com/go-redis/redis/v8"

	availabilityRepo "fieldly/database/repository/availability"
	"fieldly/models"
)

// CheckOptions tunes a conflict check.
type CheckOptions struct {
	// RespectOnlineStatus treats an explicitly-offline worker as globally
	// conflicted before any slot inspection.
	RespectOnlineStatus bool
}

// AvailabilityService answers "can this worker take this job at this
// date/time/duration?" and maintains the ground truth of booked slots.
type AvailabilityService interface {
	SetOnlineStatus(ctx context.Context, workerID string, isOnline, acceptsQuickBookings bool) error
	// GetOnlineStatus returns nil when the worker never set a status;
	// callers must treat nil as "assume available".
	GetOnlineStatus(ctx context.Context, workerID string) (*models.WorkerOnlineStatus, error)
	SetDayAvailability(ctx context.Context, workerID, date string, isAvailable bool) error

	// CheckAvailability never fails: backend read errors are logged and
	// yield a lenient no-conflict result so transient blips don't block
	// bookings.
	CheckAvailability(ctx context.Context, workerID, date, startTime string, durationHours int, opts CheckOptions) models.AvailabilityResult
	// BookSlot atomically reserves the slot; returns ErrSlotConflict from
	// the repo when it overlaps an existing reservation. Callers should
	// still CheckAvailability first for a friendlier early answer.
	BookSlot(ctx context.Context, workerID, date, startTime string, durationHours int, bookingID string) error
	// ReleaseSlot is idempotent; releasing an unknown booking succeeds.
	ReleaseSlot(ctx context.Context, workerID, date, bookingID string) error

	ListAvailableWorkersForQuickBookings(ctx context.Context) ([]models.WorkerOnlineStatus, error)
	ListAvailableWorkersForSchedule(ctx context.Context, date, startTime string, durationHours int) ([]string, error)

	// DropStatusCache evicts cached presence entries (used by the sweeper).
	DropStatusCache(ctx context.Context, workerIDs ...string)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Repo  availabilityRepo.AvailabilityRepository
	Cache *redis.Client // optional presence cache; nil skips caching
}
