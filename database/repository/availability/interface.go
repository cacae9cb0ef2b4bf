package availabilityRepo

import (
	"context"
	"time"

	"fieldly/models"
)

// AvailabilityRepository owns the workerAvailability and workerOnlineStatus
// collections.
type AvailabilityRepository interface {
	// GetDaySlot returns the worker's day document, or nil when none exists.
	GetDaySlot(ctx context.Context, workerID, date string) (*models.AvailabilitySlot, error)
	// SetDayAvailability flips the day-level availability switch, creating
	// the day document if needed.
	SetDayAvailability(ctx context.Context, workerID, date string, isAvailable bool) error
	// AppendBookedSlot reserves [startTime, startTime+durationHours) for
	// bookingID inside a transaction that re-validates no-overlap against
	// the current document. Returns ErrSlotConflict when an overlapping
	// booked slot exists or a concurrent writer won the version race.
	AppendBookedSlot(ctx context.Context, workerID, date, startTime string, durationHours int, bookingID string) error
	// ReleaseBookedSlot removes every slot entry held by bookingID.
	// Releasing an absent document or an already-released booking succeeds.
	ReleaseBookedSlot(ctx context.Context, workerID, date, bookingID string) error

	UpsertOnlineStatus(ctx context.Context, status *models.WorkerOnlineStatus) error
	// GetOnlineStatus returns nil when the worker never set a status.
	GetOnlineStatus(ctx context.Context, workerID string) (*models.WorkerOnlineStatus, error)
	ListQuickBookingWorkers(ctx context.Context) ([]models.WorkerOnlineStatus, error)
	ListOnlineWorkers(ctx context.Context) ([]models.WorkerOnlineStatus, error)
	ListStaleStatuses(ctx context.Context, olderThan time.Time) ([]models.WorkerOnlineStatus, error)
	MarkOffline(ctx context.Context, workerIDs []string, now time.Time) error
}
