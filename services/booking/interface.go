package booking

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	bookingRepo "fieldly/database/repository/booking"
	workerRepo "fieldly/database/repository/worker"
	"fieldly/models"
	"fieldly/services/availability"
)

// BookingService drives booking status transitions and keeps the
// availability store consistent with booking outcomes.
type BookingService interface {
	Create(ctx context.Context, booking *models.Booking) error
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByWorker(ctx context.Context, workerID string) ([]models.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)

	// Accept reserves the booking's slot for the worker, then marks the
	// booking accepted. A slot conflict aborts before any status write.
	Accept(ctx context.Context, bookingID, workerID string) error
	Reject(ctx context.Context, bookingID string) error
	CanCancel(ctx context.Context, bookingID string) (CancelCheck, error)
	// Cancel applies the cancellation policy, stores the computed fee, and
	// releases the reserved slot best-effort. Returns the fee charged.
	Cancel(ctx context.Context, bookingID, reason string) (float64, error)
	// UpdateStatus performs a generic transition; moving to cancelled or
	// rejected releases the slot best-effort first.
	UpdateStatus(ctx context.Context, bookingID, status string, extra bson.M) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	WorkerRepo   workerRepo.WorkerRepository
	Availability availability.AvailabilityService
}
