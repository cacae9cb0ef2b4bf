// File: services/booking/crud.go
package booking

import (
	"context"

	"fieldly/models"
)

// Create stores a new pending booking.
func (s *DefaultBookingService) Create(ctx context.Context, booking *models.Booking) error {
	booking.Status = models.BookingStatusPending
	return s.Repo.Create(ctx, booking)
}

func (s *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	return b, nil
}

func (s *DefaultBookingService) ListByWorker(ctx context.Context, workerID string) ([]models.Booking, error) {
	return s.Repo.ListByWorker(ctx, workerID)
}

func (s *DefaultBookingService) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return s.Repo.ListByClient(ctx, clientID)
}
