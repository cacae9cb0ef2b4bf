package bookingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"fieldly/models"
)

// BookingRepository owns the bookings collection.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID returns nil when no booking exists for the id.
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	UpdateFields(ctx context.Context, bookingID string, fields bson.M) error
	ListByWorker(ctx context.Context, workerID string) ([]models.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
}
