package models

import "time"

// Booking statuses.
const (
	BookingStatusPending    = "pending"
	BookingStatusAccepted   = "accepted"
	BookingStatusRejected   = "rejected"
	BookingStatusOnTheWay   = "on-the-way"
	BookingStatusInProgress = "in-progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusOnTheWay, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking represents a client's job request against a worker.
type Booking struct {
	ID           string  `bson:"_id" json:"id"`
	ClientID     string  `bson:"clientId" json:"clientId"`
	WorkerID     string  `bson:"workerId,omitempty" json:"workerId,omitempty"`
	ServiceType  string  `bson:"serviceType" json:"serviceType"`
	ScheduleDate string  `bson:"scheduleDate,omitempty" json:"scheduleDate,omitempty"` // "YYYY-MM-DD"
	ScheduleTime string  `bson:"scheduleTime,omitempty" json:"scheduleTime,omitempty"` // "HH:mm"
	Status       string  `bson:"status" json:"status"`
	TotalAmount  float64 `bson:"totalAmount" json:"totalAmount"`

	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancellationFee    float64    `bson:"cancellationFee,omitempty" json:"cancellationFee,omitempty"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
