package models

import "time"

// TimeSlot represents a single reserved window inside a worker's day.
type TimeSlot struct {
	StartTime     string `bson:"startTime" json:"startTime"`                       // "HH:mm", 24h
	EndTime       string `bson:"endTime" json:"endTime"`                           // "HH:mm", 24h
	IsBooked      bool   `bson:"isBooked" json:"isBooked"`
	BookingID     string `bson:"bookingId,omitempty" json:"bookingId,omitempty"`   // set when IsBooked
	DurationHours int    `bson:"durationHours,omitempty" json:"durationHours,omitempty"`
}

// AvailabilitySlot is the per-worker per-day slot document.
// Document ID is "{workerId}_{date}". Created lazily on first booking for
// that worker+date, never hard-deleted; releases prune matching entries.
type AvailabilitySlot struct {
	ID          string     `bson:"_id" json:"id"`
	WorkerID    string     `bson:"workerId" json:"workerId"`
	Date        string     `bson:"date" json:"date"` // "YYYY-MM-DD", worker-local wall clock
	TimeSlots   []TimeSlot `bson:"timeSlots" json:"timeSlots"`
	IsAvailable bool       `bson:"isAvailable" json:"isAvailable"` // day-level switch, independent of slot occupancy
	Version     int        `bson:"version" json:"version"`         // optimistic concurrency guard
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// DaySlotID builds the availability document key for a worker+date.
func DaySlotID(workerID, date string) string {
	return workerID + "_" + date
}

// WorkerOnlineStatus tracks a worker's presence, latest-wins.
// IsAvailableForQuickBookings is only meaningful while IsOnline; it is forced
// false whenever the worker goes offline. A worker with no status record at
// all is treated as available (legacy workers never set one).
type WorkerOnlineStatus struct {
	WorkerID                    string    `bson:"_id" json:"workerId"`
	IsOnline                    bool      `bson:"isOnline" json:"isOnline"`
	IsAvailableForQuickBookings bool      `bson:"isAvailableForQuickBookings" json:"isAvailableForQuickBookings"`
	LastActiveAt                time.Time `bson:"lastActiveAt" json:"lastActiveAt"`
	UpdatedAt                   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AvailabilityResult is the outcome of a conflict check.
type AvailabilityResult struct {
	HasConflict           bool       `json:"hasConflict"`
	ConflictingBookingIDs []string   `json:"conflictingBookingIds"`
	FreeSlots             []TimeSlot `json:"freeSlots"` // informational: non-overlapping unbooked entries
}
