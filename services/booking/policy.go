package booking

import (
	"math"
	"time"

	"fieldly/models"
)

// Cancellation policy windows and fee rates.
const (
	freeCancelWindow = time.Hour     // pending bookings cancel free within this age
	lateCancelWindow = 2 * time.Hour // accepted bookings closer than this pay the late rate

	feeRateLatePending      = 0.10
	feeRateStandardAccepted = 0.20
	feeRateLateAccepted     = 0.50
)

// CancelCheck is the outcome of a cancellation policy evaluation.
type CancelCheck struct {
	CanCancel  bool    `json:"canCancel"`
	FeeApplies bool    `json:"feeApplies"`
	FeeRate    float64 `json:"feeRate,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// evaluateCancellation applies the tiered time-based policy table.
func evaluateCancellation(b *models.Booking, now time.Time) CancelCheck {
	switch b.Status {
	case models.BookingStatusCompleted:
		return CancelCheck{Reason: "booking is already completed"}
	case models.BookingStatusCancelled:
		return CancelCheck{Reason: "booking is already cancelled"}
	case models.BookingStatusRejected:
		return CancelCheck{Reason: "booking was rejected"}
	case models.BookingStatusOnTheWay, models.BookingStatusInProgress:
		return CancelCheck{Reason: "service is underway; contact support to cancel"}
	case models.BookingStatusPending:
		if now.Sub(b.CreatedAt) <= freeCancelWindow {
			return CancelCheck{CanCancel: true}
		}
		return CancelCheck{CanCancel: true, FeeApplies: true, FeeRate: feeRateLatePending}
	case models.BookingStatusAccepted:
		scheduled, ok := scheduledAt(b)
		if !ok {
			// No parseable schedule to measure against; charge the standard rate.
			return CancelCheck{CanCancel: true, FeeApplies: true, FeeRate: feeRateStandardAccepted}
		}
		until := scheduled.Sub(now)
		switch {
		case until < 0:
			return CancelCheck{Reason: "cannot cancel after the scheduled service time"}
		case until < lateCancelWindow:
			return CancelCheck{CanCancel: true, FeeApplies: true, FeeRate: feeRateLateAccepted}
		default:
			return CancelCheck{CanCancel: true, FeeApplies: true, FeeRate: feeRateStandardAccepted}
		}
	}
	return CancelCheck{Reason: "booking is in an unknown state"}
}

// cancellationFee computes the fee for a policy outcome, rounded to cents.
func cancellationFee(b *models.Booking, check CancelCheck) float64 {
	if !check.FeeApplies {
		return 0
	}
	return math.Round(b.TotalAmount*check.FeeRate*100) / 100
}

// scheduledAt combines the booking's schedule date and time into a concrete
// instant, false when either part is missing or unparseable.
func scheduledAt(b *models.Booking) (time.Time, bool) {
	date := normalizeScheduleDate(b.ScheduleDate)
	if date == "" || b.ScheduleTime == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+b.ScheduleTime, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// normalizeScheduleDate coerces the loosely-shaped schedule date values seen
// in booking documents (plain date, RFC3339 timestamp, datetime without zone)
// into "YYYY-MM-DD". Unparseable input yields "" and the caller skips slot
// reservation rather than failing.
func normalizeScheduleDate(raw string) string {
	if raw == "" {
		return ""
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
