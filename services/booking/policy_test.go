package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fieldly/models"
)

func TestEvaluateCancellationFeeTable(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	scheduledIn := func(d time.Duration) (string, string) {
		at := now.Add(d)
		return at.Format("2006-01-02"), at.Format("15:04")
	}

	tests := []struct {
		name        string
		booking     models.Booking
		wantCan     bool
		wantFee     float64
		wantApplies bool
	}{
		{
			name: "pending created 30 minutes ago cancels free",
			booking: models.Booking{
				Status:      models.BookingStatusPending,
				CreatedAt:   now.Add(-30 * time.Minute),
				TotalAmount: 1000,
			},
			wantCan: true,
		},
		{
			name: "pending created 90 minutes ago pays 10%",
			booking: models.Booking{
				Status:      models.BookingStatusPending,
				CreatedAt:   now.Add(-90 * time.Minute),
				TotalAmount: 1000,
			},
			wantCan:     true,
			wantApplies: true,
			wantFee:     100,
		},
		{
			name: "accepted 3 hours out pays the standard 20%",
			booking: func() models.Booking {
				date, tm := scheduledIn(3 * time.Hour)
				return models.Booking{
					Status:       models.BookingStatusAccepted,
					ScheduleDate: date,
					ScheduleTime: tm,
					TotalAmount:  1000,
				}
			}(),
			wantCan:     true,
			wantApplies: true,
			wantFee:     200,
		},
		{
			name: "accepted 1 hour out pays the late 50%",
			booking: func() models.Booking {
				date, tm := scheduledIn(time.Hour)
				return models.Booking{
					Status:       models.BookingStatusAccepted,
					ScheduleDate: date,
					ScheduleTime: tm,
					TotalAmount:  1000,
				}
			}(),
			wantCan:     true,
			wantApplies: true,
			wantFee:     500,
		},
		{
			name: "accepted past the scheduled time cannot cancel",
			booking: func() models.Booking {
				date, tm := scheduledIn(-time.Hour)
				return models.Booking{
					Status:       models.BookingStatusAccepted,
					ScheduleDate: date,
					ScheduleTime: tm,
					TotalAmount:  1000,
				}
			}(),
		},
		{
			name:    "on-the-way cannot cancel",
			booking: models.Booking{Status: models.BookingStatusOnTheWay, TotalAmount: 1000},
		},
		{
			name:    "in-progress cannot cancel",
			booking: models.Booking{Status: models.BookingStatusInProgress, TotalAmount: 1000},
		},
		{
			name:    "completed cannot cancel",
			booking: models.Booking{Status: models.BookingStatusCompleted, TotalAmount: 1000},
		},
		{
			name:    "cancelled cannot cancel again",
			booking: models.Booking{Status: models.BookingStatusCancelled, TotalAmount: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := evaluateCancellation(&tt.booking, now)
			assert.Equal(t, tt.wantCan, check.CanCancel)
			assert.Equal(t, tt.wantApplies, check.FeeApplies)
			assert.Equal(t, tt.wantFee, cancellationFee(&tt.booking, check))
			if !tt.wantCan {
				assert.NotEmpty(t, check.Reason)
			}
		})
	}
}

func TestEvaluateCancellationPendingBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	// exactly one hour old still cancels free
	b := &models.Booking{
		Status:      models.BookingStatusPending,
		CreatedAt:   now.Add(-time.Hour),
		TotalAmount: 500,
	}
	check := evaluateCancellation(b, now)
	assert.True(t, check.CanCancel)
	assert.False(t, check.FeeApplies)
}

func TestNormalizeScheduleDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2026-03-10", "2026-03-10"},
		{"2026-03-10T14:30:00Z", "2026-03-10"},
		{"2026-03-10T14:30:00", "2026-03-10"},
		{"2026-03-10 14:30:00", "2026-03-10"},
		{"", ""},
		{"next tuesday", ""},
		{"10/03/2026", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeScheduleDate(tt.input), "input %q", tt.input)
	}
}
