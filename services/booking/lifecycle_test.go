package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	availabilityRepo "fieldly/database/repository/availability"
	"fieldly/models"
	"fieldly/services/availability"
)

// mockBookingRepo implements bookingRepo.BookingRepository
type mockBookingRepo struct {
	createFunc       func(ctx context.Context, booking *models.Booking) error
	getByIDFunc      func(ctx context.Context, bookingID string) (*models.Booking, error)
	updateFieldsFunc func(ctx context.Context, bookingID string, fields bson.M) error
	listByWorkerFunc func(ctx context.Context, workerID string) ([]models.Booking, error)
	listByClientFunc func(ctx context.Context, clientID string) ([]models.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, booking)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return m.getByIDFunc(ctx, bookingID)
}

func (m *mockBookingRepo) UpdateFields(ctx context.Context, bookingID string, fields bson.M) error {
	if m.updateFieldsFunc == nil {
		return nil
	}
	return m.updateFieldsFunc(ctx, bookingID, fields)
}

func (m *mockBookingRepo) ListByWorker(ctx context.Context, workerID string) ([]models.Booking, error) {
	if m.listByWorkerFunc == nil {
		return nil, nil
	}
	return m.listByWorkerFunc(ctx, workerID)
}

func (m *mockBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	if m.listByClientFunc == nil {
		return nil, nil
	}
	return m.listByClientFunc(ctx, clientID)
}

// mockWorkerRepo implements workerRepo.WorkerRepository
type mockWorkerRepo struct {
	getByIDFunc       func(ctx context.Context, workerID string) (*models.Worker, error)
	setCurrentJobFunc func(ctx context.Context, workerID, bookingID string) error
	updateSetFunc     func(ctx context.Context, workerID string, setDoc bson.M) error
}

func (m *mockWorkerRepo) GetByID(ctx context.Context, workerID string) (*models.Worker, error) {
	if m.getByIDFunc == nil {
		return nil, nil
	}
	return m.getByIDFunc(ctx, workerID)
}

func (m *mockWorkerRepo) SetCurrentJob(ctx context.Context, workerID, bookingID string) error {
	if m.setCurrentJobFunc == nil {
		return nil
	}
	return m.setCurrentJobFunc(ctx, workerID, bookingID)
}

func (m *mockWorkerRepo) UpdateSetDocument(ctx context.Context, workerID string, setDoc bson.M) error {
	if m.updateSetFunc == nil {
		return nil
	}
	return m.updateSetFunc(ctx, workerID, setDoc)
}

// mockAvailabilityService implements availability.AvailabilityService
type mockAvailabilityService struct {
	bookSlotFunc    func(ctx context.Context, workerID, date, startTime string, durationHours int, bookingID string) error
	releaseSlotFunc func(ctx context.Context, workerID, date, bookingID string) error
}

func (m *mockAvailabilityService) SetOnlineStatus(ctx context.Context, workerID string, isOnline, acceptsQuickBookings bool) error {
	return nil
}

func (m *mockAvailabilityService) GetOnlineStatus(ctx context.Context, workerID string) (*models.WorkerOnlineStatus, error) {
	return nil, nil
}

func (m *mockAvailabilityService) SetDayAvailability(ctx context.Context, workerID, date string, isAvailable bool) error {
	return nil
}

func (m *mockAvailabilityService) CheckAvailability(ctx context.Context, workerID, date, startTime string, durationHours int, opts availability.CheckOptions) models.AvailabilityResult {
	return models.AvailabilityResult{}
}

func (m *mockAvailabilityService) BookSlot(ctx context.Context, workerID, date, startTime string, durationHours int, bookingID string) error {
	if m.bookSlotFunc == nil {
		return nil
	}
	return m.bookSlotFunc(ctx, workerID, date, startTime, durationHours, bookingID)
}

func (m *mockAvailabilityService) ReleaseSlot(ctx context.Context, workerID, date, bookingID string) error {
	if m.releaseSlotFunc == nil {
		return nil
	}
	return m.releaseSlotFunc(ctx, workerID, date, bookingID)
}

func (m *mockAvailabilityService) ListAvailableWorkersForQuickBookings(ctx context.Context) ([]models.WorkerOnlineStatus, error) {
	return nil, nil
}

func (m *mockAvailabilityService) ListAvailableWorkersForSchedule(ctx context.Context, date, startTime string, durationHours int) ([]string, error) {
	return nil, nil
}

func (m *mockAvailabilityService) DropStatusCache(ctx context.Context, workerIDs ...string) {}

func pendingBooking(id string) *models.Booking {
	return &models.Booking{
		ID:           id,
		ClientID:     "c1",
		Status:       models.BookingStatusPending,
		ScheduleDate: "2026-03-10",
		ScheduleTime: "09:00",
		TotalAmount:  1000,
		CreatedAt:    time.Now().Add(-10 * time.Minute),
	}
}

func TestAcceptReservesSlotThenMarksAccepted(t *testing.T) {
	b := pendingBooking("b1")
	var updated bson.M
	var bookedWorker, bookedDate, bookedStart, bookedBooking string
	var bookedDuration int
	currentJob := ""

	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return b, nil
		},
		updateFieldsFunc: func(ctx context.Context, bookingID string, fields bson.M) error {
			updated = fields
			return nil
		},
	}
	workers := &mockWorkerRepo{
		setCurrentJobFunc: func(ctx context.Context, workerID, bookingID string) error {
			currentJob = bookingID
			return nil
		},
	}
	avail := &mockAvailabilityService{
		bookSlotFunc: func(ctx context.Context, workerID, date, startTime string, durationHours int, bookingID string) error {
			bookedWorker, bookedDate, bookedStart, bookedBooking = workerID, date, startTime, bookingID
			bookedDuration = durationHours
			return nil
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: workers, Availability: avail}

	require.NoError(t, svc.Accept(context.Background(), "b1", "w1"))

	assert.Equal(t, "w1", bookedWorker)
	assert.Equal(t, "2026-03-10", bookedDate)
	assert.Equal(t, "09:00", bookedStart)
	assert.Equal(t, "b1", bookedBooking)
	assert.Equal(t, 1, bookedDuration)
	require.NotNil(t, updated)
	assert.Equal(t, models.BookingStatusAccepted, updated["status"])
	assert.Equal(t, "w1", updated["workerId"])
	assert.Equal(t, "b1", currentJob)
}

func TestAcceptAbortsOnSlotConflictWithoutStatusWrite(t *testing.T) {
	b := pendingBooking("b1")
	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return b, nil
		},
		updateFieldsFunc: func(ctx context.Context, bookingID string, fields bson.M) error {
			t.Fatal("booking status must not change when the slot is taken")
			return nil
		},
	}
	avail := &mockAvailabilityService{
		bookSlotFunc: func(ctx context.Context, workerID, date, startTime string, durationHours int, bookingID string) error {
			return availabilityRepo.ErrSlotConflict
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: avail}

	err := svc.Accept(context.Background(), "b1", "w1")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestAcceptSkipsReservationForUnparseableSchedule(t *testing.T) {
	b := pendingBooking("b1")
	b.ScheduleDate = "next tuesday"
	var updated bson.M
	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return b, nil
		},
		updateFieldsFunc: func(ctx context.Context, bookingID string, fields bson.M) error {
			updated = fields
			return nil
		},
	}
	avail := &mockAvailabilityService{
		bookSlotFunc: func(ctx context.Context, workerID, date, startTime string, durationHours int, bookingID string) error {
			t.Fatal("no slot should be reserved for an unparseable schedule")
			return nil
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: avail}

	require.NoError(t, svc.Accept(context.Background(), "b1", "w1"))
	assert.Equal(t, models.BookingStatusAccepted, updated["status"])
}

func TestAcceptUnknownBookingIsNotFound(t *testing.T) {
	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return nil, nil
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: &mockAvailabilityService{}}

	err := svc.Accept(context.Background(), "missing", "w1")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRejectOnlyAppliesToPending(t *testing.T) {
	b := pendingBooking("b1")
	b.Status = models.BookingStatusAccepted
	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return b, nil
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: &mockAvailabilityService{}}

	err := svc.Reject(context.Background(), "b1")

	var policy *PolicyViolationError
	require.ErrorAs(t, err, &policy)
}

func TestCancelStoresFeeAndReleasesSlot(t *testing.T) {
	b := pendingBooking("b1")
	b.Status = models.BookingStatusAccepted
	b.WorkerID = "w1"
	scheduled := time.Now().Add(3 * time.Hour)
	b.ScheduleDate = scheduled.Format("2006-01-02")
	b.ScheduleTime = scheduled.Format("15:04")

	var updated bson.M
	released := 0
	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return b, nil
		},
		updateFieldsFunc: func(ctx context.Context, bookingID string, fields bson.M) error {
			updated = fields
			return nil
		},
	}
	avail := &mockAvailabilityService{
		releaseSlotFunc: func(ctx context.Context, workerID, date, bookingID string) error {
			released++
			assert.Equal(t, "w1", workerID)
			assert.Equal(t, "b1", bookingID)
			return nil
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: avail}

	fee, err := svc.Cancel(context.Background(), "b1", "client asked")

	require.NoError(t, err)
	assert.Equal(t, 200.0, fee) // standard 20% of 1000
	assert.Equal(t, models.BookingStatusCancelled, updated["status"])
	assert.Equal(t, 200.0, updated["cancellationFee"])
	assert.Equal(t, "client asked", updated["cancellationReason"])
	assert.Equal(t, 1, released)
}

func TestCancelReleaseFailureDoesNotFailCancellation(t *testing.T) {
	b := pendingBooking("b1")
	b.WorkerID = "w1"
	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return b, nil
		},
	}
	avail := &mockAvailabilityService{
		releaseSlotFunc: func(ctx context.Context, workerID, date, bookingID string) error {
			return assert.AnError
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: avail}

	fee, err := svc.Cancel(context.Background(), "b1", "")

	require.NoError(t, err)
	assert.Equal(t, 0.0, fee) // pending, 10 minutes old: free
}

func TestCancelOutsidePolicyIsViolation(t *testing.T) {
	b := pendingBooking("b1")
	b.Status = models.BookingStatusOnTheWay
	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return b, nil
		},
		updateFieldsFunc: func(ctx context.Context, bookingID string, fields bson.M) error {
			t.Fatal("no write should happen for a policy violation")
			return nil
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: &mockAvailabilityService{}}

	_, err := svc.Cancel(context.Background(), "b1", "")

	var policy *PolicyViolationError
	require.ErrorAs(t, err, &policy)
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{models.BookingStatusPending, models.BookingStatusAccepted, true},
		{models.BookingStatusPending, models.BookingStatusRejected, true},
		{models.BookingStatusAccepted, models.BookingStatusOnTheWay, true},
		{models.BookingStatusOnTheWay, models.BookingStatusInProgress, true},
		{models.BookingStatusInProgress, models.BookingStatusCompleted, true},
		{models.BookingStatusPending, models.BookingStatusCompleted, false},
		{models.BookingStatusCompleted, models.BookingStatusPending, false},
		{models.BookingStatusCancelled, models.BookingStatusAccepted, false},
		{models.BookingStatusOnTheWay, models.BookingStatusCancelled, false},
	}
	for _, tt := range tests {
		b := pendingBooking("b1")
		b.Status = tt.from
		repo := &mockBookingRepo{
			getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
				return b, nil
			},
		}
		svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: &mockAvailabilityService{}}

		err := svc.UpdateStatus(context.Background(), "b1", tt.to, nil)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
		} else {
			var policy *PolicyViolationError
			assert.ErrorAs(t, err, &policy, "%s -> %s", tt.from, tt.to)
		}
	}
}

func TestUpdateStatusToCancelledReleasesSlot(t *testing.T) {
	b := pendingBooking("b1")
	b.WorkerID = "w1"
	released := false
	repo := &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return b, nil
		},
	}
	avail := &mockAvailabilityService{
		releaseSlotFunc: func(ctx context.Context, workerID, date, bookingID string) error {
			released = true
			return nil
		},
	}
	svc := &DefaultBookingService{Repo: repo, WorkerRepo: &mockWorkerRepo{}, Availability: avail}

	require.NoError(t, svc.UpdateStatus(context.Background(), "b1", models.BookingStatusCancelled, nil))
	assert.True(t, released)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := &DefaultBookingService{
		Repo:         &mockBookingRepo{getByIDFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) { return nil, nil }},
		WorkerRepo:   &mockWorkerRepo{},
		Availability: &mockAvailabilityService{},
	}

	err := svc.UpdateStatus(context.Background(), "b1", "archived", nil)

	var policy *PolicyViolationError
	require.ErrorAs(t, err, &policy)
}
