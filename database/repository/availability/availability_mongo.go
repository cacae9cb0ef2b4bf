package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fieldly/database"
	"fieldly/models"
)

// ErrSlotConflict is returned when a reservation overlaps an existing booked
// slot, or when a concurrent writer modified the day document mid-booking.
var ErrSlotConflict = errors.New("time slot conflicts with an existing booking")

// MongoAvailabilityRepo is the MongoDB-backed AvailabilityRepository.
type MongoAvailabilityRepo struct {
	slotColl   *mongo.Collection
	statusColl *mongo.Collection
}

// NewMongoAvailabilityRepo creates a repo over the workerAvailability and
// workerOnlineStatus collections.
func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	return &MongoAvailabilityRepo{
		slotColl:   database.Collection("workerAvailability"),
		statusColl: database.Collection("workerOnlineStatus"),
	}
}

func (repo *MongoAvailabilityRepo) GetDaySlot(ctx context.Context, workerID, date string) (*models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var day models.AvailabilitySlot
	err := repo.slotColl.FindOne(ctx, bson.M{"_id": models.DaySlotID(workerID, date)}).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day slot: %w", err)
	}
	return &day, nil
}

func (repo *MongoAvailabilityRepo) SetDayAvailability(ctx context.Context, workerID, date string, isAvailable bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"_id": models.DaySlotID(workerID, date)}
	update := bson.M{
		"$set": bson.M{
			"isAvailable": isAvailable,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"workerId":  workerID,
			"date":      date,
			"timeSlots": []models.TimeSlot{},
			"version":   0,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.slotColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to set day availability: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) ReleaseBookedSlot(ctx context.Context, workerID, date, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": models.DaySlotID(workerID, date)}
	update := bson.M{
		"$pull": bson.M{"timeSlots": bson.M{"bookingId": bookingID}},
		"$set":  bson.M{"updatedAt": time.Now()},
		"$inc":  bson.M{"version": 1},
	}
	// MatchedCount 0 means no day document exists; releasing nothing is fine.
	if _, err := repo.slotColl.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release slot for booking %s: %w", bookingID, err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) UpsertOnlineStatus(ctx context.Context, status *models.WorkerOnlineStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := repo.statusColl.ReplaceOne(ctx, bson.M{"_id": status.WorkerID}, status, opts); err != nil {
		return fmt.Errorf("failed to upsert online status for %s: %w", status.WorkerID, err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) GetOnlineStatus(ctx context.Context, workerID string) (*models.WorkerOnlineStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var status models.WorkerOnlineStatus
	err := repo.statusColl.FindOne(ctx, bson.M{"_id": workerID}).Decode(&status)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch online status: %w", err)
	}
	return &status, nil
}

func (repo *MongoAvailabilityRepo) ListQuickBookingWorkers(ctx context.Context) ([]models.WorkerOnlineStatus, error) {
	return repo.listStatuses(ctx, bson.M{"isOnline": true, "isAvailableForQuickBookings": true})
}

func (repo *MongoAvailabilityRepo) ListOnlineWorkers(ctx context.Context) ([]models.WorkerOnlineStatus, error) {
	return repo.listStatuses(ctx, bson.M{"isOnline": true})
}

func (repo *MongoAvailabilityRepo) ListStaleStatuses(ctx context.Context, olderThan time.Time) ([]models.WorkerOnlineStatus, error) {
	return repo.listStatuses(ctx, bson.M{"isOnline": true, "lastActiveAt": bson.M{"$lt": olderThan}})
}

func (repo *MongoAvailabilityRepo) listStatuses(ctx context.Context, filter bson.M) ([]models.WorkerOnlineStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.statusColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query online statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var statuses []models.WorkerOnlineStatus
	if err := cursor.All(ctx, &statuses); err != nil {
		return nil, fmt.Errorf("failed to decode online statuses: %w", err)
	}
	return statuses, nil
}

func (repo *MongoAvailabilityRepo) MarkOffline(ctx context.Context, workerIDs []string, now time.Time) error {
	if len(workerIDs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": bson.M{"$in": workerIDs}}
	update := bson.M{
		"$set": bson.M{
			"isOnline": false,
			// quick-booking availability never survives going offline
			"isAvailableForQuickBookings": false,
			"updatedAt":                   now,
		},
	}
	if _, err := repo.statusColl.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark workers offline: %w", err)
	}
	return nil
}
