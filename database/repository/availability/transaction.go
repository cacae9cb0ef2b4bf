package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fieldly/models"
	"fieldly/utils"
)

// AppendBookedSlot reserves a slot inside a single Mongo transaction: the day
// document is re-read, overlap is re-validated against its current contents,
// and the append carries a version guard. Two concurrent overlapping
// reservations therefore cannot both commit.
func (repo *MongoAvailabilityRepo) AppendBookedSlot(
	ctx context.Context,
	workerID, date, startTime string,
	durationHours int,
	bookingID string,
) error {
	startMin, err := utils.MinutesOf(startTime)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	endTime, err := utils.AddHours(startTime, durationHours)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	endMin := startMin + durationHours*60

	newSlot := models.TimeSlot{
		StartTime:     startTime,
		EndTime:       endTime,
		IsBooked:      true,
		BookingID:     bookingID,
		DurationHours: durationHours,
	}

	client := repo.slotColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()
		docID := models.DaySlotID(workerID, date)

		var day models.AvailabilitySlot
		findErr := repo.slotColl.FindOne(sc, bson.M{"_id": docID}).Decode(&day)
		if findErr == mongo.ErrNoDocuments {
			// First booking for this worker+date: create the day lazily.
			day = models.AvailabilitySlot{
				ID:          docID,
				WorkerID:    workerID,
				Date:        date,
				TimeSlots:   []models.TimeSlot{newSlot},
				IsAvailable: true,
				Version:     1,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if _, err := repo.slotColl.InsertOne(sc, day); err != nil {
				return fmt.Errorf("insert day slot failed: %w", err)
			}
			return nil
		}
		if findErr != nil {
			return fmt.Errorf("read day slot failed: %w", findErr)
		}

		for _, ts := range day.TimeSlots {
			if !ts.IsBooked {
				continue
			}
			s, err := utils.MinutesOf(ts.StartTime)
			if err != nil {
				continue
			}
			e, err := utils.MinutesOf(ts.EndTime)
			if err != nil {
				continue
			}
			if utils.RangesOverlap(startMin, endMin, s, e) {
				return ErrSlotConflict
			}
		}

		filter := bson.M{"_id": docID, "version": day.Version}
		update := bson.M{
			"$push": bson.M{"timeSlots": newSlot},
			"$set":  bson.M{"updatedAt": now},
			"$inc":  bson.M{"version": 1},
		}
		res, err := repo.slotColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("append booked slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			// Version moved under us; a concurrent reservation committed first.
			return ErrSlotConflict
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotConflict {
			return ErrSlotConflict
		}
		return fmt.Errorf("slot booking transaction failed: %w", err)
	}

	return nil
}
