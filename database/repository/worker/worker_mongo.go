package workerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fieldly/database"
	"fieldly/models"
)

// WorkerRepository owns the workers collection.
type WorkerRepository interface {
	// GetByID returns nil when no worker exists for the id.
	GetByID(ctx context.Context, workerID string) (*models.Worker, error)
	// SetCurrentJob points the worker at their active booking; empty clears it.
	SetCurrentJob(ctx context.Context, workerID, bookingID string) error
	UpdateSetDocument(ctx context.Context, workerID string, setDoc bson.M) error
}

// MongoWorkerRepo is the MongoDB-backed WorkerRepository.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

func NewMongoWorkerRepo() *MongoWorkerRepo {
	return &MongoWorkerRepo{coll: database.Collection("workers")}
}

func (repo *MongoWorkerRepo) GetByID(ctx context.Context, workerID string) (*models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var worker models.Worker
	err := repo.coll.FindOne(ctx, bson.M{"_id": workerID}).Decode(&worker)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker %s: %w", workerID, err)
	}
	return &worker, nil
}

func (repo *MongoWorkerRepo) SetCurrentJob(ctx context.Context, workerID, bookingID string) error {
	return repo.UpdateSetDocument(ctx, workerID, bson.M{"currentJobId": bookingID})
}

func (repo *MongoWorkerRepo) UpdateSetDocument(ctx context.Context, workerID string, setDoc bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	setDoc["updatedAt"] = time.Now()
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"_id": workerID}, bson.M{"$set": setDoc}); err != nil {
		return fmt.Errorf("failed to update worker %s: %w", workerID, err)
	}
	return nil
}
