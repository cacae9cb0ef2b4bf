package models

import "time"

// Worker is the minimal worker profile the booking core touches.
type Worker struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber"`
	CurrentJobID string    `bson:"currentJobId,omitempty" json:"currentJobId,omitempty"`
	Rating       float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
