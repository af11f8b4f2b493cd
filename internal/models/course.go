package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is the persisted course document. ClassLink must never be exposed
// on public catalog reads; handlers strip it with a projection and the
// omitempty json tag keeps the key out of the response entirely.
type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Details              string             `bson:"details,omitempty" json:"details,omitempty"`
	Price                float64            `bson:"price" json:"price"`
	RegistrationDeadline *time.Time         `bson:"registrationDeadline,omitempty" json:"registrationDeadline,omitempty"`
	ClassStartDate       *time.Time         `bson:"classStartDate,omitempty" json:"classStartDate,omitempty"`
	ClassLink            string             `bson:"classLink,omitempty" json:"classLink,omitempty"`
	DurationWeeks        int                `bson:"durationWeeks" json:"durationWeeks"`
	ProgramIDs           StringList         `bson:"programIds" json:"programIds"`
	Status               string             `bson:"status" json:"status"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
