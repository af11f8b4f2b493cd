package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment records a student's membership in a program. Entries are
// append-only from the student's perspective; no delete route exists.
type Enrollment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID    primitive.ObjectID `bson:"studentId" json:"studentId"`
	ProgramID    primitive.ObjectID `bson:"programId" json:"programId"`
	ProgramTitle string             `bson:"programTitle" json:"programTitle"`
	EnrolledAt   time.Time          `bson:"enrolledAt" json:"enrolledAt"`
	Status       string             `bson:"status" json:"status"`
}
