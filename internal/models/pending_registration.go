package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingRegistration stages a signup between payment-link creation and
// registration finalization. The token is single-use: finalization consumes
// the document atomically, so a second attempt with the same token fails.
// A TTL index on createdAt expires records abandoned at checkout.
type PendingRegistration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token       string             `bson:"token" json:"token"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"courseId"`
	CourseTitle string             `bson:"courseTitle" json:"courseTitle"`
	ProgramID   primitive.ObjectID `bson:"programId" json:"programId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
