package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student mirrors the identity record for an enrolled student. It shares its
// _id with the users role record; the two are written together at
// registration finalization.
type Student struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
