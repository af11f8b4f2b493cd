package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Program struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
	Badge     string             `bson:"badge,omitempty" json:"badge,omitempty"`
	Status    string             `bson:"status" json:"status"`
	Order     int                `bson:"order" json:"order"`
	Features  StringList         `bson:"features" json:"features"`
	ClassLink string             `bson:"classLink,omitempty" json:"classLink,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	// DurationWeeks is not stored; it is summed from the durations of the
	// courses associated with the program at read time.
	DurationWeeks int `bson:"-" json:"durationWeeks"`
}
