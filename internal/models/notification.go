package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationGlobal     = "global"
	NotificationProgram    = "program"
	NotificationIndividual = "individual"
)

// Notification is one fan-out target's copy of a message. Broadcasts write
// one document per recipient in a single batch.
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message      string             `bson:"message" json:"message"`
	SenderUID    primitive.ObjectID `bson:"senderUid" json:"senderUid"`
	RecipientUID primitive.ObjectID `bson:"recipientUid" json:"recipientUid"`
	Type         string             `bson:"type" json:"type"`
	Global       bool               `bson:"global" json:"global"`
	Read         bool               `bson:"read" json:"read"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
