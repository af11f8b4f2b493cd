package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Abandoned checkouts leave orphaned pending registrations behind; the TTL
// index reaps them after this window.
const pendingRegistrationTTL = 24 * time.Hour

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureStudentIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureStudentIndexes: creating email_unique index")
	_, err := db.Collection("students").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureStudentIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsurePendingRegistrationIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("pending_registrations").Indexes()

	tokenIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "token", Value: 1}},
		Options: options.Index().
			SetName("token_unique").
			SetUnique(true),
	}

	ttlIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().
			SetName("createdAt_ttl").
			SetExpireAfterSeconds(int32(pendingRegistrationTTL / time.Second)),
	}

	log.Println("EnsurePendingRegistrationIndexes: creating token_unique and createdAt_ttl indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{tokenIndex, ttlIndex})
	if err != nil {
		log.Println("EnsurePendingRegistrationIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureEnrollmentIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	studentIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "enrolledAt", Value: -1}},
		Options: options.Index().SetName("studentId_enrolledAt"),
	}

	log.Println("EnsureEnrollmentIndexes: creating studentId_enrolledAt index")
	_, err := db.Collection("enrollments").Indexes().CreateOne(ctx, studentIndex)
	if err != nil {
		log.Println("EnsureEnrollmentIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureNotificationIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	recipientIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "recipientUid", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("recipientUid_createdAt"),
	}

	log.Println("EnsureNotificationIndexes: creating recipientUid_createdAt index")
	_, err := db.Collection("notifications").Indexes().CreateOne(ctx, recipientIndex)
	if err != nil {
		log.Println("EnsureNotificationIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureCourseIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	programIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "programIds", Value: 1}},
		Options: options.Index().SetName("programIds_index"),
	}

	log.Println("EnsureCourseIndexes: creating programIds_index index")
	_, err := db.Collection("courses").Indexes().CreateOne(ctx, programIndex)
	if err != nil {
		log.Println("EnsureCourseIndexes: programIds index error:", err)
		return err
	}
	return nil
}
