package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/email"
	"backend/internal/models"
)

type registerUserRequest struct {
	Token string `json:"token" binding:"required"`
}

func welcomeMessage(firstName, programTitle string) email.Message {
	return email.Message{
		ToName:  firstName,
		Subject: "Welcome to Zeelevate Academy",
		Text: fmt.Sprintf(
			"Hi %s,\n\nYour payment was received and your enrollment in %s is confirmed. "+
				"Sign in with your email to access your dashboard.\n\nZeelevate Academy",
			firstName, programTitle,
		),
	}
}

// restorePendingRegistration re-stages a consumed registration after a
// downstream write fails, so the buyer's paid token stays redeemable on
// retry. Runs on a fresh context: the request context may be the reason
// the write failed. The original _id and createdAt come back with the
// document, so the expiry clock is not reset.
func restorePendingRegistration(db *mongo.Database, pending models.PendingRegistration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.Collection("pending_registrations").InsertOne(ctx, pending); err != nil {
		log.Println("[REGISTER] [ERROR] pending registration restore failed for token:", pending.Token, "-", err)
	}
}

// RegisterUserAndEnroll converts a paid pending registration into a real
// account: user record, student document and enrollment are written together,
// and the single-use token is consumed atomically so a replayed call fails
// with not-found. If any write after consumption fails, the pending document
// is re-inserted so the token can be retried. Returns the staged password so
// the frontend can sign the new student in immediately.
func RegisterUserAndEnroll(db *mongo.Database, mailer email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/users/register-user"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req registerUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		token := strings.TrimSpace(req.Token)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var pending models.PendingRegistration
		if err := db.Collection("pending_registrations").FindOne(ctx, bson.M{"token": token}).Decode(&pending); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "registration token not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var program models.Program
		if err := db.Collection("programs").FindOne(ctx, bson.M{"_id": pending.ProgramID}).Decode(&program); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "program not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// Consume the token. Only one concurrent caller wins; the loser sees
		// no document and fails closed without writing anything.
		if err := db.Collection("pending_registrations").
			FindOneAndDelete(ctx, bson.M{"token": token}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "registration token not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		now := time.Now()

		var uid primitive.ObjectID
		var record models.UserRecord
		err := db.Collection("users").FindOne(ctx, bson.M{"email": pending.Email}).Decode(&record)
		switch {
		case err == nil:
			uid = record.ID
		case err == mongo.ErrNoDocuments:
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(pending.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				restorePendingRegistration(db, pending)
				respondWithError(c, http.StatusInternalServerError, route, "password hashing failed")
				return
			}
			res, insErr := db.Collection("users").InsertOne(ctx, models.UserRecord{
				Email:        pending.Email,
				PasswordHash: string(hash),
				Role:         models.RoleStudent,
				CreatedAt:    now,
			})
			if insErr != nil {
				restorePendingRegistration(db, pending)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			uid = res.InsertedID.(primitive.ObjectID)
		default:
			restorePendingRegistration(db, pending)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// Student doc shares the user's uid. Upsert keeps a reused account
		// from failing the flow while never clobbering an existing profile.
		_, err = db.Collection("students").UpdateByID(ctx, uid, bson.M{
			"$setOnInsert": models.Student{
				FirstName: pending.FirstName,
				LastName:  pending.LastName,
				Email:     pending.Email,
				Phone:     pending.Phone,
				CreatedAt: now,
				UpdatedAt: now,
			},
		}, options.Update().SetUpsert(true))
		if err != nil {
			restorePendingRegistration(db, pending)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		enrollment := models.Enrollment{
			StudentID:    uid,
			ProgramID:    program.ID,
			ProgramTitle: program.Title,
			EnrolledAt:   now,
			Status:       "active",
		}
		if _, err := db.Collection("enrollments").InsertOne(ctx, enrollment); err != nil {
			restorePendingRegistration(db, pending)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		msg := welcomeMessage(pending.FirstName, program.Title)
		msg.To = pending.Email
		mailer.Send(msg)

		log.Println("[REGISTER] [INFO] registration finalized:", pending.Email, "program:", program.Title)
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"uid":          uid.Hex(),
			"email":        pending.Email,
			"password":     pending.Password,
			"programTitle": program.Title,
		})
	}
}
