package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type SendNotificationRequest struct {
	Type         string   `json:"type" binding:"required,oneof=global program individual"`
	Message      string   `json:"message" binding:"required"`
	ProgramID    string   `json:"programId"`
	RecipientIDs []string `json:"recipientIds"`
}

// buildNotifications expands one message into per-recipient documents for a
// single batched insert. Every copy starts unread.
func buildNotifications(message string, sender primitive.ObjectID, notifType string, recipients []primitive.ObjectID, now time.Time) []interface{} {
	docs := make([]interface{}, 0, len(recipients))
	for _, recipient := range recipients {
		docs = append(docs, models.Notification{
			Message:      message,
			SenderUID:    sender,
			RecipientUID: recipient,
			Type:         notifType,
			Global:       notifType == models.NotificationGlobal,
			Read:         false,
			CreatedAt:    now,
		})
	}
	return docs
}

func allStudentIDs(ctx context.Context, db *mongo.Database) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := db.Collection("students").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func studentIDsInProgram(ctx context.Context, db *mongo.Database, programID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := db.Collection("enrollments").Distinct(ctx, "studentId", bson.M{"programId": programID})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, value := range raw {
		if id, ok := value.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

/*
POST /api/admin/send-notification
  - global: every student; program: students enrolled in the program;
    individual: explicit recipients, each validated to exist.
  - one InsertMany batch per call; broadcast variants skip per-recipient
    validation on purpose, a full-roster existence check per send is not
    worth the reads.
*/
func SendNotification(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/send-notification"
		defer handlePanic(c, route)

		var req SendNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		sender, ok := uidFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			respondWithError(c, http.StatusBadRequest, route, "message cannot be empty")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var recipients []primitive.ObjectID
		var err error

		switch req.Type {
		case models.NotificationGlobal:
			recipients, err = allStudentIDs(ctx, db)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

		case models.NotificationProgram:
			programID, parseErr := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProgramID))
			if parseErr != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid programId")
				return
			}
			recipients, err = studentIDsInProgram(ctx, db, programID)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

		case models.NotificationIndividual:
			if len(req.RecipientIDs) == 0 {
				respondWithError(c, http.StatusBadRequest, route, "recipientIds required")
				return
			}
			for _, raw := range req.RecipientIDs {
				id, parseErr := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
				if parseErr != nil {
					respondWithError(c, http.StatusBadRequest, route, "invalid recipient id: "+raw)
					return
				}
				recipients = append(recipients, id)
			}

			count, countErr := db.Collection("students").CountDocuments(ctx, bson.M{
				"_id": bson.M{"$in": recipients},
			})
			if countErr != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if count != int64(len(recipients)) {
				respondWithError(c, http.StatusNotFound, route, "one or more recipients not found")
				return
			}
		}

		if len(recipients) == 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "count": 0})
			return
		}

		docs := buildNotifications(message, sender, req.Type, recipients, time.Now())
		result, err := db.Collection("notifications").InsertMany(ctx, docs)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[NOTIFY] [INFO] %s notification sent to %d recipients", req.Type, len(result.InsertedIDs))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(result.InsertedIDs),
		})
	}
}
