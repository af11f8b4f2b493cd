package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// canMarkRead allows only the rightful recipient to mark a notification
// read. Broadcasts are materialized one copy per student, so the caller's
// global copy already names them as recipient; another student's copy is
// never theirs to touch.
func canMarkRead(n models.Notification, uid primitive.ObjectID) bool {
	return n.RecipientUID == uid
}

// studentNotificationsFilter scopes list and clear operations to the
// caller's own copies, broadcast or not.
func studentNotificationsFilter(uid primitive.ObjectID) bson.M {
	return bson.M{"recipientUid": uid}
}

/*
GET /api/users/notifications
  - the caller's own notifications, newest first; broadcast copies are
    addressed per student, so no extra broadcast lookup is needed
*/
func GetNotifications(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := uidFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("notifications").Find(ctx, studentNotificationsFilter(uid), opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		notifications := make([]models.Notification, 0)
		if err := cursor.All(ctx, &notifications); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	}
}

/*
PUT /api/users/notifications/:id/read
- flips read to true and touches nothing else
*/
func MarkNotificationRead(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := uidFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var notification models.Notification
		if err := db.Collection("notifications").FindOne(ctx, bson.M{"_id": id}).Decode(&notification); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if !canMarkRead(notification, uid) {
			log.Println("[NOTIFY] [ERROR] mark-read denied for uid:", uid.Hex())
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		if _, err := db.Collection("notifications").UpdateByID(ctx, id, bson.M{
			"$set": bson.M{"read": true},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
	}
}

/*
DELETE /api/users/clear-notifications
  - deletes only the caller's own copies; copies addressed to other
    students are untouched
*/
func ClearNotifications(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := uidFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("notifications").DeleteMany(ctx, studentNotificationsFilter(uid))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Printf("[NOTIFY] [INFO] cleared %d notifications for %s", result.DeletedCount, uid.Hex())
		c.JSON(http.StatusOK, gin.H{"deleted": result.DeletedCount})
	}
}
