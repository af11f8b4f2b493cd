package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// sumCourseDurations aggregates a program's duration from its courses.
func sumCourseDurations(courses []models.Course) int {
	total := 0
	for _, course := range courses {
		total += course.DurationWeeks
	}
	return total
}

/*
GET /api/admin/public/programs
  - active programs ordered for display, duration summed from associated
    courses at read time, classLink stripped
*/
func GetPublicPrograms(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		opts := options.Find().
			SetProjection(bson.M{"classLink": 0}).
			SetSort(bson.D{{Key: "order", Value: 1}})

		cursor, err := db.Collection("programs").Find(ctx, bson.M{"status": bson.M{"$ne": "inactive"}}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var programs []models.Program
		if err := cursor.All(ctx, &programs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		for i := range programs {
			courseCursor, err := db.Collection("courses").Find(ctx, bson.M{
				"programIds": bson.M{"$in": []string{programs[i].ID.Hex()}},
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}

			var courses []models.Course
			if err := courseCursor.All(ctx, &courses); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
				return
			}

			programs[i].DurationWeeks = sumCourseDurations(courses)
		}

		c.JSON(http.StatusOK, gin.H{"data": programs})
	}
}
