package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// publicCourseProjection excludes classLink from the stored document. The
// omitempty json tag on the field then keeps the key out of the response, so
// the hosted-lesson link is never visible to unenrolled visitors.
func publicCourseProjection() bson.M {
	return bson.M{"classLink": 0}
}

type courseByTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

/*
GET /api/admin/public/courses
- active catalog, classLink stripped
*/
func GetPublicCourses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{"status": bson.M{"$ne": "inactive"}}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetProjection(publicCourseProjection()).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("courses").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var courses []models.Course
		if err := cursor.All(ctx, &courses); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": courses})
	}
}

/*
POST /api/admin/course-by-title
- public single-course lookup, classLink stripped
*/
func GetCourseByTitle(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req courseByTitleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		title := strings.TrimSpace(req.Title)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.FindOne().SetProjection(publicCourseProjection())

		var course models.Course
		err := db.Collection("courses").FindOne(ctx, bson.M{"title": title}, opts).Decode(&course)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, course)
	}
}
