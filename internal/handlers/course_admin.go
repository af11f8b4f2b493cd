package handlers

import (
	"context"
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

type CourseCreateRequest struct {
	Title                string     `json:"title" binding:"required"`
	Details              string     `json:"details"`
	Price                float64    `json:"price" binding:"required,gt=0"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	ClassStartDate       *time.Time `json:"classStartDate"`
	ClassLink            string     `json:"classLink"`
	DurationWeeks        int        `json:"durationWeeks"`
	ProgramIDs           []string   `json:"programIds"`
	Status               string     `json:"status"`
}

type CourseUpdateRequest struct {
	Title                *string    `json:"title"`
	Details              *string    `json:"details"`
	Price                *float64   `json:"price"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	ClassStartDate       *time.Time `json:"classStartDate"`
	ClassLink            *string    `json:"classLink"`
	DurationWeeks        *int       `json:"durationWeeks"`
	ProgramIDs           *[]string  `json:"programIds"`
	Status               *string    `json:"status"`
}

/*
GET /api/admin/courses
- full documents, classLink included (admin panel)
- optional ?status= and ?search= filters, paginated
*/
func GetAllCourses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"title": bson.M{"$regex": search, "$options": "i"}},
				{"details": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("courses").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
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

		c.JSON(http.StatusOK, gin.H{
			"data": courses,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
	}
}

/*
POST /api/admin/courses
- duplicate titles rejected
*/
func CreateCourse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CourseCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		title := strings.TrimSpace(req.Title)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("courses").CountDocuments(ctx, bson.M{"title": title})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "course already exists"})
			return
		}

		status := strings.TrimSpace(req.Status)
		if status == "" {
			status = "active"
		}

		course := models.Course{
			Title:                title,
			Details:              strings.TrimSpace(req.Details),
			Price:                req.Price,
			RegistrationDeadline: req.RegistrationDeadline,
			ClassStartDate:       req.ClassStartDate,
			ClassLink:            strings.TrimSpace(req.ClassLink),
			DurationWeeks:        req.DurationWeeks,
			ProgramIDs:           models.StringList(req.ProgramIDs),
			Status:               status,
			CreatedAt:            time.Now(),
		}

		result, err := db.Collection("courses").InsertOne(ctx, course)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		course.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, course)
	}
}

/*
PUT /api/admin/courses/:id
*/
func UpdateCourse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req CourseUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
				return
			}
			update["title"] = title
		}
		if req.Details != nil {
			update["details"] = strings.TrimSpace(*req.Details)
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than 0"})
				return
			}
			update["price"] = *req.Price
		}
		if req.RegistrationDeadline != nil {
			update["registrationDeadline"] = *req.RegistrationDeadline
		}
		if req.ClassStartDate != nil {
			update["classStartDate"] = *req.ClassStartDate
		}
		if req.ClassLink != nil {
			update["classLink"] = strings.TrimSpace(*req.ClassLink)
		}
		if req.DurationWeeks != nil {
			update["durationWeeks"] = *req.DurationWeeks
		}
		if req.ProgramIDs != nil {
			update["programIds"] = models.StringList(*req.ProgramIDs)
		}
		if req.Status != nil {
			update["status"] = strings.TrimSpace(*req.Status)
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Course
		err = db.Collection("courses").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /api/admin/courses/:id
*/
func DeleteCourse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("courses").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
	}
}
