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

type ProgramCreateRequest struct {
	Title     string   `json:"title" binding:"required"`
	Price     float64  `json:"price" binding:"required,gt=0"`
	Badge     string   `json:"badge"`
	Status    string   `json:"status"`
	Order     int      `json:"order"`
	Features  []string `json:"features"`
	ClassLink string   `json:"classLink"`
}

type ProgramUpdateRequest struct {
	Title     *string   `json:"title"`
	Price     *float64  `json:"price"`
	Badge     *string   `json:"badge"`
	Status    *string   `json:"status"`
	Order     *int      `json:"order"`
	Features  *[]string `json:"features"`
	ClassLink *string   `json:"classLink"`
}

/*
GET /api/admin/programs
*/
func GetAllPrograms(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

		cursor, err := db.Collection("programs").Find(ctx, filter, opts)
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

		c.JSON(http.StatusOK, gin.H{"data": programs})
	}
}

/*
POST /api/admin/programs
- duplicate titles rejected
*/
func CreateProgram(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProgramCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		title := strings.TrimSpace(req.Title)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("programs").CountDocuments(ctx, bson.M{"title": title})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "program already exists"})
			return
		}

		status := strings.TrimSpace(req.Status)
		if status == "" {
			status = "active"
		}

		program := models.Program{
			Title:     title,
			Price:     req.Price,
			Badge:     strings.TrimSpace(req.Badge),
			Status:    status,
			Order:     req.Order,
			Features:  models.StringList(req.Features),
			ClassLink: strings.TrimSpace(req.ClassLink),
			CreatedAt: time.Now(),
		}

		result, err := db.Collection("programs").InsertOne(ctx, program)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		program.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, program)
	}
}

/*
PUT /api/admin/programs/:id
*/
func UpdateProgram(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ProgramUpdateRequest
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
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than 0"})
				return
			}
			update["price"] = *req.Price
		}
		if req.Badge != nil {
			update["badge"] = strings.TrimSpace(*req.Badge)
		}
		if req.Status != nil {
			update["status"] = strings.TrimSpace(*req.Status)
		}
		if req.Order != nil {
			update["order"] = *req.Order
		}
		if req.Features != nil {
			update["features"] = models.StringList(*req.Features)
		}
		if req.ClassLink != nil {
			update["classLink"] = strings.TrimSpace(*req.ClassLink)
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Program
		err = db.Collection("programs").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
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
DELETE /api/admin/programs/:id
*/
func DeleteProgram(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("programs").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "program deleted"})
	}
}
