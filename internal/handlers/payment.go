package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
	"backend/internal/payments"
)

type customerDetailsRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
}

type courseDetailsRequest struct {
	CourseID  string `json:"courseId" binding:"required"`
	ProgramID string `json:"programId"`
}

type createPaymentRequest struct {
	CustomerDetails customerDetailsRequest `json:"customerDetails" binding:"required"`
	CourseDetails   courseDetailsRequest   `json:"courseDetails" binding:"required"`
}

// paymentRedirectURL builds the URL Square redirects the buyer to after a
// successful checkout. The frontend success page reads the token back out of
// the query string to finalize registration.
func paymentRedirectURL(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/payment-success?token=" + token
}

// resolveProgramID picks the program the pending registration will enroll
// into: an explicit programId from the request wins, otherwise the course's
// first program association.
func resolveProgramID(requested string, course models.Course) (primitive.ObjectID, error) {
	if trimmed := strings.TrimSpace(requested); trimmed != "" {
		id, err := primitive.ObjectIDFromHex(trimmed)
		if err != nil {
			return primitive.NilObjectID, errors.New("invalid programId")
		}
		return id, nil
	}

	for _, raw := range course.ProgramIDs {
		if id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw)); err == nil {
			return id, nil
		}
	}

	return primitive.NilObjectID, errors.New("course has no program association")
}

// CreatePaymentLink stages a signup and returns a hosted checkout URL.
// The pending registration is written before the payment-link call; if that
// call fails the record is deleted best-effort, and the TTL index reaps
// anything the cleanup misses.
func CreatePaymentLink(db *mongo.Database, linker payments.PaymentLinker, frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payments/create-payment"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.CustomerDetails.Email))

		courseID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.CourseDetails.CourseID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid courseId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, route, "email is already registered")
			return
		}

		var course models.Course
		if err := db.Collection("courses").FindOne(ctx, bson.M{"_id": courseID}).Decode(&course); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "course not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if strings.TrimSpace(course.Title) == "" || course.Price <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "course is missing a title or price")
			return
		}

		programID, err := resolveProgramID(req.CourseDetails.ProgramID, course)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		token := uuid.NewString()
		pending := models.PendingRegistration{
			Token:       token,
			FirstName:   strings.TrimSpace(req.CustomerDetails.FirstName),
			LastName:    strings.TrimSpace(req.CustomerDetails.LastName),
			Email:       email,
			Password:    req.CustomerDetails.Password,
			Phone:       strings.TrimSpace(req.CustomerDetails.Phone),
			CourseID:    course.ID,
			CourseTitle: course.Title,
			ProgramID:   programID,
			CreatedAt:   time.Now(),
		}

		if _, err := db.Collection("pending_registrations").InsertOne(ctx, pending); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		link, err := linker.CreateLink(ctx, payments.LinkRequest{
			Name:        course.Title,
			AmountCents: payments.MinorUnits(course.Price),
			RedirectURL: paymentRedirectURL(frontendURL, token),
			Note:        token,
		})
		if err != nil {
			log.Println("[PAYMENT] [ERROR] payment link creation failed:", err)
			if _, delErr := db.Collection("pending_registrations").DeleteOne(ctx, bson.M{"token": token}); delErr != nil {
				log.Println("[PAYMENT] [ERROR] pending registration cleanup failed:", delErr)
			}
			respondWithError(c, http.StatusInternalServerError, route, "payment link creation failed")
			return
		}

		log.Println("[PAYMENT] [INFO] payment link created for:", email, "course:", course.Title)
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"paymentUrl": link.URL,
			"token":      token,
		})
	}
}
