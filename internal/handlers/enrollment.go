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

type getEnrollmentsRequest struct {
	UID string `json:"uid" binding:"required"`
}

type enrolledCourseView struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Details        string     `json:"details,omitempty"`
	DurationWeeks  int        `json:"durationWeeks"`
	ClassStartDate *time.Time `json:"classStartDate,omitempty"`
	ClassLink      string     `json:"classLink,omitempty"`
}

type enrollmentView struct {
	ProgramID      string               `json:"programId"`
	ProgramTitle   string               `json:"programTitle"`
	EnrollmentDate time.Time            `json:"enrollmentDate"`
	Status         string               `json:"status"`
	ClassLink      string               `json:"classLink,omitempty"`
	Courses        []enrolledCourseView `json:"courses"`
}

func enrolledCourseProjection(course models.Course) enrolledCourseView {
	return enrolledCourseView{
		ID:             course.ID.Hex(),
		Title:          course.Title,
		Details:        course.Details,
		DurationWeeks:  course.DurationWeeks,
		ClassStartDate: course.ClassStartDate,
		ClassLink:      course.ClassLink,
	}
}

// GetEnrollments returns a student's enrollments newest-first, with the
// resolved program and the courses belonging to it attached. This is a
// read-time join; each call costs one program read and one course query per
// enrollment. Students may only read their own enrollments; admins any.
func GetEnrollments(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/users/get-enrollments"
		defer handlePanic(c, route)

		var req getEnrollmentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		uid, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid uid")
			return
		}

		if c.GetString("role") == models.RoleStudent {
			callerUID, ok := uidFromContext(c)
			if !ok || callerUID != uid {
				respondWithError(c, http.StatusForbidden, route, "forbidden")
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "enrolledAt", Value: -1}})
		cursor, err := db.Collection("enrollments").Find(ctx, bson.M{"studentId": uid}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var enrollments []models.Enrollment
		if err := cursor.All(ctx, &enrollments); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		views := make([]enrollmentView, 0, len(enrollments))
		for _, enrollment := range enrollments {
			view := enrollmentView{
				ProgramID:      enrollment.ProgramID.Hex(),
				ProgramTitle:   enrollment.ProgramTitle,
				EnrollmentDate: enrollment.EnrolledAt,
				Status:         enrollment.Status,
				Courses:        []enrolledCourseView{},
			}

			var program models.Program
			err := db.Collection("programs").FindOne(ctx, bson.M{"_id": enrollment.ProgramID}).Decode(&program)
			if err == nil {
				view.ProgramTitle = program.Title
				view.ClassLink = program.ClassLink
			} else if err != mongo.ErrNoDocuments {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			courseCursor, err := db.Collection("courses").Find(ctx, bson.M{
				"programIds": bson.M{"$in": []string{enrollment.ProgramID.Hex()}},
			})
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			var courses []models.Course
			if err := courseCursor.All(ctx, &courses); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "decode error")
				return
			}

			for _, course := range courses {
				view.Courses = append(view.Courses, enrolledCourseProjection(course))
			}

			views = append(views, view)
		}

		log.Println("[ENROLLMENT] [INFO] enrollments fetched for:", uid.Hex())
		c.JSON(http.StatusOK, gin.H{"enrollments": views})
	}
}
