package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"backend/internal/email"
)

func TestWelcomeMessageMentionsProgram(t *testing.T) {
	msg := welcomeMessage("Ada", "Tech Foundations")

	if !strings.Contains(msg.Text, "Ada") {
		t.Error("welcome text should greet the student by first name")
	}
	if !strings.Contains(msg.Text, "Tech Foundations") {
		t.Error("welcome text should name the program")
	}
	if msg.Subject == "" {
		t.Error("welcome message needs a subject")
	}
}

func TestRegisterRestoresPendingAfterWriteFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("failed user write re-stages the token", func(mt *mtest.T) {
		programID := primitive.NewObjectID()
		pendingDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "token", Value: "tok-retry"},
			{Key: "firstName", Value: "Ada"},
			{Key: "lastName", Value: "Lovelace"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "password", Value: "password123"},
			{Key: "courseId", Value: primitive.NewObjectID()},
			{Key: "programId", Value: programID},
			{Key: "createdAt", Value: time.Now()},
		}
		programDoc := bson.D{
			{Key: "_id", Value: programID},
			{Key: "title", Value: "Tech Foundations"},
		}

		ns := mt.DB.Name() + "."
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(), // connection check
			mtest.CreateCursorResponse(0, ns+"pending_registrations", mtest.FirstBatch, pendingDoc),
			mtest.CreateCursorResponse(0, ns+"programs", mtest.FirstBatch, programDoc),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: pendingDoc}), // token consumed
			mtest.CreateCursorResponse(0, ns+"users", mtest.FirstBatch),          // no account yet
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "user insert failed"}),
			mtest.CreateSuccessResponse(), // pending restored
		)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/users/register-user",
			strings.NewReader(`{"token":"tok-retry"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		RegisterUserAndEnroll(mt.DB, email.NewSender("", "", ""))(c)

		if w.Code != http.StatusInternalServerError {
			mt.Fatalf("expected 500 after the user write failed, got %d", w.Code)
		}

		restores := 0
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "insert" && evt.Command.Lookup("insert").StringValue() == "pending_registrations" {
				restores++
			}
		}
		if restores != 1 {
			mt.Fatalf("expected the pending registration to be re-staged once, saw %d inserts", restores)
		}
	})
}
