package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestBuildNotificationsOnePerRecipient(t *testing.T) {
	sender := primitive.NewObjectID()
	recipients := []primitive.ObjectID{
		primitive.NewObjectID(),
		primitive.NewObjectID(),
		primitive.NewObjectID(),
	}
	now := time.Now()

	docs := buildNotifications("Class starts Monday", sender, models.NotificationProgram, recipients, now)

	if len(docs) != len(recipients) {
		t.Fatalf("expected %d docs, got %d", len(recipients), len(docs))
	}
	for i, doc := range docs {
		n, ok := doc.(models.Notification)
		if !ok {
			t.Fatalf("doc %d is not a Notification", i)
		}
		if n.Read {
			t.Errorf("doc %d should start unread", i)
		}
		if n.RecipientUID != recipients[i] {
			t.Errorf("doc %d has wrong recipient", i)
		}
		if n.SenderUID != sender {
			t.Errorf("doc %d has wrong sender", i)
		}
		if n.Global {
			t.Errorf("program notification should not be flagged global")
		}
		if n.Message != "Class starts Monday" {
			t.Errorf("doc %d has wrong message %q", i, n.Message)
		}
	}
}

func TestBuildNotificationsGlobalFlag(t *testing.T) {
	docs := buildNotifications("Maintenance tonight", primitive.NewObjectID(), models.NotificationGlobal,
		[]primitive.ObjectID{primitive.NewObjectID()}, time.Now())

	n := docs[0].(models.Notification)
	if !n.Global {
		t.Fatal("global notification should carry the global flag")
	}
}

func TestBuildNotificationsEmptyRecipients(t *testing.T) {
	docs := buildNotifications("hello", primitive.NewObjectID(), models.NotificationIndividual, nil, time.Now())
	if len(docs) != 0 {
		t.Fatalf("expected no docs, got %d", len(docs))
	}
}

func TestCanMarkReadRecipient(t *testing.T) {
	uid := primitive.NewObjectID()
	n := models.Notification{RecipientUID: uid, Type: models.NotificationIndividual}

	if !canMarkRead(n, uid) {
		t.Error("recipient should be allowed to mark read")
	}
	if canMarkRead(n, primitive.NewObjectID()) {
		t.Error("non-recipient should be denied")
	}
}

func TestCanMarkReadGlobalCopyOwnerOnly(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	n := models.Notification{
		RecipientUID: owner,
		Type:         models.NotificationGlobal,
		Global:       true,
	}

	if !canMarkRead(n, owner) {
		t.Error("owner should be allowed to mark their broadcast copy read")
	}
	if canMarkRead(n, stranger) {
		t.Error("another student must not flip someone else's broadcast copy")
	}
}

func TestStudentNotificationsFilterScopedToRecipient(t *testing.T) {
	uid := primitive.NewObjectID()

	filter := studentNotificationsFilter(uid)

	if got := filter["recipientUid"]; got != uid {
		t.Fatalf("filter should target the caller's copies, got %v", got)
	}
	if len(filter) != 1 {
		t.Errorf("filter should match on recipient only, got %v", filter)
	}
	if _, ok := filter["$or"]; ok {
		t.Error("filter must not widen to other students' broadcast copies")
	}
}
