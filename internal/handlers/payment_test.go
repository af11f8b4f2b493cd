package handlers

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestPaymentRedirectURLEmbedsToken(t *testing.T) {
	url := paymentRedirectURL("https://academy.example.com", "tok-abc")
	if url != "https://academy.example.com/payment-success?token=tok-abc" {
		t.Fatalf("unexpected redirect url %q", url)
	}
}

func TestPaymentRedirectURLTrimsTrailingSlash(t *testing.T) {
	url := paymentRedirectURL("https://academy.example.com/", "tok-abc")
	if strings.Contains(url, "//payment-success") {
		t.Fatalf("redirect url has doubled slash: %q", url)
	}
}

func TestResolveProgramIDExplicitWins(t *testing.T) {
	explicit := primitive.NewObjectID()
	course := models.Course{ProgramIDs: models.StringList{primitive.NewObjectID().Hex()}}

	got, err := resolveProgramID(explicit.Hex(), course)
	if err != nil {
		t.Fatalf("resolveProgramID returned error: %v", err)
	}
	if got != explicit {
		t.Errorf("expected explicit program id, got %s", got.Hex())
	}
}

func TestResolveProgramIDFallsBackToCourse(t *testing.T) {
	associated := primitive.NewObjectID()
	course := models.Course{ProgramIDs: models.StringList{associated.Hex()}}

	got, err := resolveProgramID("", course)
	if err != nil {
		t.Fatalf("resolveProgramID returned error: %v", err)
	}
	if got != associated {
		t.Errorf("expected course program id, got %s", got.Hex())
	}
}

func TestResolveProgramIDInvalidExplicit(t *testing.T) {
	if _, err := resolveProgramID("not-hex", models.Course{}); err == nil {
		t.Fatal("expected error for malformed explicit programId")
	}
}

func TestResolveProgramIDNoAssociation(t *testing.T) {
	if _, err := resolveProgramID("", models.Course{}); err == nil {
		t.Fatal("expected error for course with no program association")
	}
}

func TestResolveProgramIDSkipsLegacyGarbage(t *testing.T) {
	valid := primitive.NewObjectID()
	course := models.Course{ProgramIDs: models.StringList{"", "legacy-name", valid.Hex()}}

	got, err := resolveProgramID("", course)
	if err != nil {
		t.Fatalf("resolveProgramID returned error: %v", err)
	}
	if got != valid {
		t.Errorf("expected first parseable id, got %s", got.Hex())
	}
}
