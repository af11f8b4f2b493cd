package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, uid string, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": uid,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestParseBearerValidToken(t *testing.T) {
	uid := primitive.NewObjectID()
	header := "Bearer " + signToken(t, uid.Hex(), testSecret)

	got, err := ParseBearer(header, testSecret)
	if err != nil {
		t.Fatalf("ParseBearer returned error: %v", err)
	}
	if got != uid {
		t.Errorf("expected uid %s, got %s", uid.Hex(), got.Hex())
	}
}

func TestParseBearerMissingHeader(t *testing.T) {
	if _, err := ParseBearer("", testSecret); err == nil {
		t.Fatal("expected error for missing header")
	}
}

func TestParseBearerBadFormat(t *testing.T) {
	tests := []string{
		"token-without-scheme",
		"Basic abc123",
		"Bearer",
	}
	for _, header := range tests {
		if _, err := ParseBearer(header, testSecret); err == nil {
			t.Errorf("expected error for header %q", header)
		}
	}
}

func TestParseBearerWrongSecret(t *testing.T) {
	uid := primitive.NewObjectID()
	header := "Bearer " + signToken(t, uid.Hex(), "other-secret")

	if _, err := ParseBearer(header, testSecret); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseBearerExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	if _, err := ParseBearer("Bearer "+signed, testSecret); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseBearerNonObjectIDSubject(t *testing.T) {
	header := "Bearer " + signToken(t, "not-an-object-id", testSecret)
	if _, err := ParseBearer(header, testSecret); err == nil {
		t.Fatal("expected error for malformed subject")
	}
}

func TestRoleAllowed(t *testing.T) {
	if !RoleAllowed("student", nil) {
		t.Error("empty allow list should admit any role")
	}
	if !RoleAllowed("admin", []string{"admin"}) {
		t.Error("admin should pass an admin gate")
	}
	if RoleAllowed("student", []string{"admin"}) {
		t.Error("student should not pass an admin gate")
	}
}
