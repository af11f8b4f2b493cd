package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
	"backend/internal/sessions"
)

// ParseBearer extracts and verifies the bearer token, returning the uid it
// carries. The claims alone do not authorize anything; the role is always
// re-read from the users collection.
func ParseBearer(header, secret string) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return primitive.NilObjectID, errMissingToken
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return primitive.NilObjectID, errInvalidToken
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, errInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return primitive.NilObjectID, errInvalidToken
	}

	uid, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return primitive.NilObjectID, errInvalidToken
	}

	return uid, nil
}

// RoleAllowed reports whether the role passes the gate. An empty allow list
// means any authenticated role.
func RoleAllowed(role string, allowedRoles []string) bool {
	if len(allowedRoles) == 0 {
		return true
	}
	for _, r := range allowedRoles {
		if role == r {
			return true
		}
	}
	return false
}

// AuthGuard verifies the bearer token, loads the uid's role record, gates on
// role, and confirms the session is still alive in Redis. On success the
// uid, role and email are attached to the gin context.
func AuthGuard(db *mongo.Database, store *sessions.Store, secret string, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := ParseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			log.Println("[AUTH] [ERROR]", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var record models.UserRecord
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&record); err != nil {
			log.Println("[AUTH] [ERROR] user record missing for uid:", uid.Hex())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		if !RoleAllowed(record.Role, allowedRoles) {
			log.Println("[AUTH] [ERROR] role not allowed:", record.Role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		alive, err := store.Touch(ctx, uid.Hex())
		if err != nil {
			log.Println("[AUTH] [ERROR] session check failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session check failed"})
			return
		}
		if !alive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set("uid", uid)
		c.Set("role", record.Role)
		c.Set("email", record.Email)
		c.Next()
	}
}

func AdminAuth(db *mongo.Database, store *sessions.Store, secret string) gin.HandlerFunc {
	return AuthGuard(db, store, secret, models.RoleAdmin)
}

func UserAuth(db *mongo.Database, store *sessions.Store, secret string) gin.HandlerFunc {
	return AuthGuard(db, store, secret)
}
