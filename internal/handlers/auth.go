package handlers

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
	"golang.org/x/crypto/bcrypt"

	"backend/internal/models"
	"backend/internal/sessions"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func issueAccessToken(uid primitive.ObjectID, email, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   uid.Hex(),
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func Login(db *mongo.Database, store *sessions.Store, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var record models.UserRecord
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&record); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		accessToken, err := issueAccessToken(record.ID, record.Email, record.Role, jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		if err := store.Create(ctx, record.ID.Hex()); err != nil {
			log.Println("[AUTH] [ERROR] session creation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session creation failed"})
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", record.Email)
		c.JSON(http.StatusOK, gin.H{
			"accessToken": accessToken,
			"user": gin.H{
				"id":    record.ID.Hex(),
				"email": record.Email,
				"role":  record.Role,
			},
		})
	}
}

func Logout(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := uidFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.Destroy(ctx, uid.Hex()); err != nil {
			log.Println("[AUTH] [ERROR] session destroy failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}

		log.Println("[AUTH] [INFO] logout:", uid.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

func GetMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := uidFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		role := c.GetString("role")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		resp := gin.H{
			"id":    uid.Hex(),
			"email": c.GetString("email"),
			"role":  role,
		}

		if role == models.RoleStudent {
			var student models.Student
			if err := db.Collection("students").FindOne(ctx, bson.M{"_id": uid}).Decode(&student); err == nil {
				resp["firstName"] = student.FirstName
				resp["lastName"] = student.LastName
				resp["phone"] = student.Phone
				resp["createdAt"] = student.CreatedAt
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}
