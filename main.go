package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/email"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/payments"
	"backend/internal/sessions"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureStudentIndexes(db); err != nil {
		log.Printf("⚠️ student index warning: %v", err)
	}
	if err := database.EnsurePendingRegistrationIndexes(db); err != nil {
		log.Printf("⚠️ pending registration index warning: %v", err)
	}
	if err := database.EnsureEnrollmentIndexes(db); err != nil {
		log.Printf("⚠️ enrollment index warning: %v", err)
	}
	if err := database.EnsureNotificationIndexes(db); err != nil {
		log.Printf("⚠️ notification index warning: %v", err)
	}
	if err := database.EnsureCourseIndexes(db); err != nil {
		log.Printf("⚠️ course index warning: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppEnv.RedisAddr,
		Password: config.AppEnv.RedisPassword,
	})
	sessionStore := sessions.NewStore(rdb, config.AppEnv.SessionIdleTTL)

	linker := payments.NewSquareClient(
		config.AppEnv.SquareAccessToken,
		config.AppEnv.SquareEnv,
		config.AppEnv.SquareLocationID,
	)

	mailer := email.NewSender(config.AppEnv.SendgridAPIKey, "Zeelevate Academy", config.AppEnv.FromEmail)

	r := gin.Default()

	api := r.Group("/api")

	api.POST("/payments/create-payment", handlers.CreatePaymentLink(db, linker, config.AppEnv.FrontendURL))
	api.POST("/users/register-user", handlers.RegisterUserAndEnroll(db, mailer))

	api.POST("/auth/login", handlers.Login(db, sessionStore, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	authed := api.Group("")
	authed.Use(middleware.UserAuth(db, sessionStore, config.AppEnv.JWTSecret))
	{
		authed.POST("/auth/logout", handlers.Logout(sessionStore))
		authed.GET("/auth/me", handlers.GetMe(db))

		authed.POST("/users/get-enrollments", handlers.GetEnrollments(db))
		authed.GET("/users/notifications", handlers.GetNotifications(db))
		authed.PUT("/users/notifications/:id/read", handlers.MarkNotificationRead(db))
		authed.DELETE("/users/clear-notifications", handlers.ClearNotifications(db))
	}

	// Public catalog reads live under /api/admin for frontend compatibility;
	// classLink is stripped from every response.
	api.GET("/admin/public/courses", handlers.GetPublicCourses(db))
	api.GET("/admin/public/programs", handlers.GetPublicPrograms(db))
	api.POST("/admin/course-by-title", handlers.GetCourseByTitle(db))

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(db, sessionStore, config.AppEnv.JWTSecret))
	{
		admin.GET("/courses", handlers.GetAllCourses(db))
		admin.POST("/courses", handlers.CreateCourse(db))
		admin.PUT("/courses/:id", handlers.UpdateCourse(db))
		admin.DELETE("/courses/:id", handlers.DeleteCourse(db))

		admin.GET("/programs", handlers.GetAllPrograms(db))
		admin.POST("/programs", handlers.CreateProgram(db))
		admin.PUT("/programs/:id", handlers.UpdateProgram(db))
		admin.DELETE("/programs/:id", handlers.DeleteProgram(db))

		admin.GET("/students", handlers.GetStudents(db))
		admin.GET("/students/:id", handlers.GetStudent(db))

		admin.POST("/send-notification", handlers.SendNotification(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
