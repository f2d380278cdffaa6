package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"bcms/backend/internal/api/handler"
	"bcms/backend/internal/auth"
	"bcms/backend/internal/events"
	"bcms/backend/internal/models"
	"bcms/backend/internal/notify"
	"bcms/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.Profile{},
		&models.UserRole{},
		&models.Complaint{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func setupNotifier() notify.Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatIDStr == "" {
		log.Println("Telegram notifier not configured, notices disabled")
		return notify.Noop{}
	}
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid TELEGRAM_CHAT_ID, notices disabled: %v", err)
		return notify.Noop{}
	}
	n, err := notify.NewTelegramNotifier(token, chatID)
	if err != nil {
		log.Printf("WARNING: Telegram notifier unavailable, notices disabled: %v", err)
		return notify.Noop{}
	}
	return n
}

func main() {
	log.Println("Starting BCMS Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is not set!")
	}

	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	hub := events.NewHub(s)
	go hub.Run()

	h := handler.NewHandler(s, hub, setupNotifier(), jwtSecret)

	r := gin.Default()

	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/token", h.Token)

	api := r.Group("/", auth.Middleware(jwtSecret, s))
	{
		api.GET("/profiles", h.ListProfiles)
		api.GET("/profiles/:id", h.GetProfile)
		api.PUT("/profiles/:id", h.UpdateProfile)

		api.GET("/me/role", h.GetOwnRole)
		api.PUT("/users/:id/role", h.SetRole)
		api.DELETE("/users/:id", h.DeleteUser)

		api.POST("/complaints", h.CreateComplaint)
		api.GET("/complaints", h.ListComplaints)
		api.GET("/complaints/:id", h.GetComplaint)
		api.PUT("/complaints/:id", h.UpdateComplaint)
		api.DELETE("/complaints/:id", h.DeleteComplaint)
		api.PUT("/complaints/:id/assign", h.AssignComplaint)

		api.GET("/complaints/:id/comments", h.ListComments)
		api.POST("/complaints/:id/comments", h.AddComment)

		api.GET("/dashboard", h.Dashboard)
		api.GET("/ws", h.ServeWebSocket)
	}

	server := &http.Server{
		Addr:           ":8080",
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
