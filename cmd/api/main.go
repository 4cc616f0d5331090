package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/zapshift/zapshift-backend/internal/database"
	"github.com/zapshift/zapshift-backend/internal/handlers"
	"github.com/zapshift/zapshift-backend/internal/middleware"
	"github.com/zapshift/zapshift-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis (optional - tracking lookups fall back to the DB)
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:5173"
	}
	paymentService := services.NewPaymentService(db, services.NewStripeClient(), hub, siteURL, "usd")

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored parcel photos
	r.Static("/uploads", "/app/uploads")

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.String(200, "zapshift server is running")
	})

	r.POST("/users", handlers.CreateUser(db))
	r.GET("/users/:email/role", handlers.GetUserRole(db))

	r.GET("/riders", handlers.GetRiders(db))
	r.POST("/riders", handlers.CreateRider(db))
	r.PATCH("/riders/:id", middleware.AuthMiddleware(), handlers.UpdateRiderStatus(db))
	r.DELETE("/riders/:id", middleware.AuthMiddleware(), handlers.DeleteRider(db))

	r.GET("/parcels", handlers.GetParcels(db))
	r.POST("/parcels", handlers.CreateParcel(db))
	r.GET("/parcels/:id", handlers.GetParcel(db))
	r.DELETE("/parcels/:id", handlers.DeleteParcel(db))
	r.POST("/parcels/:id/photo", handlers.UploadParcelPhoto(db))
	r.GET("/track/:trackingId", handlers.TrackParcel(db))

	r.GET("/payments", middleware.AuthMiddleware(), handlers.GetPayments(db))
	r.POST("/payment-checkout-session", handlers.CreateCheckoutSession(paymentService, db))
	r.PATCH("/payment-success", handlers.PaymentSuccess(paymentService))

	r.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
