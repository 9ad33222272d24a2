package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glowbook/salon-api/internal/config"
	"github.com/glowbook/salon-api/internal/handlers"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/store"
)

func main() {
	log := logrus.New()

	cfg := config.Load(log)
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set; token issuance will fail")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)
	if err := client.Ping(ctx, nil); err != nil {
		log.WithError(err).Fatal("Failed to ping MongoDB")
	}
	db := client.Database(cfg.MongoDatabase)
	log.WithField("database", cfg.MongoDatabase).Info("Connected to MongoDB")

	// --- Stores ---
	users := store.NewMongoUserStore(db)
	services := store.NewMongoServiceStore(db)
	appointments := store.NewMongoAppointmentStore(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("Failed to create user indexes")
	}

	h := handlers.NewHandler(users, services, appointments, log)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/me", middleware.RequireAuth(), h.Me)
		authRoutes.GET("/staff", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin), h.ListStaff)
		authRoutes.DELETE("/staff/:id", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin), h.DeleteStaff)
	}

	serviceRoutes := r.Group("/services")
	{
		serviceRoutes.GET("", h.ListServices)

		adminOnly := serviceRoutes.Group("")
		adminOnly.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
		{
			adminOnly.POST("", h.CreateService)
			adminOnly.PUT("/:id", h.UpdateService)
			adminOnly.DELETE("/:id", h.DeleteService)
		}
	}

	aptRoutes := r.Group("/appointments")
	aptRoutes.Use(middleware.RequireAuth())
	{
		aptRoutes.POST("", h.BookAppointment)
		aptRoutes.GET("/my", h.ListMyAppointments)
		aptRoutes.GET("/my/completed", h.ListMyCompletedAppointments)
		aptRoutes.GET("/staff", middleware.RequireRole(models.RoleStaff), h.ListAllAppointments)
		aptRoutes.GET("/admin", middleware.RequireRole(models.RoleAdmin), h.ListAllAppointments)
		aptRoutes.PUT("/:id/status", middleware.RequireRole(models.RoleStaff), h.UpdateAppointmentStatus)
		aptRoutes.PUT("/:id/cancel", h.CancelAppointment)
	}

	log.WithField("port", cfg.Port).Info("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Server exited")
	}
}
