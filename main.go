package main

import (
	"log/slog"
	"os"

	"ain-oman-crm/config"
	"ain-oman-crm/internal/handlers"
	"ain-oman-crm/internal/middleware"
	"ain-oman-crm/internal/routes"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}

	config.LoadJWTKey()
	config.ConnectDB()
	config.ConnectRedis()

	if err := config.InitGoogleServices(); err != nil {
		slog.Warn("Google services unavailable, meter recognition disabled", "error", err)
	}

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Building{},
		&models.Unit{},
		&models.Tenant{},
		&models.LeaseContract{},
		&models.ContractSurcharge{},
		&models.SurchargeTemplate{},
		&models.PaymentInstrument{},
		&models.Notification{},
	)
	if err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	go handlers.GlobalHub.Run()

	r := gin.Default()
	r.Static("/storage", "./storage")

	routes.RegisterAuthRoutes(r)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	routes.RegisterAPIRoutes(authorized)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("Starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
