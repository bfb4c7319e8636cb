package main

import (
	"os"
	"time"

	"bookkeeping-control-backend/internal/config"
	"bookkeeping-control-backend/internal/models"
	"bookkeeping-control-backend/internal/repository"
	"bookkeeping-control-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log := config.GetLogger()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on system env")
	}

	db := config.InitDB()

	if err := db.AutoMigrate(
		&models.StagedRecord{},
		&models.LedgerTransaction{},
		&models.ReconciliationReport{},
		&models.VendorModel{},
		&models.ApprovalRule{},
		&models.ApprovalInstance{},
		&models.JournalEntry{},
		&models.Account{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := repository.NewAccountRepository(db).SeedDefaults(); err != nil {
		log.Fatalf("chart of accounts seed failed: %v", err)
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Tenant-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
