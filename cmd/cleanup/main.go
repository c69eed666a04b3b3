package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/meditrack/clinic-service/internal/appointment"
	"github.com/meditrack/clinic-service/internal/config"
	"github.com/meditrack/clinic-service/internal/db"
)

func main() {
	log.Println("Appointment Purge Job - Starting")

	cfg, err := config.Load(os.Getenv("CLINIC_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Retention Policy: %d days", cfg.PurgeRetentionDays)

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	purgeService := appointment.NewPurgeService(database, cfg.PurgeRetention(), cfg.PurgeBatchSize)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := purgeService.CountStale(ctx)
	if err != nil {
		log.Fatalf("Failed to count stale appointments: %v", err)
	}

	log.Printf("Found %d appointments eligible for purging", count)

	if count == 0 {
		log.Println("No purge needed. Exiting.")
		os.Exit(0)
	}

	purged, err := purgeService.PurgeStale(ctx)
	if err != nil {
		log.Fatalf("Purge failed: %v", err)
	}

	log.Printf("✓ Purge completed successfully: %d appointments deleted", purged)
	log.Println("Purge Job - Finished")
}
