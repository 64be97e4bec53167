package main

import (
	"log"
	"os"

	"event-reg-be/internal/model"
	"event-reg-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.UserProvider{},
		&model.EventConfig{},
		&model.EventTeam{},
		&model.EventRole{},
		&model.Registration{},
		&model.Registrant{},
		&model.Ticket{},
		&model.CancelRequest{},
		&model.ExpenseRequest{},
		&model.Donation{},
		&model.IncomeSource{},
		&model.AuditLog{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// AutoMigrate will not add partial indexes; the pending-request
	// exclusivity guard needs one.
	guards := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_pending_cancel_request
		   ON cancel_requests (registration_id) WHERE status = 'pending';`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_registration_invoice_code
		   ON registrations (invoice_code);`,
	}
	for _, sql := range guards {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create index: %v. Continuing...", err)
		}
	}

	log.Println("Migration completed successfully")
}
