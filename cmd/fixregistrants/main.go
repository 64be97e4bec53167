package main

import (
	"context"
	"flag"
	"log"
	"os"

	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/repository/unitofwork"
	"event-reg-be/internal/service"
	"event-reg-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Repairs registrations that violate the one-primary-registrant rule.
// Run with -dry-run first to see what would change.
func main() {
	dryRun := flag.Bool("dry-run", false, "report violations without writing")
	flag.Parse()

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

	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger("fixregistrants.log", false)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	report, err := adminService.FixPrimaryRegistrants(context.Background(), *dryRun)
	if err != nil {
		color.Red("Repair failed: %v", err)
		os.Exit(1)
	}

	bold := color.New(color.Bold)
	bold.Printf("Scanned %d registrations\n", report.Scanned)

	if len(report.Repaired) == 0 {
		color.Green("No primary-registrant violations found")
	} else {
		verb := "Repaired"
		if *dryRun {
			verb = "Would repair"
		}
		color.Yellow("%s %d registrations:", verb, len(report.Repaired))
		for _, id := range report.Repaired {
			color.Yellow("  %s", id)
		}
	}

	if len(report.Orphaned) > 0 {
		color.Red("Registrations with no registrants (manual cleanup needed):")
		for _, id := range report.Orphaned {
			color.Red("  %s", id)
		}
	}
}
