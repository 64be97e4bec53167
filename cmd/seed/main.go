package main

import (
	"log"
	"os"
	"time"

	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/model"
	"event-reg-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
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

	config := seedEventConfig(db)
	seedAdminUsers(db)
	seedTeams(db, config)
	seedRoles(db, config)

	log.Println("Seed completed")
}

func seedEventConfig(db *gorm.DB) *model.EventConfig {
	var existing model.EventConfig
	err := db.Where("registration_open = ?", true).First(&existing).Error
	if err == nil {
		log.Printf("Event config already present: %s", existing.Name)
		return &existing
	}

	config := &model.EventConfig{
		Name:              "Đại Hội Giới Trẻ 2026",
		FeePerParticipant: 350000,
		RegistrationOpen:  true,
		StartDate:         time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(config).Error; err != nil {
		log.Fatalf("Error: Failed to seed event config: %v", err)
	}
	log.Printf("Seeded event config: %s", config.Name)
	return config
}

func seedAdminUsers(db *gorm.DB) {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		log.Println("Warn: SEED_ADMIN_PASSWORD not set, using default")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}
	hashStr := string(hash)

	users := []model.User{
		{
			Email:         "admin@example.com",
			PasswordHash:  &hashStr,
			FullName:      "Super Admin",
			Role:          string(lifecycle.RoleSuperAdmin),
			Status:        "active",
			EmailVerified: true,
		},
		{
			Email:         "cashier@example.com",
			PasswordHash:  &hashStr,
			FullName:      "Event Cashier",
			Role:          string(lifecycle.RoleCashier),
			Status:        "active",
			EmailVerified: true,
		},
	}

	for _, u := range users {
		var count int64
		db.Model(&model.User{}).Where("email = ?", u.Email).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("Error: Failed to seed user %s: %v", u.Email, err)
		}
		log.Printf("Seeded user: %s (%s)", u.Email, u.Role)
	}
}

func seedTeams(db *gorm.DB, config *model.EventConfig) {
	teams := []model.EventTeam{
		{EventConfigID: config.ID, Name: "Đội 1", Capacity: 40, Region: "north"},
		{EventConfigID: config.ID, Name: "Đội 2", Capacity: 40, Region: "central"},
		{EventConfigID: config.ID, Name: "Đội 3", Capacity: 40, Region: "south"},
	}
	for _, t := range teams {
		var count int64
		db.Model(&model.EventTeam{}).Where("name = ? AND event_config_id = ?", t.Name, config.ID).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			log.Fatalf("Error: Failed to seed team %s: %v", t.Name, err)
		}
		log.Printf("Seeded team: %s", t.Name)
	}
}

func seedRoles(db *gorm.DB, config *model.EventConfig) {
	roles := []model.EventRole{
		{EventConfigID: config.ID, Name: "Participant", Description: "Regular attendee"},
		{EventConfigID: config.ID, Name: "Volunteer", Description: "Logistics and support"},
		{EventConfigID: config.ID, Name: "Team Leader", Description: "Leads one team"},
	}
	for _, r := range roles {
		var count int64
		db.Model(&model.EventRole{}).Where("name = ? AND event_config_id = ?", r.Name, config.ID).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&r).Error; err != nil {
			log.Fatalf("Error: Failed to seed role %s: %v", r.Name, err)
		}
		log.Printf("Seeded role: %s", r.Name)
	}
}
