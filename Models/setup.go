package Models

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// OrgLocation is the organization timezone every date-only comparison is
// projected into. Loaded once in Connect from ORG_TIMEZONE.
var OrgLocation = time.UTC

func Connect() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	OrgLocation = loadOrgLocation()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	DB = connection

	// 1. Base tables with no dependencies
	DB.AutoMigrate(
		&User{},
		&Task{},
		&PublicHoliday{},
		&OrgWeeklyOff{},
	)

	// 2. Tables referencing users/tasks
	DB.AutoMigrate(
		&TaskAssignment{},
		&PersonWeeklyOff{},
		&PersonalHoliday{},
	)

	// 3. Completion records depend on assignments
	DB.AutoMigrate(&CompletionRecord{})

	if err := SetupCompletionRecordIndexes(DB); err != nil {
		log.Printf("Error creating completion record indexes: %v", err)
	}
}

func loadOrgLocation() *time.Location {
	name := os.Getenv("ORG_TIMEZONE")
	if name == "" {
		name = "Africa/Cairo"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid ORG_TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}
