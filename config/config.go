package config

import (
	"fmt"
	"log"
	"os"

	"github.com/jaychung003/food-tracker/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using environment as-is")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate creates/updates all tables. Split out from InitDB so tests can run
// it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.FoodEntry{},
		&models.SymptomEntry{},
		&models.Ingredient{},
		&models.SavedDish{},
		&models.DayCoverage{},
		&models.MealSymptomLink{},
		&models.DailyWindowSeverity{},
		&models.TagExposure{},
	)
}
