package main

import (
	"log"
	"os"
	"strings"
	"time"

	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/mapper"
	"exam-companion-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a couple of pilot access codes so a fresh install can be tried
// end to end. Existing codes are left untouched.
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

	seeds := []entity.AccessCode{
		{
			Id:            uuid.New(),
			Code:          "KIUL-PILOT-001",
			SchoolName:    "Pilot School",
			AllowedLevels: strings.Join([]string{"CSEE (Form IV)", "ACSEE (Form VI)"}, ", "),
			Status:        entity.AccessCodeStatusActive,
			CreatedAt:     time.Now(),
		},
		{
			Id:            uuid.New(),
			Code:          "KIUL-DEMO-2026",
			SchoolName:    "Demo School",
			AllowedLevels: "CSEE (Form IV)",
			Status:        entity.AccessCodeStatusActive,
			CreatedAt:     time.Now(),
		},
	}

	m := mapper.NewAccessCodeMapper()
	for _, seed := range seeds {
		model := m.ToModel(&seed)

		var count int64
		if err := db.Model(model).Where("code = ?", seed.Code).Count(&count).Error; err != nil {
			log.Fatalf("Error: lookup failed for %s: %v", seed.Code, err)
		}
		if count > 0 {
			log.Printf("Skipping %s (already exists)", seed.Code)
			continue
		}

		if err := db.Create(model).Error; err != nil {
			log.Fatalf("Error: failed to seed %s: %v", seed.Code, err)
		}
		log.Printf("Seeded access code %s for %s", seed.Code, seed.SchoolName)
	}

	log.Println("✅ Seeding completed")
}
