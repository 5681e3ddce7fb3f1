// Seed fills a development database with identification records, users,
// emergency contacts, FAQs and feedback categories.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/baedyl/Loxea-api/internal/database"
	"github.com/baedyl/Loxea-api/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "loxea.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM assistance_images")
	db.Exec("DELETE FROM assistances")
	db.Exec("DELETE FROM feedbacks")
	db.Exec("DELETE FROM feedback_categories")
	db.Exec("DELETE FROM tokens")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM identification_details")
	db.Exec("DELETE FROM emergency_contacts")
	db.Exec("DELETE FROM faqs")

	log.Println("Creating identification records...")
	for i := 1; i <= 5; i++ {
		db.Create(&domain.Identification{
			ChassisNumber: fmt.Sprintf("VF1RFB00%06d", i),
			PlateNumber:   fmt.Sprintf("AB-%03d-CD", i),
			VehicleType:   "sedan",
		})
	}

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	db.Create(&domain.User{
		Name:     "Back Office Admin",
		Email:    "admin@loxea.com",
		Password: adminHash,
		IsAdmin:  true,
	})
	log.Println("Admin created: admin@loxea.com / admin123")

	clientHash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
	db.Create(&domain.User{
		Name:     "Test Driver",
		Email:    "driver@loxea.com",
		Password: clientHash,
	})

	log.Println("Creating emergency contacts...")
	contacts := []domain.EmergencyContact{
		{Name: "Police", Number: "117"},
		{Name: "Fire Brigade", Number: "118"},
		{Name: "SAMU", Number: "185"},
		{Name: "Loxea Assistance", Number: "+225 27 22 50 90 00"},
	}
	for i := range contacts {
		db.Create(&contacts[i])
	}

	log.Println("Creating FAQs...")
	faqs := []domain.FAQ{
		{Question: "How do I request roadside assistance?", Answer: "Open the app, tap Request Assistance and confirm your location."},
		{Question: "What should I do after an accident?", Answer: "Move to a safe spot, then declare the accident in the app with photos."},
		{Question: "How long is my session valid?", Answer: "You stay signed in for one day; logging in on another device signs you out here."},
	}
	for i := range faqs {
		db.Create(&faqs[i])
	}

	log.Println("Creating feedback categories...")
	for _, name := range []string{"Application", "Assistance Service", "Billing", "Other"} {
		db.Create(&domain.FeedbackCategory{Name: name})
	}

	log.Println("Seed complete.")
}
