package main

import (
	"log"
	"os"

	"getscience-be/internal/model"
	"getscience-be/pkg/database"

	"github.com/joho/godotenv"
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

	seedNotificationTypes(db)
}

// seedNotificationTypes populates the registry mapping domain events to
// notification templates. Placeholders in braces are filled from the
// event payload at delivery time.
func seedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "EVENT_PUBLISHED",
			DisplayName: "New Event Published",
			Template:    "A new event is open for applications: \"{title}\"",
			TargetType:  "BROADCAST",
			IsActive:    true,
		},
		{
			Code:        "EVENT_CANCELLED",
			DisplayName: "Event Cancelled",
			Template:    "The event \"{title}\" has been cancelled",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "APPLICATION_CREATED",
			DisplayName: "New Application",
			Template:    "{applicant_name} applied to your event \"{event_title}\"",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "APPLICATION_DECIDED",
			DisplayName: "Application Decision",
			Template:    "Your application to \"{event_title}\" has been {status}",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "CHAT_MESSAGE_SENT",
			DisplayName: "New Chat Message",
			Template:    "{sender_name}: {preview}",
			TargetType:  "SELF",
			IsActive:    true,
		},
	}

	for _, t := range types {
		if err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error; err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("✅ Notification types seeded successfully.")
}
