package main

import (
	"context"
	"log"
	"os"

	"eventhub/internal/database"
	"eventhub/internal/domain"
	"eventhub/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "eventhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM calendars")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)

	log.Println("Creating demo user...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
	demo := &domain.User{
		Email:        "demo@eventhub.local",
		PasswordHash: string(hash),
	}
	if err := userRepo.Create(ctx, demo); err != nil {
		log.Fatal("create demo user failed:", err)
	}

	calendarRepo := repository.NewCalendarRepository(db)
	community := &domain.Calendar{
		Name:        "Community Events",
		Description: "Public meetups and festivals",
		Color:       domain.DefaultCalendarColor,
		Visibility:  domain.VisibilityPublic,
		CreatedBy:   demo.ID,
	}
	if err := calendarRepo.Create(ctx, community); err != nil {
		log.Fatal("create calendar failed:", err)
	}

	log.Println("Creating demo events...")
	eventRepo := repository.NewEventRepository(db)
	events := []*domain.Event{
		{
			Title:       "Music Fiesta",
			Date:        "Oct 25, 2025",
			Time:        "6:00 PM",
			Location:    "New York, NY",
			Category:    "Music",
			Description: "Join us for a night of amazing music and fun!",
			CreatedBy:   demo.ID,
			CalendarID:  &community.ID,
		},
		{
			Title:       "Tech Expo 2025",
			Date:        "Nov 10, 2025",
			Time:        "10:00 AM",
			Location:    "San Francisco, CA",
			Category:    "Tech",
			Description: "Explore the latest in tech and innovation.",
			CreatedBy:   demo.ID,
			CalendarID:  &community.ID,
		},
		{
			Title:       "Food Carnival",
			Date:        "Dec 5, 2025",
			Time:        "12:00 PM",
			Location:    "Austin, TX",
			Category:    "Food",
			Description: "Taste dishes from around the world.",
			CreatedBy:   demo.ID,
			CalendarID:  &community.ID,
		},
	}
	for _, ev := range events {
		if err := eventRepo.Create(ctx, ev); err != nil {
			log.Fatal("create event failed:", err)
		}
	}

	log.Printf("Seed completed: 1 user, 1 calendar, %d events", len(events))
}
