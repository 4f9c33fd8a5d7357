package db

import (
	"context"
	"log"

	"travel-agency-api/internal/booking"
	"travel-agency-api/internal/client"
	"travel-agency-api/internal/commission"
	"travel-agency-api/internal/user"
)

func RunMigrations() error {
	log.Println("Running migrations")
	return AppDb.AutoMigrate(
		&user.User{},
		&client.Client{},
		&booking.Booking{},
		&booking.Confirmation{},
		&booking.PersonDetail{},
		&booking.SignificantDate{},
		&booking.EmailAddress{},
		&booking.PhoneNumber{},
		&commission.Commission{},
	)
}

// SeedData seeds the database with initial data (for development only)
func SeedData() {
	ctx := context.Background()
	userRepo := user.NewRepository(AppDb)

	testUser := &user.User{
		Name:     "Test Agent",
		Email:    "agent@example.com",
		Password: "password123",
	}

	if _, err := userRepo.FindByEmail(ctx, testUser.Email); err == nil {
		log.Printf("Test user already exists: %s", testUser.Email)
		return
	}

	if err := user.NewService(userRepo).Register(ctx, testUser); err != nil {
		log.Printf("Error creating test user: %v", err)
		return
	}
	log.Printf("Created test user: %s", testUser.Email)
}
