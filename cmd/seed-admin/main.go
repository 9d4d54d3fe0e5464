package main

import (
	"log"
	"os"

	"go-market-api/internal/model"
	"go-market-api/pkg/database"

	"github.com/joho/godotenv"
)

// Standalone bootstrap for environments where the API boots without
// ADMIN_EMAIL/ADMIN_PASSWORD set. Creates or reactivates the admin account.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		if err := user.SetPassword(password); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user.Role = model.RoleAdmin
		user.IsActive = true
		user.IsConfirmed = true
		if err := db.Save(&user).Error; err != nil {
			log.Fatalf("Failed to update admin user: %v", err)
		}
		log.Printf("Admin account %s updated", email)
		return
	}

	admin := &model.User{
		FirstName:   "Admin",
		LastName:    "User",
		Email:       email,
		Role:        model.RoleAdmin,
		IsActive:    true,
		IsConfirmed: true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin account %s created", email)
}
