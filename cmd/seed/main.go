// FILE: cmd/seed/main.go
package main

import (
	"log"
	"os"

	"rag-admin-be/internal/model"
	"rag-admin-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding admin account...")

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@localhost"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
		color.Yellow("Warning: ADMIN_PASSWORD not set, using the default. Change it after the first login.")
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin '%s' already exists, skipping...", email)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			color.Red("Error: Failed to hash password: %v", err)
			os.Exit(1)
		}
		hashStr := string(hash)

		admin := model.User{
			Email:        email,
			PasswordHash: &hashStr,
			FullName:     "Administrator",
			Role:         "admin",
			Status:       "active",
		}
		if err := db.Create(&admin).Error; err != nil {
			color.Red("Error: Failed to create admin user: %v", err)
			os.Exit(1)
		}
		log.Printf("Created admin user: %s", email)
	}

	// Site settings are not seeded. The registry serves built-in defaults and
	// the table only ever stores overrides.

	color.Green("Seeding completed successfully.")
}
