// Command createadmin bootstraps an operator account for the admin dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"tpecflowers/internal/config"
	"tpecflowers/internal/database"
	"tpecflowers/internal/models"
	"tpecflowers/internal/repository"
	"tpecflowers/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "", "operator username")
	email := flag.String("email", "", "operator email address")
	password := flag.String("password", "", "operator password")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		log.Fatal("Usage: createadmin -username <name> -email <addr> -password <pw>")
	}

	if err := validation.ValidateUsername(*username); err != nil {
		log.Fatalf("Invalid username: %v", err)
	}
	if err := validation.ValidateEmail(*email); err != nil {
		log.Fatalf("Invalid email: %v", err)
	}
	if err := validation.ValidatePassword(*password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)

	if _, err := userRepo.GetByEmail(ctx, *email); err == nil {
		fmt.Println("Operator account already exists!")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username: *username,
		Email:    *email,
		Password: string(hashedPassword),
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create operator account: %v", err)
	}

	fmt.Printf("Operator account created: %s <%s>\n", user.Username, user.Email)
}
