// Creates or promotes an admin account.
//
// Prompts for name, email and password (hidden input) and upserts a
// role-admin user with a bcrypt credential. Re-running with an existing
// email resets that account's password and role.
//
// Usage: go run scripts/create_admin/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"skillforge_backend/internal/config"
	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}
	if uri := os.Getenv("SKILLFORGE_MONGO_URI"); uri != "" {
		cfg.Mongo.URI = uri
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Admin name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Admin email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		log.Fatal("email is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("cannot read password: %v", err)
	}
	if len(password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("cannot read password: %v", err)
	}
	if string(password) != string(confirm) {
		log.Fatal("passwords do not match")
	}

	hashed, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	client, db, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		log.Fatalf("cannot connect to mongodb: %v", err)
	}
	defer database.CloseMongo(client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepository(db)
	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := users.UpsertByEmail(ctx, user); err != nil {
		log.Fatalf("cannot upsert admin user: %v", err)
	}

	fmt.Printf("Admin account ready: %s\n", email)
}
