package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/netvest/console/internal/config"
	"github.com/netvest/console/internal/stubapi"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize the fixture server (opens SQLite, migrates, seeds)
	server, err := stubapi.New(cfg.Stub)
	if err != nil {
		log.Fatalf("Failed to initialize stub server: %v", err)
	}

	router := server.Router()

	fmt.Printf("NetVest stub API running on port %s\n", cfg.Stub.Port)
	fmt.Printf("Admin login: %s / %s\n", cfg.Stub.AdminEmail, cfg.Stub.AdminPassword)
	if err := router.Run(":" + cfg.Stub.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
