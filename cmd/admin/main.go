package main

import (
	"fmt"
	"log"
	"os"

	"bcms/backend/internal/models"
	"bcms/backend/internal/policy"
	"bcms/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin promote <user_id> <role>")
			os.Exit(1)
		}
		userID, role := os.Args[2], models.Role(os.Args[3])
		if err := storageSvc.SetRole(policy.System, userID, role); err != nil {
			log.Fatalf("Error setting role: %v", err)
		}
		fmt.Printf("User %s now holds role %s.\n", userID, role)
	case "demote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin demote <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := storageSvc.SetRole(policy.System, userID, models.RoleStudent); err != nil {
			log.Fatalf("Error demoting user: %v", err)
		}
		fmt.Printf("User %s demoted to student.\n", userID)
	case "assign":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin assign <complaint_id> <staff_id>")
			os.Exit(1)
		}
		complaintID, staffID := os.Args[2], os.Args[3]
		if _, err := storageSvc.AssignComplaint(policy.System, complaintID, staffID); err != nil {
			log.Fatalf("Error assigning complaint: %v", err)
		}
		fmt.Printf("Complaint %s assigned to %s.\n", complaintID, staffID)
	case "delete-user":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin delete-user <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := storageSvc.DeleteUser(policy.System, userID); err != nil {
			log.Fatalf("Error deleting user: %v", err)
		}
		fmt.Printf("User %s deleted.\n", userID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
