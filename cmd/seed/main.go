package main

import (
	"log"

	"bazaar/internal/config"
	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

var defaultCategories = []models.Category{
	{Name: "Electronics", Description: "Phones, laptops and gadgets"},
	{Name: "Furniture", Description: "Tables, chairs and home furnishing"},
	{Name: "Books", Description: "Textbooks, novels and study material"},
	{Name: "Vehicles", Description: "Bicycles, scooters and spares"},
	{Name: "Services", Description: "Tutoring, repairs and odd jobs"},
}

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err != nil {
				log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			} else if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	for _, category := range defaultCategories {
		var existing models.Category
		if err := repositories.DB.Where("name = ?", category.Name).First(&existing).Error; err == nil {
			log.Printf("Category %q already exists", category.Name)
			continue
		}

		c := category
		if err := repositories.DB.Create(&c).Error; err != nil {
			log.Fatalf("Failed to create category %q: %v", category.Name, err)
		}
		log.Printf("Created category %q", category.Name)
	}

	demoEmail := config.GetEnv("DEMO_USER_EMAIL", "")
	if demoEmail != "" {
		var existing models.User
		if err := repositories.DB.Where("email = ?", demoEmail).First(&existing).Error; err == nil {
			log.Println("Demo user already exists")
			return
		}

		demo := models.User{
			FirstName: config.GetEnv("DEMO_USER_FIRST_NAME", "Demo"),
			LastName:  config.GetEnv("DEMO_USER_LAST_NAME", "User"),
			Email:     demoEmail,
			UpiID:     config.GetEnv("DEMO_USER_UPI_ID", ""),
		}
		if err := repositories.DB.Create(&demo).Error; err != nil {
			log.Fatal("Failed to create demo user:", err)
		}
		log.Println("✅ Demo user created successfully!")
	}
}
