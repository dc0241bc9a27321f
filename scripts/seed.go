package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
)

// Seeds the system admin account, default categories and baseline settings.
// Safe to run repeatedly; existing rows are left alone.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	// System admin
	adminEmail := "admin@lms.local"
	var admin models.User
	if err := db.Where("email = ?", adminEmail).First(&admin).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), config.AppConfig.SaltRound)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin = models.User{
			Email:        adminEmail,
			PasswordHash: string(hash),
			FullName:     "System Administrator",
			Role:         models.RoleSystemAdmin,
			Status:       "active",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Created system admin %s (change the default password!)", adminEmail)
	} else {
		log.Printf("System admin %s already exists, skipping", adminEmail)
	}

	// Default categories
	categories := []courseModels.Category{
		{Name: "Programming", Slug: "programming", DisplayOrder: 1},
		{Name: "Business", Slug: "business", DisplayOrder: 2},
		{Name: "Design", Slug: "design", DisplayOrder: 3},
		{Name: "Marketing", Slug: "marketing", DisplayOrder: 4},
		{Name: "Personal Development", Slug: "personal-development", DisplayOrder: 5},
	}

	created := 0
	for _, category := range categories {
		var existing courseModels.Category
		if err := db.Where("slug = ?", category.Slug).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&category).Error; err != nil {
			log.Fatalf("Failed to create category %s: %v", category.Name, err)
		}
		created++
	}
	log.Printf("Categories seeded: %d created, %d already present", created, len(categories)-created)

	// Baseline settings
	settings := []models.SystemSetting{
		{SettingKey: "platform_name", SettingValue: "LMS", Description: "Name shown in emails and page titles"},
		{SettingKey: "maintenance_mode", SettingValue: "false", Description: "Set true to show a maintenance banner"},
		{SettingKey: "max_cart_size", SettingValue: "10", Description: "Maximum courses per checkout"},
	}
	for _, setting := range settings {
		var existing models.SystemSetting
		if err := db.Where("setting_key = ?", setting.SettingKey).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&setting).Error; err != nil {
			log.Fatalf("Failed to create setting %s: %v", setting.SettingKey, err)
		}
	}
	log.Println("Seeding complete.")
}
