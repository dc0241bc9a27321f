package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	paymentModels "lms/models/payment"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	cfg := config.AppConfig

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations. Exported so test setups can
// migrate an in-memory database with the same model set.
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.InstructorProfile{},
		&models.Notification{},
		&models.Message{},
		&models.SupportTicket{},
		&models.SupportReply{},
		&models.SystemSetting{},
		&models.Review{},
		&models.QaDiscussion{},
		&models.QaReply{},
		&courseModels.Category{},
		&courseModels.CourseTag{},
		&courseModels.Course{},
		&courseModels.CourseTagMapping{},
		&courseModels.Section{},
		&courseModels.Lesson{},
		&courseModels.LessonResource{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.AnswerOption{},
		&learningModels.Enrollment{},
		&learningModels.LessonProgress{},
		&learningModels.QuizAttempt{},
		&learningModels.StudentAnswer{},
		&paymentModels.Transaction{},
		&paymentModels.TransactionDetail{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
