package learningController

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	"lms/utils"
	learningValidator "lms/validators/learning"
)

// enrolledInQuizCourse checks the student holds an active or completed
// enrollment in the course that owns the quiz's lesson
func enrolledInQuizCourse(db *gorm.DB, studentID uint, quiz *courseModels.Quiz) (bool, error) {
	var lesson courseModels.Lesson
	if err := db.Preload("Section").First(&lesson, quiz.LessonID).Error; err != nil {
		return false, err
	}

	var enrollment learningModels.Enrollment
	err := db.Where("student_id = ? AND course_id = ? AND status <> ?",
		studentID, lesson.Section.CourseID, learningModels.EnrollmentDropped).
		First(&enrollment).Error
	if err != nil {
		return false, nil
	}
	return true, nil
}

// StartAttempt opens a new attempt on a quiz for the calling student
func StartAttempt(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found", nil)
	}

	enrolled, err := enrolledInQuizCourse(db, studentID, &quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	// Only one open attempt at a time
	var open learningModels.QuizAttempt
	if err := db.Where("student_id = ? AND quiz_id = ? AND submitted_at IS NULL", studentID, quiz.ID).
		First(&open).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An attempt is already in progress", open)
	}

	if quiz.MaxAttempts > 0 {
		var used int64
		db.Model(&learningModels.QuizAttempt{}).
			Where("student_id = ? AND quiz_id = ? AND submitted_at IS NOT NULL", studentID, quiz.ID).
			Count(&used)
		if used >= int64(quiz.MaxAttempts) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Maximum attempts reached!", nil)
		}
	}

	attempt := learningModels.QuizAttempt{
		StudentID: studentID,
		QuizID:    quiz.ID,
		StartedAt: time.Now(),
	}
	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt started!", attempt)
}

// SubmitAttempt grades and closes an open attempt. Submission is terminal;
// a submitted attempt cannot be submitted again.
func SubmitAttempt(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	reqData, ok := c.Locals("validatedSubmit").(*learningValidator.SubmitAttemptRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var attempt learningModels.QuizAttempt
	if err := db.First(&attempt, attemptID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found", nil)
	}

	if attempt.StudentID != studentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}
	if attempt.Submitted() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attempt already submitted", nil)
	}

	var quiz courseModels.Quiz
	if err := db.Preload("Questions.Options").First(&quiz, attempt.QuizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found", nil)
	}

	result := GradeAttempt(quiz.Questions, reqData.Answers, quiz.PassingScore)

	now := time.Now()
	attempt.SubmittedAt = &now
	attempt.Score = result.Score
	attempt.Passed = result.Passed
	attempt.TimeTaken = reqData.TimeTaken

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}
		for i := range result.Answers {
			result.Answers[i].AttemptID = attempt.ID
			if err := tx.Create(&result.Answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}

	utils.NotifyQuizGraded(studentID, quiz.Title, attempt.Score, attempt.Passed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted!", fiber.Map{
		"attempt":       attempt,
		"points_earned": result.PointsEarned,
		"points_total":  result.PointsTotal,
	})
}

// GetAttempt returns one attempt with graded answers
func GetAttempt(c *fiber.Ctx) error {
	studentID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	var attempt learningModels.QuizAttempt
	if err := database.Database.Db.Preload("Answers").First(&attempt, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found", nil)
	}

	if attempt.StudentID != studentID && !middleware.CallerRole(c).AtLeast(models.RoleInstructor) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", attempt)
}

// MyAttempts lists the caller's attempts on one quiz
func MyAttempts(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	var attempts []learningModels.QuizAttempt
	if err := database.Database.Db.
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Order("created_at DESC").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", attempts)
}
