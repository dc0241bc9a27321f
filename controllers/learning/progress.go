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

// RecordProgress upserts the caller's progress on one lesson of an
// enrollment, then recomputes the course completion percentage.
func RecordProgress(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*learningValidator.ProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment learningModels.Enrollment
	if err := db.First(&enrollment, enrollmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found", nil)
	}

	if enrollment.StudentID != studentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}
	if enrollment.Status == learningModels.EnrollmentDropped {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment has been dropped!", nil)
	}

	// Lesson must belong to the enrolled course
	var lesson courseModels.Lesson
	if err := db.Preload("Section").First(&lesson, reqData.LessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}
	if lesson.Section == nil || lesson.Section.CourseID != enrollment.CourseID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson does not belong to this course!", nil)
	}

	now := time.Now()

	var progress learningModels.LessonProgress
	err = db.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lesson.ID).First(&progress).Error
	if err != nil {
		progress = learningModels.LessonProgress{
			EnrollmentID: enrollment.ID,
			LessonID:     lesson.ID,
			Status:       learningModels.ProgressInProgress,
			StartedAt:    &now,
		}
	}

	if reqData.VideoProgress != nil {
		progress.VideoProgress = *reqData.VideoProgress
	}
	if reqData.Status != nil {
		next := learningModels.ProgressStatus(*reqData.Status)
		if next == learningModels.ProgressCompleted && progress.CompletedAt == nil {
			progress.CompletedAt = &now
		}
		progress.Status = next
	}
	if progress.StartedAt == nil {
		progress.StartedAt = &now
	}

	wasCompleted := enrollment.Status == learningModels.EnrollmentCompleted

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}
		return refreshEnrollmentCompletion(tx, &enrollment)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	if !wasCompleted && enrollment.Status == learningModels.EnrollmentCompleted {
		var student models.User
		var course courseModels.Course
		if db.First(&student, studentID).Error == nil && db.First(&course, enrollment.CourseID).Error == nil {
			utils.SendCompletionEmail(student.Email, student.FullName, course.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded!", fiber.Map{
		"progress":   progress,
		"enrollment": enrollment,
	})
}

// refreshEnrollmentCompletion recomputes the completion percentage from
// lesson counts and flips the enrollment to completed exactly once when it
// reaches 100. Completed state and timestamp are never downgraded.
func refreshEnrollmentCompletion(tx *gorm.DB, enrollment *learningModels.Enrollment) error {
	var totalLessons int64
	if err := tx.Model(&courseModels.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ? AND lessons.deleted_at IS NULL AND sections.deleted_at IS NULL", enrollment.CourseID).
		Count(&totalLessons).Error; err != nil {
		return err
	}

	var completedLessons int64
	if err := tx.Model(&learningModels.LessonProgress{}).
		Where("enrollment_id = ? AND status = ?", enrollment.ID, learningModels.ProgressCompleted).
		Count(&completedLessons).Error; err != nil {
		return err
	}

	enrollment.CompletionPercentage = CompletionPercentage(completedLessons, totalLessons)

	if enrollment.CompletionPercentage >= 100 && enrollment.Status != learningModels.EnrollmentCompleted {
		now := time.Now()
		enrollment.Status = learningModels.EnrollmentCompleted
		enrollment.CompletedAt = &now
	}

	return tx.Save(enrollment).Error
}

// CourseProgress returns the caller's enrollment and per lesson progress
// for one course, looked up by course id.
func CourseProgress(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var enrollment learningModels.Enrollment
	if err := database.Database.Db.Preload("LessonProgress").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched!", fiber.Map{
		"enrollment":            enrollment,
		"completion_percentage": enrollment.CompletionPercentage,
		"lesson_progress":       enrollment.LessonProgress,
	})
}

// IssueCertificate marks a completed enrollment's certificate as issued
func IssueCertificate(c *fiber.Ctx) error {
	studentID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	db := database.Database.Db

	var enrollment learningModels.Enrollment
	if err := db.First(&enrollment, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found", nil)
	}

	if enrollment.StudentID != studentID && !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}
	if enrollment.Status != learningModels.EnrollmentCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not completed yet!", nil)
	}
	if enrollment.CertificateIssued {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued", nil)
	}

	enrollment.CertificateIssued = true
	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued!", enrollment)
}
