package learningController

import (
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

// Enroll registers the calling student in a free course. Paid courses go
// through checkout instead.
func Enroll(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnroll").(*learningValidator.EnrollRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !course.Enrollable() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not open for enrollment!", nil)
	}

	if course.SalePrice() > 0 {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Paid course, please use checkout!", nil)
	}

	var existing learningModels.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", studentID, course.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course", nil)
	}

	enrollment := learningModels.Enrollment{
		StudentID: studentID,
		CourseID:  course.ID,
		Status:    learningModels.EnrollmentActive,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&course).Update("total_students", gorm.Expr("total_students + 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	var student models.User
	if err := db.First(&student, studentID).Error; err == nil {
		utils.SendEnrollmentEmail(student.Email, student.FullName, course.Title)
	}
	utils.NotifyEnrollment(studentID, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// MyEnrollments lists the caller's enrollments with course summaries
func MyEnrollments(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pagination := utils.GetPagination(c)

	db := database.Database.Db.Model(&learningModels.Enrollment{}).Where("student_id = ?", studentID)
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var enrollments []learningModels.Enrollment
	if err := db.Preload("Course").Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.PaginatedResponse(c, "Enrollments fetched successfully!", enrollments, total, pagination.Page, pagination.Limit)
}

// GetEnrollment returns one enrollment with per-lesson progress
func GetEnrollment(c *fiber.Ctx) error {
	studentID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	var enrollment learningModels.Enrollment
	if err := database.Database.Db.Preload("Course").Preload("LessonProgress").
		First(&enrollment, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found", nil)
	}

	if enrollment.StudentID != studentID && !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// DropEnrollment marks the enrollment dropped. Completed enrollments stay
// completed.
func DropEnrollment(c *fiber.Ctx) error {
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

	if enrollment.StudentID != studentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if enrollment.Status == learningModels.EnrollmentCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Completed enrollments cannot be dropped!", nil)
	}

	enrollment.Status = learningModels.EnrollmentDropped
	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to drop enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment dropped!", enrollment)
}

// CourseStudents lists enrollments in one course for its instructor
func CourseStudents(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if course.InstructorID != callerID && !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	pagination := utils.GetPagination(c)

	query := db.Model(&learningModels.Enrollment{}).Where("course_id = ?", course.ID)

	var total int64
	query.Count(&total)

	var enrollments []learningModels.Enrollment
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.PaginatedResponse(c, "Students fetched successfully!", enrollments, total, pagination.Page, pagination.Limit)
}
