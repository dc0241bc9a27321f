package instructorController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	instructorValidator "lms/validators/instructor"
)

// CreateProfile submits a teaching application for review
func CreateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*instructorValidator.UpsertProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var existing models.InstructorProfile
	if err := db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Profile already exists", nil)
	}

	profile := models.InstructorProfile{
		UserID:         userID,
		Bio:            reqData.Bio,
		Education:      reqData.Education,
		Experience:     reqData.Experience,
		Certificates:   reqData.Certificates,
		ApprovalStatus: "pending",
	}

	if err := db.Create(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Profile submitted for review!", profile)
}

// UpdateProfile edits the caller's application; any edit resets it to pending
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*instructorValidator.UpsertProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var profile models.InstructorProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Profile not found", nil)
	}

	profile.Bio = reqData.Bio
	profile.Education = reqData.Education
	profile.Experience = reqData.Experience
	profile.Certificates = reqData.Certificates
	profile.ApprovalStatus = "pending"
	profile.RejectionReason = ""

	if err := db.Save(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated, pending review!", profile)
}

// ListProfiles lists teaching applications for admin review
func ListProfiles(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)

	db := database.Database.Db.Model(&models.InstructorProfile{})
	if status := c.Query("status"); status != "" {
		db = db.Where("approval_status = ?", status)
	}

	var total int64
	db.Count(&total)

	var profiles []models.InstructorProfile
	if err := db.Preload("User").Order("id DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&profiles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profiles!", nil)
	}

	return middleware.PaginatedResponse(c, "Profiles fetched successfully!", profiles, total, pagination.Page, pagination.Limit)
}

// ReviewProfile approves or rejects an application. Approval promotes the
// applicant from student to instructor.
func ReviewProfile(c *fiber.Ctx) error {
	reviewerID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid profile id!", nil)
	}

	reqData, ok := c.Locals("validatedProfileReview").(*instructorValidator.ReviewProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var profile models.InstructorProfile
	if err := db.First(&profile, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Profile not found", nil)
	}

	now := time.Now()
	profile.ApprovalStatus = reqData.Status
	profile.ApprovedBy = &reviewerID
	if reqData.Status == "approved" {
		profile.ApprovedAt = &now
		profile.RejectionReason = ""
	} else {
		profile.ApprovedAt = nil
		profile.RejectionReason = reqData.Reason
	}

	if err := db.Save(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review profile!", nil)
	}

	if reqData.Status == "approved" {
		var user models.User
		if err := db.First(&user, profile.UserID).Error; err == nil && user.Role == models.RoleStudent {
			user.Role = models.RoleInstructor
			db.Save(&user)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile reviewed!", profile)
}

// GetInstructorCourses lists one instructor's courses
func GetInstructorCourses(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid instructor id!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("instructor_id = ?", id).Order("created_at DESC").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}
