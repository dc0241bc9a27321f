package userController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	"lms/utils"
	userValidator "lms/validators/user"
)

func serializeUser(user *models.User, profile *models.InstructorProfile) fiber.Map {
	out := fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"phone":      user.Phone,
		"avatar_url": user.AvatarURL,
		"role":       user.Role,
		"status":     user.Status,
		"last_login": user.LastLogin,
	}
	if profile != nil {
		out["instructor_profile"] = profile
	}
	return out
}

// ListUsers returns a paginated, filterable user listing for admins
func ListUsers(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)

	db := database.Database.Db.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		db = db.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if keyword := c.Query("keyword"); keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("email ILIKE ? OR full_name ILIKE ?", like, like)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	out := make([]fiber.Map, len(users))
	for i := range users {
		out[i] = serializeUser(&users[i], nil)
	}

	return middleware.PaginatedResponse(c, "Users fetched successfully!", out, total, pagination.Page, pagination.Limit)
}

// GetUser returns one user; callers may only view themselves unless they are
// support staff.
func GetUser(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	canView := middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) || callerID == user.ID
	if !canView {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Forbidden", nil)
	}

	var profile models.InstructorProfile
	var profilePtr *models.InstructorProfile
	if err := database.Database.Db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		profilePtr = &profile
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", serializeUser(&user, profilePtr))
}

// UpdateUser updates profile fields; self or support staff only. Status
// changes are reserved for support staff.
func UpdateUser(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedUserUpdate").(*userValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	isSupport := middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin)
	if !isSupport && callerID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Forbidden", nil)
	}

	if reqData.FullName != nil {
		user.FullName = *reqData.FullName
	}
	if reqData.Phone != nil {
		user.Phone = *reqData.Phone
	}
	if reqData.AvatarURL != nil {
		user.AvatarURL = *reqData.AvatarURL
	}
	if reqData.Status != nil && isSupport {
		user.Status = *reqData.Status
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", serializeUser(&user, nil))
}

// UpdateUserRole lets support staff change a user's role
func UpdateUserRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedRoleUpdate").(*userValidator.UpdateRoleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	user.Role = models.Role(reqData.Role)
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", serializeUser(&user, nil))
}

// ChangePassword updates a password. Self-changes must supply the current
// password; support staff may reset without it.
func ChangePassword(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedPasswordChange").(*userValidator.ChangePasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	isSelf := callerID == user.ID
	if !isSelf && !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Forbidden", nil)
	}

	if isSelf {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(reqData.CurrentPassword)); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Current password invalid", nil)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.PasswordHash = string(hashed)
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated", nil)
}

// GetUserCourses lists an instructor's courses or a student's enrollments
func GetUserCourses(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	if middleware.CallerRole(c) == models.RoleStudent && callerID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Forbidden", nil)
	}

	if user.Role == models.RoleInstructor {
		var courses []courseModels.Course
		if err := database.Database.Db.Where("instructor_id = ?", user.ID).Order("created_at DESC").Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
	}

	var enrollments []learningModels.Enrollment
	if err := database.Database.Db.Where("student_id = ?", user.ID).Preload("Course").Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
