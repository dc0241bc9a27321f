package courseController

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"
	courseValidator "lms/validators/course"
)

// ListCategories returns the full category tree ordered for display
func ListCategories(c *fiber.Ctx) error {
	var categories []courseModels.Category
	if err := database.Database.Db.Order("display_order ASC, id ASC").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// CreateCategory adds a category (admin only)
func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*courseValidator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	slug := reqData.Slug
	if slug == "" {
		slug = utils.Slugify(reqData.Name)
	}

	db := database.Database.Db

	var existing courseModels.Category
	if err := db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists", nil)
	}

	category := courseModels.Category{
		Name:         reqData.Name,
		Slug:         slug,
		Description:  reqData.Description,
		ParentID:     reqData.ParentID,
		DisplayOrder: reqData.DisplayOrder,
	}
	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// UpdateCategory edits a category (admin only)
func UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	reqData, ok := c.Locals("validatedCategory").(*courseValidator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category courseModels.Category
	if err := db.First(&category, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found", nil)
	}

	category.Name = reqData.Name
	if reqData.Slug != "" {
		category.Slug = reqData.Slug
	}
	category.Description = reqData.Description
	category.ParentID = reqData.ParentID
	category.DisplayOrder = reqData.DisplayOrder

	if err := db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory removes a category. Courses keep a dangling category_id of
// nil thanks to the nullable foreign key.
func DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	db := database.Database.Db

	var category courseModels.Category
	if err := db.First(&category, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found", nil)
	}

	db.Model(&courseModels.Course{}).Where("category_id = ?", category.ID).Update("category_id", nil)

	if err := db.Delete(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

// ListTags returns all course tags
func ListTags(c *fiber.Ctx) error {
	var tags []courseModels.CourseTag
	if err := database.Database.Db.Order("name ASC").Find(&tags).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tags!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tags fetched successfully!", tags)
}

// CreateTag adds a tag (admin only)
func CreateTag(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTag").(*courseValidator.TagRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	slug := reqData.Slug
	if slug == "" {
		slug = utils.Slugify(reqData.Name)
	}

	db := database.Database.Db

	var existing courseModels.CourseTag
	if err := db.Where("slug = ? OR name = ?", slug, reqData.Name).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Tag already exists", nil)
	}

	tag := courseModels.CourseTag{Name: reqData.Name, Slug: slug}
	if err := db.Create(&tag).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create tag!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Tag created successfully!", tag)
}

// DeleteTag removes a tag and its course mappings
func DeleteTag(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid tag id!", nil)
	}

	db := database.Database.Db

	var tag courseModels.CourseTag
	if err := db.First(&tag, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tag not found", nil)
	}

	db.Where("course_tag_id = ?", tag.ID).Delete(&courseModels.CourseTagMapping{})

	if err := db.Delete(&tag).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete tag!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tag deleted successfully!", nil)
}
