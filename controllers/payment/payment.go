package paymentController

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	paymentModels "lms/models/payment"
	"lms/utils"
	paymentValidator "lms/validators/payment"
)

// CreateCart turns a list of course ids into a pending transaction with one
// line item per course. Already-owned and unenrollable courses are rejected.
func CreateCart(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCart").(*paymentValidator.CartRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	transaction := paymentModels.Transaction{
		StudentID:       studentID,
		TransactionCode: "TXN-" + uuid.NewString(),
		Status:          paymentModels.TransactionPending,
	}

	seen := make(map[uint]bool)
	for _, courseID := range reqData.CourseIDs {
		if seen[courseID] {
			continue
		}
		seen[courseID] = true

		var course courseModels.Course
		if err := db.First(&course, courseID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		if !course.Enrollable() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not open for enrollment!", nil)
		}

		var enrollment learningModels.Enrollment
		if err := db.Where("student_id = ? AND course_id = ?", studentID, course.ID).First(&enrollment).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in one of the courses", nil)
		}

		salePrice := course.SalePrice()
		transaction.TotalAmount += course.Price
		transaction.DiscountAmount += course.Price - salePrice
		transaction.FinalAmount += salePrice
		transaction.Details = append(transaction.Details, paymentModels.TransactionDetail{
			CourseID:   course.ID,
			Price:      course.Price,
			Discount:   course.Price - salePrice,
			FinalPrice: salePrice,
		})
	}

	if len(transaction.Details) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cart is empty!", nil)
	}

	if err := db.Create(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Cart created successfully!", transaction)
}

// ListTransactions lists the caller's transactions. Admins may pass user_id
// to inspect someone else's.
func ListTransactions(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pagination := utils.GetPagination(c)

	targetID := callerID
	if userID := c.QueryInt("user_id"); userID > 0 && middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		targetID = uint(userID)
	}

	db := database.Database.Db.Model(&paymentModels.Transaction{}).Where("student_id = ?", targetID)
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var transactions []paymentModels.Transaction
	if err := db.Preload("Details.Course").Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.PaginatedResponse(c, "Transactions fetched successfully!", transactions, total, pagination.Page, pagination.Limit)
}

// GetTransaction returns one transaction with line items
func GetTransaction(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid transaction id!", nil)
	}

	var transaction paymentModels.Transaction
	if err := database.Database.Db.Preload("Details.Course").First(&transaction, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found", nil)
	}

	if transaction.StudentID != callerID && !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction fetched successfully!", transaction)
}

// Checkout confirms a pending transaction. The payment record and all
// enrollments are written in one database transaction so a failure leaves
// the order untouched.
func Checkout(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCheckout").(*paymentValidator.CheckoutRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var transaction paymentModels.Transaction
	if err := db.Preload("Details").First(&transaction, reqData.TransactionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found", nil)
	}

	if transaction.StudentID != studentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}
	if transaction.Status != paymentModels.TransactionPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction is not pending", nil)
	}

	now := time.Now()
	transaction.Status = paymentModels.TransactionCompleted
	transaction.PaymentMethod = reqData.PaymentMethod
	transaction.PaymentGateway = reqData.PaymentGateway
	transaction.PaymentAt = &now

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}
		for _, detail := range transaction.Details {
			created, err := findOrCreateEnrollment(tx, studentID, detail.CourseID)
			if err != nil {
				return err
			}
			if created {
				if err := tx.Model(&courseModels.Course{}).Where("id = ?", detail.CourseID).
					Update("total_students", gorm.Expr("total_students + 1")).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Checkout failed!", nil)
	}

	var student models.User
	if db.First(&student, studentID).Error == nil {
		utils.SendPaymentReceiptEmail(student.Email, student.FullName, transaction.TransactionCode, transaction.FinalAmount)
	}
	utils.NotifyPayment(studentID, transaction.TransactionCode, string(transaction.Status))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout completed successfully!", transaction)
}

// findOrCreateEnrollment reports whether a fresh enrollment row was created
func findOrCreateEnrollment(tx *gorm.DB, studentID, courseID uint) (bool, error) {
	var existing learningModels.Enrollment
	err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error
	if err == nil {
		return false, nil
	}

	enrollment := learningModels.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    learningModels.EnrollmentActive,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		return false, err
	}
	return true, nil
}

// CancelTransaction lets the buyer abandon a pending cart
func CancelTransaction(c *fiber.Ctx) error {
	studentID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid transaction id!", nil)
	}

	db := database.Database.Db

	var transaction paymentModels.Transaction
	if err := db.First(&transaction, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found", nil)
	}

	if transaction.StudentID != studentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}
	if transaction.Status != paymentModels.TransactionPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only pending transactions can be cancelled", nil)
	}

	transaction.Status = paymentModels.TransactionFailed
	if err := db.Save(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction cancelled!", transaction)
}

// Refund marks a completed transaction refunded and drops the enrollments
// it paid for. Admin only.
func Refund(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid transaction id!", nil)
	}

	db := database.Database.Db

	var transaction paymentModels.Transaction
	if err := db.Preload("Details").First(&transaction, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found", nil)
	}

	if transaction.Status != paymentModels.TransactionCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only completed transactions can be refunded", nil)
	}

	now := time.Now()
	transaction.Status = paymentModels.TransactionRefunded
	transaction.RefundedAt = &now

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}
		for _, detail := range transaction.Details {
			if err := tx.Model(&learningModels.Enrollment{}).
				Where("student_id = ? AND course_id = ? AND status <> ?",
					transaction.StudentID, detail.CourseID, learningModels.EnrollmentCompleted).
				Update("status", learningModels.EnrollmentDropped).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Refund failed!", nil)
	}

	utils.NotifyPayment(transaction.StudentID, transaction.TransactionCode, string(transaction.Status))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction refunded!", transaction)
}

// GatewayWebhook applies a status reported by the payment gateway. The
// status is verified against the gateway before it is trusted.
func GatewayWebhook(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWebhook").(*paymentValidator.WebhookRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var transaction paymentModels.Transaction
	if err := db.Preload("Details").Where("transaction_code = ?", reqData.TransactionCode).
		First(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found", nil)
	}

	verified, err := utils.VerifyGatewayTransaction(transaction.TransactionCode)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Gateway verification failed!", nil)
	}
	if verified.Status != reqData.Status {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reported status does not match gateway!", nil)
	}

	if transaction.Status != paymentModels.TransactionPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction already settled", nil)
	}

	switch paymentModels.TransactionStatus(reqData.Status) {
	case paymentModels.TransactionCompleted:
		now := time.Now()
		transaction.Status = paymentModels.TransactionCompleted
		transaction.PaymentAt = &now

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&transaction).Error; err != nil {
				return err
			}
			for _, detail := range transaction.Details {
				created, err := findOrCreateEnrollment(tx, transaction.StudentID, detail.CourseID)
				if err != nil {
					return err
				}
				if created {
					if err := tx.Model(&courseModels.Course{}).Where("id = ?", detail.CourseID).
						Update("total_students", gorm.Expr("total_students + 1")).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to apply webhook!", nil)
		}
	case paymentModels.TransactionFailed:
		transaction.Status = paymentModels.TransactionFailed
		if err := db.Save(&transaction).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to apply webhook!", nil)
		}
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported webhook status!", nil)
	}

	utils.NotifyPayment(transaction.StudentID, transaction.TransactionCode, string(transaction.Status))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook applied!", transaction)
}
