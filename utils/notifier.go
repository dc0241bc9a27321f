package utils

import (
	"fmt"
	"log"

	"lms/database"
	"lms/models"
)

// notify inserts an in-app notification row. Failures are logged and
// swallowed so a notification hiccup never fails the request that caused it.
func notify(userID uint, kind models.NotificationType, title, content string) {
	notification := models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Content: content,
	}
	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for user %d: %v", userID, err)
	}
}

// NotifyCourseReviewed tells an instructor the outcome of a course review
func NotifyCourseReviewed(instructorID uint, courseTitle, status, approvalStatus string) {
	notify(instructorID, models.NotificationCourse,
		"Course review update",
		fmt.Sprintf("Your course %q is now %s (approval: %s).", courseTitle, status, approvalStatus))
}

// NotifyEnrollment tells a student their enrollment is active
func NotifyEnrollment(studentID uint, courseTitle string) {
	notify(studentID, models.NotificationCourse,
		"Enrollment confirmed",
		fmt.Sprintf("You are now enrolled in %q. Happy learning!", courseTitle))
}

// NotifyPayment tells a buyer about a payment state change
func NotifyPayment(userID uint, transactionCode, status string) {
	notify(userID, models.NotificationPayment,
		"Payment update",
		fmt.Sprintf("Transaction %s is now %s.", transactionCode, status))
}

// NotifyQuizGraded tells a student their quiz result
func NotifyQuizGraded(studentID uint, quizTitle string, score float64, passed bool) {
	outcome := "did not pass"
	if passed {
		outcome = "passed"
	}
	notify(studentID, models.NotificationCourse,
		"Quiz graded",
		fmt.Sprintf("You scored %.2f on %q and %s.", score, quizTitle, outcome))
}

// NotifyNewMessage tells a user someone messaged them
func NotifyNewMessage(receiverID uint, senderName string) {
	notify(receiverID, models.NotificationMessage,
		"New message",
		fmt.Sprintf("%s sent you a message.", senderName))
}

// NotifyQaReply tells a discussion author that a reply landed
func NotifyQaReply(authorID uint, courseTitle string) {
	notify(authorID, models.NotificationCourse,
		"New answer to your question",
		fmt.Sprintf("Your question in %q got a new reply.", courseTitle))
}

// NotifyTicketUpdate tells a ticket opener about activity on their ticket
func NotifyTicketUpdate(userID uint, subject, status string) {
	notify(userID, models.NotificationSystem,
		"Support ticket update",
		fmt.Sprintf("Your ticket %q is now %s.", subject, status))
}
