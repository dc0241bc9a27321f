package learningController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	learningValidator "lms/validators/learning"
)

// quizOwner resolves the course that owns a quiz's lesson and checks the
// caller may manage it
func quizOwner(c *fiber.Ctx, db *gorm.DB, lessonID uint) (bool, error) {
	var lesson courseModels.Lesson
	if err := db.Preload("Section").First(&lesson, lessonID).Error; err != nil {
		return false, err
	}
	var course courseModels.Course
	if err := db.First(&course, lesson.Section.CourseID).Error; err != nil {
		return false, err
	}
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return false, nil
	}
	if middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return true, nil
	}
	return course.InstructorID == callerID, nil
}

// CreateQuiz attaches a quiz to a lesson. One quiz per lesson.
func CreateQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuiz").(*learningValidator.UpsertQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	allowed, err := quizOwner(c, db, reqData.LessonID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	var existing courseModels.Quiz
	if err := db.Where("lesson_id = ?", reqData.LessonID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson already has a quiz", nil)
	}

	quiz := courseModels.Quiz{
		LessonID:     reqData.LessonID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		TimeLimit:    reqData.TimeLimit,
		PassingScore: reqData.PassingScore,
		MaxAttempts:  reqData.MaxAttempts,
	}
	quiz.ShuffleQuestions = reqData.ShuffleQuestions == nil || *reqData.ShuffleQuestions
	quiz.ShowCorrectAnswers = reqData.ShowCorrectAnswers == nil || *reqData.ShowCorrectAnswers

	if err := db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// UpdateQuiz edits quiz settings
func UpdateQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*learningValidator.UpsertQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.First(&quiz, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found", nil)
	}

	allowed, err := quizOwner(c, db, quiz.LessonID)
	if err != nil || !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	quiz.Title = reqData.Title
	quiz.Description = reqData.Description
	quiz.TimeLimit = reqData.TimeLimit
	quiz.PassingScore = reqData.PassingScore
	quiz.MaxAttempts = reqData.MaxAttempts
	if reqData.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *reqData.ShuffleQuestions
	}
	if reqData.ShowCorrectAnswers != nil {
		quiz.ShowCorrectAnswers = *reqData.ShowCorrectAnswers
	}

	if err := db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// GetQuiz returns a quiz with its questions. Correct answers are stripped
// for students so the quiz can be taken blind.
func GetQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC, id ASC")
	}).Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC, id ASC")
	}).First(&quiz, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found", nil)
	}

	allowed, _ := quizOwner(c, db, quiz.LessonID)
	if !allowed {
		for qi := range quiz.Questions {
			quiz.Questions[qi].Explanation = ""
			for oi := range quiz.Questions[qi].Options {
				quiz.Questions[qi].Options[oi].IsCorrect = false
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

// DeleteQuiz removes a quiz with its questions and options
func DeleteQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.First(&quiz, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found", nil)
	}

	allowed, err := quizOwner(c, db, quiz.LessonID)
	if err != nil || !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&courseModels.Question{}).Where("quiz_id = ?", quiz.ID).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&courseModels.AnswerOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&courseModels.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&quiz).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

// AddQuestion appends a question with its options to a quiz
func AddQuestion(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*learningValidator.UpsertQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found", nil)
	}

	allowed, err := quizOwner(c, db, quiz.LessonID)
	if err != nil || !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	question := courseModels.Question{
		QuizID:       quiz.ID,
		QuestionText: reqData.QuestionText,
		QuestionType: courseModels.QuestionType(reqData.QuestionType),
		Points:       reqData.Points,
		DisplayOrder: reqData.DisplayOrder,
		Explanation:  reqData.Explanation,
	}
	if question.Points == 0 {
		question.Points = 1
	}
	for _, opt := range reqData.Options {
		question.Options = append(question.Options, courseModels.AnswerOption{
			OptionText:   opt.OptionText,
			IsCorrect:    opt.IsCorrect,
			DisplayOrder: opt.DisplayOrder,
		})
	}

	if err := db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// UpdateQuestion replaces a question's text and options
func UpdateQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*learningValidator.UpsertQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var question courseModels.Question
	if err := db.First(&question, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found", nil)
	}

	var quiz courseModels.Quiz
	if err := db.First(&quiz, question.QuizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found", nil)
	}

	allowed, err := quizOwner(c, db, quiz.LessonID)
	if err != nil || !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	question.QuestionText = reqData.QuestionText
	question.QuestionType = courseModels.QuestionType(reqData.QuestionType)
	question.Points = reqData.Points
	if question.Points == 0 {
		question.Points = 1
	}
	question.DisplayOrder = reqData.DisplayOrder
	question.Explanation = reqData.Explanation

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&question).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&courseModels.AnswerOption{}).Error; err != nil {
			return err
		}
		for _, opt := range reqData.Options {
			option := courseModels.AnswerOption{
				QuestionID:   question.ID,
				OptionText:   opt.OptionText,
				IsCorrect:    opt.IsCorrect,
				DisplayOrder: opt.DisplayOrder,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// DeleteQuestion removes a question and its options
func DeleteQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	var question courseModels.Question
	if err := db.First(&question, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found", nil)
	}

	var quiz courseModels.Quiz
	if err := db.First(&quiz, question.QuizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found", nil)
	}

	allowed, err := quizOwner(c, db, quiz.LessonID)
	if err != nil || !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&courseModels.AnswerOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
