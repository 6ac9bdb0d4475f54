package adminController

import (
	"encoding/json"
	"examportal/database"
	"examportal/engine"
	"examportal/middleware"
	examModels "examportal/models/exam"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateExamRequest is the validated payload for creating an exam.
type CreateExamRequest struct {
	Title        string `json:"title" validate:"required,min=3"`
	Description  string `json:"description" validate:"required,min=5"`
	Duration     int    `json:"duration" validate:"required,min=1,max=180"`
	PassingScore int    `json:"passing_score" validate:"omitempty,min=0,max=100"`
}

// CreateQuestionRequest is the validated payload for creating a question.
type CreateQuestionRequest struct {
	Prompt         string   `json:"prompt" validate:"required,min=3"`
	Options        []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswers []string `json:"correct_answers" validate:"required,min=1,dive,required"`
	Mode           string   `json:"mode" validate:"omitempty,oneof=single multiple"`
	Difficulty     string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// CreateExam creates a new exam
func CreateExam(c *fiber.Ctx) error {
	reqData := c.Locals("validatedExam").(*CreateExamRequest)

	if reqData.PassingScore == 0 {
		reqData.PassingScore = 70
	}

	exam := examModels.Exam{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Duration:     reqData.Duration,
		PassingScore: reqData.PassingScore,
		IsActive:     true,
	}

	if err := database.Database.Db.Create(&exam).Error; err != nil {
		log.Printf("Error creating exam: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam created!", exam)
}

// CreateQuestion creates a new question
func CreateQuestion(c *fiber.Ctx) error {
	reqData := c.Locals("validatedQuestion").(*CreateQuestionRequest)

	if reqData.Mode == "" {
		reqData.Mode = examModels.ModeSingle
	}
	if reqData.Difficulty == "" {
		reqData.Difficulty = "medium"
	}

	// Enforce the option/correct-answer invariants before storing
	if err := engine.ValidateQuestion(reqData.Options, reqData.CorrectAnswers, reqData.Mode); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	options, err := json.Marshal(reqData.Options)
	if err != nil {
		log.Printf("Error encoding question options: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}
	correct, err := json.Marshal(reqData.CorrectAnswers)
	if err != nil {
		log.Printf("Error encoding correct answers: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	question := examModels.Question{
		Prompt:         reqData.Prompt,
		Options:        options,
		CorrectAnswers: correct,
		Mode:           reqData.Mode,
		Difficulty:     reqData.Difficulty,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created!", question)
}

// AddQuestionToExam attaches an existing question to an exam
func AddQuestionToExam(c *fiber.Ctx) error {
	examID := c.Locals("examID").(uint)
	questionID := c.Locals("questionID").(uint)

	db := database.Database.Db

	var exam examModels.Exam
	if err := db.Where("id = ? AND is_deleted = ?", examID, false).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	var question examModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	// Reject duplicates
	var existing examModels.ExamQuestion
	if err := db.Where("exam_id = ? AND question_id = ?", examID, questionID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question already in exam!", nil)
	}

	var count int64
	db.Model(&examModels.ExamQuestion{}).Where("exam_id = ?", examID).Count(&count)

	link := examModels.ExamQuestion{
		ExamID:     examID,
		QuestionID: questionID,
		Position:   int(count),
	}

	if err := db.Create(&link).Error; err != nil {
		log.Printf("Error attaching question %d to exam %d: %v", questionID, examID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question to exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question added to exam!", link)
}

// ToggleExamActive flips an exam between active and inactive
func ToggleExamActive(c *fiber.Ctx) error {
	examID := c.Locals("examID").(uint)

	db := database.Database.Db

	var exam examModels.Exam
	if err := db.Where("id = ? AND is_deleted = ?", examID, false).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	exam.IsActive = !exam.IsActive
	if err := db.Save(&exam).Error; err != nil {
		log.Printf("Error toggling exam %d: %v", examID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam updated!", exam)
}

// DeleteExam soft-deletes an exam so no new sessions can start against it
func DeleteExam(c *fiber.Ctx) error {
	examID := c.Locals("examID").(uint)

	db := database.Database.Db

	var exam examModels.Exam
	if err := db.Where("id = ? AND is_deleted = ?", examID, false).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	exam.IsDeleted = true
	exam.IsActive = false
	if err := db.Save(&exam).Error; err != nil {
		log.Printf("Error deleting exam %d: %v", examID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam deleted!", nil)
}

// GetAllResults lists results across users with pagination
func GetAllResults(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := database.Database.Db

	var total int64
	if err := db.Model(&examModels.Result{}).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	var results []examModels.Result
	err := db.Order("submitted_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Printf("Error fetching results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully!", fiber.Map{
		"results": results,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
