package utils

import (
	"examportal/config"
	"examportal/database"
	"examportal/engine"
	"examportal/models"
	examModels "examportal/models/exam"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// resultWebhookPayload is the body posted to the configured webhook after
// every graded submission.
type resultWebhookPayload struct {
	ResultID       uint      `json:"result_id"`
	UserID         uint      `json:"user_id"`
	ExamID         uint      `json:"exam_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	Passed         bool      `json:"passed"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// NotifyResult sends the result email and webhook for a graded submission.
// Both are best-effort: failures are logged, never surfaced to the user.
func NotifyResult(result *engine.Result) {
	var user models.User
	if err := database.Database.Db.Select("name, email").First(&user, result.UserID).Error; err != nil {
		log.Printf("Result notification: user %d not found: %v", result.UserID, err)
		return
	}

	var exam examModels.Exam
	examTitle := "your exam"
	if err := database.Database.Db.Select("title").First(&exam, result.ExamID).Error; err == nil {
		examTitle = exam.Title
	}

	if user.Email != "" {
		SendResultEmail(user.Name, user.Email, examTitle, result.Score, result.TotalQuestions, result.Percentage, result.Passed)
	}

	PostResultWebhook(result)
}

// PostResultWebhook posts the graded result to RESULT_WEBHOOK_URL, if set.
func PostResultWebhook(result *engine.Result) {
	url := config.AppConfig.ResultWebhookURL
	if url == "" {
		return
	}

	payload := resultWebhookPayload{
		ResultID:       result.ID,
		UserID:         result.UserID,
		ExamID:         result.ExamID,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		Passed:         result.Passed,
		SubmittedAt:    result.SubmittedAt,
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		log.Printf("Result webhook failed: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Result webhook returned %d: %s", resp.StatusCode(), resp.String())
	}
}
