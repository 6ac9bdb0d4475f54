package examValidator

import (
	"examportal/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// StartExam validates the exam ID path parameter
func StartExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
		}

		c.Locals("examID", uint(id))
		return c.Next()
	}
}

// RecordAnswer validates the answer payload for a session
func RecordAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Params("sessionId")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
		}

		reqData := new(struct {
			QuestionID uint   `json:"question_id"`
			Value      string `json:"value"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.QuestionID == 0 {
			errors["question_id"] = "Question id is required!"
		}

		if strings.TrimSpace(reqData.Value) == "" {
			errors["value"] = "Answer value is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("questionID", reqData.QuestionID)
		c.Locals("answerValue", reqData.Value)
		return c.Next()
	}
}

// SubmitExam validates the session ID path parameter
func SubmitExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Params("sessionId")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
		}
		return c.Next()
	}
}

// GetResult validates the result ID path parameter
func GetResult() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid result id!", nil)
		}

		c.Locals("resultID", uint(id))
		return c.Next()
	}
}
