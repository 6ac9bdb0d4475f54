package adminValidator

import (
	adminController "examportal/controllers/admin"
	"examportal/middleware"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateExam validates the create-exam payload. Duration bounds are enforced
// here as well, so an out-of-range exam never reaches the database.
func CreateExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.CreateExamRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Failed validation: " + fieldErr.Tag()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExam", reqData)
		return c.Next()
	}
}

// CreateQuestion validates the create-question payload
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.CreateQuestionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Failed validation: " + fieldErr.Tag()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// ExamParam validates the exam ID path parameter
func ExamParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("examId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
		}

		c.Locals("examID", uint(id))
		return c.Next()
	}
}

// ExamAndQuestionParams validates both path parameters for attaching a
// question to an exam
func ExamAndQuestionParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		examID, err := strconv.Atoi(c.Params("examId"))
		if err != nil || examID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
		}

		questionID, err := strconv.Atoi(c.Params("questionId"))
		if err != nil || questionID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
		}

		c.Locals("examID", uint(examID))
		c.Locals("questionID", uint(questionID))
		return c.Next()
	}
}
