package examRoutes

import (
	examController "examportal/controllers/exam"
	"examportal/middleware"
	validators "examportal/validators/exam"

	"github.com/gofiber/fiber/v2"
)

// SetupExamRoutes sets up all user-facing exam routes
func SetupExamRoutes(app *fiber.App) {
	examGroup := app.Group("/exam")

	// Exam listing (no questions exposed)
	examGroup.Get("/list", middleware.JWTMiddleware, examController.GetExamList)

	// Session lifecycle
	examGroup.Post("/:id/start", middleware.JWTMiddleware, validators.StartExam(), examController.StartExam)
	examGroup.Post("/session/:sessionId/answer", middleware.JWTMiddleware, validators.RecordAnswer(), examController.RecordAnswer)
	examGroup.Post("/session/:sessionId/submit", middleware.JWTMiddleware, validators.SubmitExam(), examController.SubmitExam)

	// Results
	examGroup.Get("/results", middleware.JWTMiddleware, examController.GetMyResults)
	examGroup.Get("/results/latest", middleware.JWTMiddleware, examController.GetLatestResult)
	examGroup.Get("/result/:id", middleware.JWTMiddleware, validators.GetResult(), examController.GetResult)
}
