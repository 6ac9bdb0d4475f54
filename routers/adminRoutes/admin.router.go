package adminRoutes

import (
	adminController "examportal/controllers/admin"
	"examportal/middleware"
	validators "examportal/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up admin exam and question management routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Post("/exam", validators.CreateExam(), adminController.CreateExam)
	adminGroup.Post("/question", validators.CreateQuestion(), adminController.CreateQuestion)
	adminGroup.Put("/exam/:examId/question/:questionId", validators.ExamAndQuestionParams(), adminController.AddQuestionToExam)
	adminGroup.Patch("/exam/:examId/active", validators.ExamParam(), adminController.ToggleExamActive)
	adminGroup.Delete("/exam/:examId", validators.ExamParam(), adminController.DeleteExam)
	adminGroup.Get("/results", adminController.GetAllResults)
}
