package examController

import (
	"examportal/engine"
	"examportal/middleware"
	"examportal/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Engine is the shared session manager, wired up in main.
var Engine *engine.Manager

// Init sets the session manager used by the exam handlers.
func Init(m *engine.Manager) {
	Engine = m
}

// GetExamList lists active exams without their questions
func GetExamList(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	exams, err := Engine.ListActiveExams()
	if err != nil {
		log.Printf("Error listing exams: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exams!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exams fetched successfully!", exams)
}

// StartExam opens a session and returns the randomized question set
func StartExam(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	examID := c.Locals("examID").(uint)

	session, err := Engine.Start(userID, examID)
	if err != nil {
		return engineError(c, "Failed to start exam!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam started!", session)
}

// RecordAnswer records one selection for a question of an active session
func RecordAnswer(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Params("sessionId")
	questionID := c.Locals("questionID").(uint)
	value := c.Locals("answerValue").(string)

	if err := ownSession(c, sessionID); err != nil {
		return err
	}

	if err := Engine.RecordAnswer(sessionID, questionID, value); err != nil {
		return engineError(c, "Failed to record answer!", err)
	}

	remaining, err := Engine.Remaining(sessionID)
	if err != nil {
		return engineError(c, "Failed to record answer!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded!", fiber.Map{
		"remaining_seconds": int(remaining.Seconds()),
	})
}

// SubmitExam grades the session and returns the result
func SubmitExam(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Params("sessionId")

	if err := ownSession(c, sessionID); err != nil {
		return err
	}

	result, fresh, err := Engine.Submit(sessionID)
	if err != nil {
		return engineError(c, "Failed to submit exam!", err)
	}

	// Only the caller that actually performed the grading notifies; a
	// losing racer's trigger already did (or will) on its own path.
	if fresh {
		go utils.NotifyResult(result)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam submitted!", result)
}

// GetResult fetches one result belonging to the caller
func GetResult(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	resultID := c.Locals("resultID").(uint)

	result, err := Engine.GetResult(resultID)
	if err != nil {
		return engineError(c, "Failed to fetch result!", err)
	}

	if result.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this result!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully!", result)
}

// GetMyResults lists the caller's results, newest first
func GetMyResults(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	results, err := Engine.GetResultsForUser(userID)
	if err != nil {
		log.Printf("Error fetching results for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully!", results)
}

// GetLatestResult fetches the caller's most recent result
func GetLatestResult(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	result, err := Engine.GetLatestResult(userID)
	if err != nil {
		return engineError(c, "Failed to fetch result!", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully!", result)
}

// ownSession rejects requests against a session the caller does not own.
func ownSession(c *fiber.Ctx, sessionID string) error {
	userID := c.Locals("userId").(uint)

	sess, err := Engine.GetSessionOwner(sessionID)
	if err != nil {
		return engineError(c, "Session not found!", err)
	}
	if sess != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this session!", nil)
	}
	return nil
}

// engineError translates engine error types to HTTP responses.
func engineError(c *fiber.Ctx, fallback string, err error) error {
	switch {
	case engine.IsNotFound(err):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case engine.IsValidation(err):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case engine.IsInvalidState(err):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	case engine.IsDataIntegrity(err):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	default:
		log.Printf("Engine error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
	}
}
