package engine

import (
	"fmt"
	"math"
	"time"
)

// Question modes.
const (
	ModeSingle   = "single"
	ModeMultiple = "multiple"
)

// Question is the engine's view of a question, with the canonical option and
// correct-answer lists resolved from storage.
type Question struct {
	ID      uint
	Prompt  string
	Options []string
	Correct []string
	Mode    string
}

// Exam is the engine's view of an exam with its questions in canonical order.
type Exam struct {
	ID           uint
	Title        string
	Description  string
	Duration     int // minutes
	PassingScore int // percentage
	IsActive     bool
	Questions    []Question
}

// BreakdownEntry records the outcome of one question in a graded result. The
// correct answers are disclosed here because breakdowns are only ever built
// after submission.
type BreakdownEntry struct {
	QuestionID    uint     `json:"question_id"`
	Prompt        string   `json:"prompt"`
	UserAnswer    []string `json:"user_answer"`
	CorrectAnswer []string `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// Result is a graded submission.
type Result struct {
	ID             uint
	UserID         uint
	ExamID         uint
	SessionID      uint
	Score          int
	TotalQuestions int
	Percentage     int
	Passed         bool
	Breakdown      []BreakdownEntry
	SubmittedAt    time.Time
}

// Grade scores submitted answers against the exam's canonical questions.
// Every question counts toward the denominator; an absent answer is simply
// incorrect. Correctness is set equality between the submitted values and the
// canonical correct values, so neither randomized option order nor the user's
// selection order affects the outcome. Answers referencing a question outside
// the exam abort grading with a DataIntegrityError.
func Grade(exam *Exam, answers map[uint]Answer) (int, []BreakdownEntry, error) {
	if len(exam.Questions) == 0 {
		return 0, nil, &ValidationError{Field: "questions", Reason: "exam has no questions"}
	}

	known := make(map[uint]bool, len(exam.Questions))
	for _, q := range exam.Questions {
		known[q.ID] = true
	}
	for id := range answers {
		if !known[id] {
			return 0, nil, &DataIntegrityError{
				Reason: fmt.Sprintf("answer references question %d which is not part of exam %d", id, exam.ID),
			}
		}
	}

	score := 0
	breakdown := make([]BreakdownEntry, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		answer, answered := answers[q.ID]
		correct := answered && sameSet(answer.Values, q.Correct)
		if correct {
			score++
		}
		breakdown = append(breakdown, BreakdownEntry{
			QuestionID:    q.ID,
			Prompt:        q.Prompt,
			UserAnswer:    answer.Values,
			CorrectAnswer: q.Correct,
			IsCorrect:     correct,
		})
	}
	return score, breakdown, nil
}

// Percentage converts a score into a whole percentage, rounding half up.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// sameSet reports whether a and b contain the same values, ignoring order
// and duplicates.
func sameSet(a, b []string) bool {
	setA := make(map[string]bool, len(a))
	for _, v := range a {
		setA[v] = true
	}
	setB := make(map[string]bool, len(b))
	for _, v := range b {
		setB[v] = true
	}
	if len(setA) != len(setB) {
		return false
	}
	for v := range setA {
		if !setB[v] {
			return false
		}
	}
	return true
}

// ValidateQuestion enforces the invariants a question must satisfy before it
// is stored: at least two options, a non-empty correct set that is a subset
// of the options, and exactly one correct answer in single mode.
func ValidateQuestion(options, correct []string, mode string) error {
	if mode != ModeSingle && mode != ModeMultiple {
		return &ValidationError{Field: "mode", Reason: "must be single or multiple"}
	}
	if len(options) < 2 {
		return &ValidationError{Field: "options", Reason: "at least 2 options are required"}
	}
	if len(correct) == 0 {
		return &ValidationError{Field: "correct_answers", Reason: "at least one correct answer is required"}
	}
	if mode == ModeSingle && len(correct) != 1 {
		return &ValidationError{Field: "correct_answers", Reason: "single mode requires exactly one correct answer"}
	}
	optionSet := make(map[string]bool, len(options))
	for _, o := range options {
		optionSet[o] = true
	}
	for _, c := range correct {
		if !optionSet[c] {
			return &ValidationError{Field: "correct_answers", Reason: fmt.Sprintf("%q is not one of the options", c)}
		}
	}
	return nil
}

// ValidateExamForStart enforces the preconditions for opening a session:
// the exam must be active, carry at least one question, and have a duration
// inside the allowed 1-180 minute window. Duration is checked before any
// randomization happens.
func ValidateExamForStart(exam *Exam) error {
	if !exam.IsActive {
		return &ValidationError{Field: "exam", Reason: "exam is not active"}
	}
	if exam.Duration < 1 || exam.Duration > 180 {
		return &ValidationError{Field: "duration", Reason: "duration must be between 1 and 180 minutes"}
	}
	if len(exam.Questions) == 0 {
		return &ValidationError{Field: "questions", Reason: "exam has no questions"}
	}
	return nil
}
