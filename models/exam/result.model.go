package exam

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result is the graded outcome of a session. Rows are append-only: once
// created they are never updated.
type Result struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	ExamID         uint           `json:"exam_id" gorm:"index;not null"`
	SessionID      uint           `json:"-" gorm:"index"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     int            `json:"percentage"`
	Passed         bool           `json:"passed"`
	Breakdown      datatypes.JSON `json:"breakdown"` // per-question answers with correctness
	SubmittedAt    time.Time      `json:"submitted_at"`
}
