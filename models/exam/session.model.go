package exam

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session statuses. ACTIVE is the only state that accepts answers; the
// ACTIVE -> SUBMITTED and ACTIVE -> EXPIRED edges are guarded by a
// conditional update so a session is graded at most once.
const (
	StatusActive    = "ACTIVE"
	StatusSubmitted = "SUBMITTED"
	StatusExpired   = "EXPIRED"
)

// Session is one user's attempt at one exam. DeadlineAt is an absolute
// timestamp: remaining time is always recomputed as deadline minus now, so a
// client reload never drifts the clock. QuestionOrder and OptionOrders hold
// the randomized presentation generated at start; Answers holds the collected
// answer map keyed by question ID.
type Session struct {
	gorm.Model
	PublicID      string         `json:"session_id" gorm:"uniqueIndex;not null"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	ExamID        uint           `json:"exam_id" gorm:"index;not null"`
	QuestionOrder datatypes.JSON `json:"question_order"`
	OptionOrders  datatypes.JSON `json:"option_orders"`
	DeadlineAt    time.Time      `json:"deadline_at" gorm:"index;not null"`
	Answers       datatypes.JSON `json:"answers"`
	Status        string         `json:"status" gorm:"index;default:'ACTIVE'"`
	ResultID      *uint          `json:"result_id"`
}
