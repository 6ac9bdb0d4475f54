package exam

import "gorm.io/gorm"

// Exam groups questions under a timed, pass/fail placement test.
type Exam struct {
	gorm.Model
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description"`
	Duration     int    `json:"duration"` // minutes, valid range 1-180
	PassingScore int    `json:"passing_score" gorm:"default:70"`
	IsActive     bool   `json:"is_active"`
	IsDeleted    bool   `gorm:"default:false"`
}

// ExamQuestion attaches a question to an exam at a fixed position. The
// position is the canonical order; sessions shuffle their own copy.
type ExamQuestion struct {
	gorm.Model
	ExamID     uint `json:"exam_id" gorm:"index;not null"`
	QuestionID uint `json:"question_id" gorm:"index;not null"`
	Position   int  `json:"position" gorm:"default:0"`
}
