package exam

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question modes. Single questions carry exactly one correct answer,
// multiple questions carry one or more.
const (
	ModeSingle   = "single"
	ModeMultiple = "multiple"
)

// Question is a multiple-choice question. Options and CorrectAnswers are
// JSON arrays of option strings; correctness is always resolved by option
// value, never by position, since per-session presentation order is shuffled.
type Question struct {
	gorm.Model
	Prompt         string         `json:"prompt" gorm:"not null"`
	Options        datatypes.JSON `json:"options"`
	CorrectAnswers datatypes.JSON `json:"-"`
	Mode           string         `json:"mode" gorm:"default:'single'"`
	Difficulty     string         `json:"difficulty" gorm:"default:'medium'"` // easy, medium, hard
	IsDeleted      bool           `gorm:"default:false"`
}
