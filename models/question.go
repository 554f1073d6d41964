package models

import (
	"time"

	"gorm.io/datatypes"
)

// OptionCount is the fixed number of options every question carries.
// CorrectOption is 1-indexed into Options.
const OptionCount = 4

type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	QuizID        uint                        `json:"quiz_id" gorm:"not null;index"`
	Text          string                      `json:"text" gorm:"size:500;not null"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	CorrectOption int                         `json:"correct_option" gorm:"not null"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`

	// Relationships
	Quiz    Quiz     `json:"quiz,omitempty"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
