package models

import (
	"time"
)

type Answer struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	QuestionID     uint      `json:"question_id" gorm:"not null;index"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	SelectedOption int       `json:"selected_option" gorm:"not null"`
	IsCorrect      bool      `json:"is_correct" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Question Question `json:"question,omitempty"`
	User     User     `json:"user,omitempty"`
}
