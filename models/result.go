package models

import (
	"time"
)

// Result tracks one user's running attempt at one quiz. At most one row
// exists per (quiz, user) pair; Answers accumulates in submission order.
type Result struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	QuizID    uint      `json:"quiz_id" gorm:"not null;uniqueIndex:idx_results_quiz_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_results_quiz_user"`
	Score     int       `json:"score" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Quiz    Quiz     `json:"quiz,omitempty"`
	User    User     `json:"user,omitempty"`
	Answers []Answer `json:"answers,omitempty" gorm:"many2many:result_answers;constraint:OnDelete:CASCADE"`
}
