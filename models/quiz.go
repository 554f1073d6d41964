package models

import (
	"time"
)

type Quiz struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	Results   []Result   `json:"results,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}
