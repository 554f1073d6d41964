package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:UserID"`
	Results []Result `json:"results,omitempty" gorm:"foreignKey:UserID"`
}
