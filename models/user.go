package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"userId"`
	Name         string `gorm:"size:100" json:"name"`
	Email        string `gorm:"uniqueIndex;size:150" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Role         string `gorm:"size:20" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
}
