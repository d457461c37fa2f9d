package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Password     string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	RefreshToken *string   `gorm:"type:text" json:"-"` // cleared on logout
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
