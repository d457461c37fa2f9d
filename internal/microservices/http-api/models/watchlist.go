package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Watchlist uniqueness per (user, movie) is checked in the service before
// insert, not by a database constraint.
type Watchlist struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	MovieID   string    `gorm:"type:uuid;not null;index" json:"movie_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;" json:"movie,omitempty"`
}

func (w *Watchlist) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}

func (Watchlist) TableName() string {
	return "user_watchlist_movies"
}
