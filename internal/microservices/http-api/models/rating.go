package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_movie"`
	MovieID   string    `json:"movie_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_movie;index"`
	Rating    float64   `json:"rating" gorm:"type:decimal(3,1);not null;check:rating >= 1 AND rating <= 10"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Movie *Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Rating) TableName() string {
	return "ratings"
}
