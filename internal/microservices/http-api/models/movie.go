package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Movie struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid"`
	Title         string     `json:"title" gorm:"size:255;not null"`
	Overview      *string    `json:"overview,omitempty" gorm:"type:text"`
	ReleaseDate   *time.Time `json:"release_date,omitempty" gorm:"type:date"`
	PosterPath    *string    `json:"poster_path,omitempty" gorm:"size:500"`
	BackdropPath  *string    `json:"backdrop_path,omitempty" gorm:"size:500"`
	VoteAverage   float64    `json:"vote_average" gorm:"type:decimal(3,1);default:0"`
	VoteCount     int        `json:"vote_count" gorm:"default:0"`
	Popularity    float64    `json:"popularity" gorm:"type:decimal(8,3);default:0;index"`
	TmdbID        *int       `json:"tmdb_id,omitempty" gorm:"uniqueIndex"`
	AverageRating *float64   `json:"average_rating,omitempty" gorm:"type:decimal(10,1)"`
	RatingCount   int        `json:"rating_count" gorm:"default:0"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// associations
	Genres  []Genre  `json:"genres,omitempty" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
	Ratings []Rating `json:"-" gorm:"foreignKey:MovieID"`
}

// BeforeCreate hook to set UUID before creating a Movie
func (m *Movie) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (Movie) TableName() string {
	return "movies"
}
