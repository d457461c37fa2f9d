package repository

import (
	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	UpdateRefreshToken(userID string, refreshToken *string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRefreshToken stores the user's current refresh token; nil clears it
// (logout).
func (r *userRepository) UpdateRefreshToken(userID string, refreshToken *string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", refreshToken).Error
}
