package gormstore

import (
	"errors"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
	"gorm.io/gorm"
)

func (s *Store) CreateUser(user *models.User) error {
	return s.database.Create(user).Error
}

func (s *Store) FindUserByID(userID string) (models.User, error) {
	var user models.User
	if err := s.database.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) FindUserByName(name string) (models.User, error) {
	var user models.User
	if err := s.database.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.database.Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CountUsers() (int64, error) {
	var count int64
	if err := s.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
