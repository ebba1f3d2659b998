package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dcastane/labsamples/internal/gormw"
	"github.com/dcastane/labsamples/internal/models"
)

func GetUserByEmail(db *gormw.DB, email string) (*models.User, error) {
	user := &models.User{}
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *gormw.DB, id uint) (*models.User, error) {
	user := &models.User{}
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func EmailExists(db *gormw.DB, email string) (bool, error) {
	_, err := GetUserByEmail(db, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func UsernameExists(db *gormw.DB, username string) (bool, error) {
	user := &models.User{}
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func CreateUser(db *gormw.DB, user *models.User) error {
	return db.Create(user).Error
}
