package database

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/models"
)

// Seed создает справочник ролей и, если заданы ADMIN_EMAIL/ADMIN_PASSWORD,
// первого администратора. Пользователи приглашаются только через админку,
// поэтому без этого аккаунта в систему не войти.
func Seed(db *gorm.DB) error {
	db.FirstOrCreate(&models.Role{}, models.Role{ID: models.RoleUser, Name: "User"})
	db.FirstOrCreate(&models.Role{}, models.Role{ID: models.RoleAdmin, Name: "Admin"})

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Администратор",
		RoleID:       models.RoleAdmin,
		IsConfirmed:  true,
	}
	return db.Create(&admin).Error
}
