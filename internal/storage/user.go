package storage

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/models"
)

var (
	// ErrInvalidLogin — неверная пара email/пароль либо аккаунт не активирован.
	ErrInvalidLogin = errors.New("неверный логин или пароль")

	// ErrInactiveInvite — токен не найден или пользователь уже активирован.
	ErrInactiveInvite = errors.New("ссылка недействительна или пользователь уже активирован")
)

// Authenticate ищет подтвержденного пользователя по email и сверяет пароль
// с bcrypt-хешем (сравнение внутри bcrypt устойчиво к таймингу).
func Authenticate(db *gorm.DB, email, password string) (models.User, error) {
	var user models.User
	err := db.Where("email = ? AND is_confirmed = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrInvalidLogin
	}
	if err != nil {
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidLogin
	}
	return user, nil
}

// CreateInvite создает неподтвержденного пользователя с одноразовым токеном
// и возвращает токен для ссылки активации.
func CreateInvite(db *gorm.DB, email, fullName string) (string, error) {
	token := uuid.NewString()

	user := models.User{
		Email:       email,
		FullName:    fullName,
		RoleID:      models.RoleUser,
		IsConfirmed: false,
		InviteToken: &token,
	}
	if err := db.Create(&user).Error; err != nil {
		return "", err
	}
	return token, nil
}

// FindPendingInvite находит единственного неактивированного пользователя
// с таким токеном.
func FindPendingInvite(db *gorm.DB, token string) (models.User, error) {
	var user models.User
	err := db.Where("invite_token = ? AND is_confirmed = ?", token, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrInactiveInvite
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CompleteInvite устанавливает пароль и переводит пользователя в состояние
// «активирован» одним UPDATE с условием на токен: повторное использование
// той же ссылки не найдет строку и вернет ErrInactiveInvite.
func CompleteInvite(db *gorm.DB, token, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	result := db.Model(&models.User{}).
		Where("invite_token = ? AND is_confirmed = ?", token, false).
		Updates(map[string]interface{}{
			"password_hash": string(hash),
			"is_confirmed":  true,
			"invite_token":  nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInactiveInvite
	}
	return nil
}

// DeleteInvitedUser удаляет пользователя, но только пока тот не активирован.
func DeleteInvitedUser(db *gorm.DB, userID uint) error {
	result := db.Where("id = ? AND is_confirmed = ?", userID, false).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateFullName меняет ФИО пользователя (правка из списка приглашенных).
func UpdateFullName(db *gorm.DB, userID uint, fullName string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("full_name", fullName)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
