package models

// User (Пользователь). Создается только по приглашению администратора:
// сначала строка с invite_token и is_confirmed = false, после установки
// пароля токен обнуляется и аккаунт становится активным.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string  `json:"-"`
	FullName     string  `json:"full_name"`
	RoleID       uint    `json:"role_id"`
	IsConfirmed  bool    `json:"is_confirmed"`
	InviteToken  *string `gorm:"uniqueIndex;size:64" json:"-"`

	Role Role `json:"role" gorm:"foreignKey:RoleID"`
}
