package models

type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`

	Users []User
}

// Константы RoleID, используемые по всему приложению.
// Должны совпадать с сидами в internal/database/seed.go.
const (
	RoleGuest uint = 0
	RoleUser  uint = 1
	RoleAdmin uint = 2
)
