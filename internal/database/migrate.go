package database

import (
	"github.com/k/eduPlatform/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Course{},
		&models.Topic{},
		&models.Material{},
		&models.Question{},
		&models.Answer{},
		&models.CourseProgress{},
	)
}
