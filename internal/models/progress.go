package models

import (
	"time"
)

// CourseProgress — прогресс пользователя по теме: просмотр материалов
// и результат теста. Не больше одной строки на пару (user, topic),
// строки никогда не удаляются, только обновляются (last write wins).
type CourseProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  uint `json:"user_id" gorm:"uniqueIndex:idx_user_topic"`
	TopicID uint `json:"topic_id" gorm:"uniqueIndex:idx_user_topic"`

	ViewedMaterials bool `json:"viewed_materials"`
	PassedTest      bool `json:"passed_test"`
	TestScore       *int `json:"test_score"` // 0-100, NULL пока тест не сдавался

	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Topic Topic `json:"-" gorm:"foreignKey:TopicID"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
