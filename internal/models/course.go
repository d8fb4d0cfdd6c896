package models

import (
	"time"
)

// Course (Курс). Владеет темами; каскадное удаление детей
// делается приложением (см. internal/storage/catalog.go),
// на уровне схемы каскада нет.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `json:"name"`

	Topics []Topic `json:"topics" gorm:"foreignKey:CourseID"`
}

// Topic (Тема курса). Может существовать и без курса (course_id = NULL).
type Topic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Title    string `json:"title"`
	CourseID *uint  `json:"course_id" gorm:"index"`

	Materials []Material `json:"materials" gorm:"foreignKey:TopicID"`
	Questions []Question `json:"questions" gorm:"foreignKey:TopicID"`
}

// Material (Материал темы): заголовок, текст и необязательное вложение.
type Material struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	TopicID  uint    `json:"topic_id" gorm:"index"`
	Content  string  `json:"content" gorm:"type:text"`
	Body     string  `json:"body" gorm:"type:text"`
	FilePath *string `json:"file_path"` // относительный путь внутри static/
}
