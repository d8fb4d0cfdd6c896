package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/models"
)

// MarkViewed фиксирует просмотр материалов темы. Upsert по (user, topic):
// существующая строка получает viewed_materials = true, иначе создается
// новая. Новая строка создается с passed_test = true — так делала
// исходная система, политика сохранена сознательно (см. DESIGN.md).
func MarkViewed(db *gorm.DB, userID, topicID uint) error {
	var progress models.CourseProgress
	err := db.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&progress).Error

	switch {
	case err == nil:
		return db.Model(&progress).Update("viewed_materials", true).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&models.CourseProgress{
			UserID:     userID,
			TopicID:    topicID,
			PassedTest: true,
		}).Error
	default:
		return err
	}
}

// SaveTestResult записывает результат теста. Upsert по (user, topic);
// повторная сдача безусловно перезаписывает балл, истории попыток нет.
func SaveTestResult(db *gorm.DB, userID, topicID uint, score int) error {
	var progress models.CourseProgress
	err := db.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&progress).Error

	switch {
	case err == nil:
		return db.Model(&progress).Updates(map[string]interface{}{
			"passed_test": true,
			"test_score":  score,
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&models.CourseProgress{
			UserID:          userID,
			TopicID:         topicID,
			PassedTest:      true,
			ViewedMaterials: false,
			TestScore:       &score,
		}).Error
	default:
		return err
	}
}

// ProgressRow — денормализованная строка отчета по прогрессу.
type ProgressRow struct {
	FullName        string `json:"full_name"`
	TopicTitle      string `json:"topic_title"`
	ViewedMaterials bool   `json:"viewed_materials"`
	PassedTest      bool   `json:"passed_test"`
	TestScore       *int   `json:"test_score"`
}

// AggregateProgress собирает отчет по всем парам (пользователь, тема),
// у которых есть строка прогресса. Сортировка по (email, title) дает
// детерминированный порядок и для страницы, и для экспорта.
func AggregateProgress(db *gorm.DB) ([]ProgressRow, error) {
	var rows []ProgressRow
	err := db.Table("course_progress").
		Select("users.full_name, topics.title AS topic_title, course_progress.viewed_materials, course_progress.passed_test, course_progress.test_score").
		Joins("JOIN users ON users.id = course_progress.user_id").
		Joins("JOIN topics ON topics.id = course_progress.topic_id").
		Order("users.email, topics.title").
		Scan(&rows).Error
	return rows, err
}

// TopicViewCount — сколько пользователей просмотрело материалы темы.
type TopicViewCount struct {
	Title       string `json:"title"`
	ViewedCount int64  `json:"viewed_count"`
}

// CountViewsByTopic — данные для диаграммы просмотров: все темы,
// включая те, которые никто не открывал.
func CountViewsByTopic(db *gorm.DB) ([]TopicViewCount, error) {
	var counts []TopicViewCount
	err := db.Table("topics").
		Select("topics.title, COUNT(cp.user_id) AS viewed_count").
		Joins("LEFT JOIN course_progress cp ON topics.id = cp.topic_id AND cp.viewed_materials = ?", true).
		Group("topics.id, topics.title").
		Scan(&counts).Error
	return counts, err
}
