package storage

import (
	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/models"
)

// Каскадные удаления каталога. Схема каскадов не знает, поэтому дети
// удаляются явно, и обязательно в одной транзакции: оборванный каскад
// не должен оставлять сирот.

// DeleteCourse удаляет курс вместе со всеми его темами, а под темами —
// материалы, вопросы и ответы (глубокий каскад).
func DeleteCourse(db *gorm.DB, courseID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var topicIDs []uint
		if err := tx.Model(&models.Topic{}).Where("course_id = ?", courseID).Pluck("id", &topicIDs).Error; err != nil {
			return err
		}

		if len(topicIDs) > 0 {
			if err := deleteTopicContents(tx, topicIDs); err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", courseID).Delete(&models.Topic{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Course{}, courseID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteTopic удаляет тему вместе с материалами, вопросами и их ответами.
func DeleteTopic(db *gorm.DB, topicID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteTopicContents(tx, []uint{topicID}); err != nil {
			return err
		}

		result := tx.Delete(&models.Topic{}, topicID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// deleteTopicContents убирает содержимое тем: сначала ответы вопросов,
// потом сами вопросы и материалы.
func deleteTopicContents(tx *gorm.DB, topicIDs []uint) error {
	var questionIDs []uint
	if err := tx.Model(&models.Question{}).Where("topic_id IN ?", topicIDs).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}

	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("topic_id IN ?", topicIDs).Delete(&models.Question{}).Error; err != nil {
		return err
	}
	return tx.Where("topic_id IN ?", topicIDs).Delete(&models.Material{}).Error
}

// CreateQuestion создает вопрос и ровно четыре варианта ответа одной
// транзакцией. correct — номер правильного варианта, начиная с 1;
// правильным помечается только он.
func CreateQuestion(db *gorm.DB, topicID uint, text string, answers [4]string, correct int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		question := models.Question{TopicID: topicID, QuestionText: text}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		for i, answerText := range answers {
			answer := models.Answer{
				QuestionID: question.ID,
				AnswerText: answerText,
				IsCorrect:  i+1 == correct,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteQuestion удаляет сначала ответы, потом сам вопрос. Возвращает
// topic_id вопроса, чтобы хендлер знал, куда вернуть администратора.
func DeleteQuestion(db *gorm.DB, questionID uint) (uint, error) {
	var topicID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, questionID).Error; err != nil {
			return err
		}
		topicID = question.TopicID

		if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, questionID).Error
	})
	return topicID, err
}
