package models

// Question (Вопрос теста). У каждого вопроса ровно 4 варианта ответа,
// они создаются вместе с вопросом одной транзакцией.
type Question struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TopicID      uint   `json:"topic_id" gorm:"index"`
	QuestionText string `json:"question_text" gorm:"type:text"`

	Answers []Answer `json:"answers" gorm:"foreignKey:QuestionID"`
}

// Answer (Вариант ответа). Ровно один вариант на вопрос помечен правильным;
// это гарантирует логика создания, а не схема.
type Answer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `json:"question_id" gorm:"index"`
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
}
