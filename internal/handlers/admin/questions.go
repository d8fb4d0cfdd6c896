package admin

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/handlers"
	"github.com/k/eduPlatform/internal/models"
	"github.com/k/eduPlatform/internal/storage"
)

func (s *Service) HandleTopicQuestions(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(r, "topic_id")
	if !ok {
		http.Error(w, "Некорректный id темы", http.StatusBadRequest)
		return
	}

	db := s.DB.WithContext(r.Context())

	var topic models.Topic
	if err := db.First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Тема не найдена", http.StatusNotFound)
			return
		}
		handlers.DBError(w, err)
		return
	}

	var questions []models.Question
	if err := db.Preload("Answers").Where("topic_id = ?", topicID).Find(&questions).Error; err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, "Вопросы: "+topic.Title)
	data.Topic = topic
	data.Questions = questions
	s.Render(w, "admin_view_questions.html", data)
}

// HandleAddQuestion — создание вопроса: текст, ровно 4 варианта ответа
// и номер правильного (1-4). Вопрос и ответы пишутся одной транзакцией.
func (s *Service) HandleAddQuestion(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(r, "topic_id")
	if !ok {
		http.Error(w, "Некорректный id темы", http.StatusBadRequest)
		return
	}

	db := s.DB.WithContext(r.Context())

	var topic models.Topic
	if err := db.First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Тема не найдена", http.StatusNotFound)
			return
		}
		handlers.DBError(w, err)
		return
	}

	if r.Method == http.MethodPost {
		correct, _ := strconv.Atoi(r.FormValue("correct"))
		form := handlers.QuestionForm{
			Question: r.FormValue("question"),
			Answers: [4]string{
				r.FormValue("answer1"),
				r.FormValue("answer2"),
				r.FormValue("answer3"),
				r.FormValue("answer4"),
			},
			Correct: correct,
		}
		if msg, ok := handlers.ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		if err := storage.CreateQuestion(db, uint(topicID), form.Question, form.Answers, form.Correct); err != nil {
			handlers.DBError(w, err)
			return
		}

		// Возврат в список тем курса, если тема привязана к курсу.
		if topic.CourseID != nil {
			http.Redirect(w, r, "/admin/courses/"+strconv.Itoa(int(*topic.CourseID))+"/topics", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/admin/topics", http.StatusSeeOther)
		return
	}

	data := s.pageData(r, "Новый вопрос")
	data.Topic = topic
	s.Render(w, "admin_add_question.html", data)
}

func (s *Service) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(r, "question_id")
	if !ok {
		http.Error(w, "Некорректный id вопроса", http.StatusBadRequest)
		return
	}

	topicID, err := storage.DeleteQuestion(s.DB.WithContext(r.Context()), questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Вопрос не найден", http.StatusNotFound)
		return
	}
	if err != nil {
		handlers.DBError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/topics/"+strconv.Itoa(int(topicID))+"/questions", http.StatusSeeOther)
}
