package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/middleware"
	"github.com/k/eduPlatform/internal/models"
	"github.com/k/eduPlatform/internal/quiz"
	"github.com/k/eduPlatform/internal/storage"
)

// HandleUserCourses — список курсов с темами для пользователя.
func (h *Handler) HandleUserCourses(w http.ResponseWriter, r *http.Request) {
	var courses []models.Course
	if err := h.DB.WithContext(r.Context()).Preload("Topics").Find(&courses).Error; err != nil {
		DBError(w, err)
		return
	}

	data := pageData(r, "Курсы")
	data.Courses = courses
	h.Render(w, "user_courses.html", data)
}

// HandleTopicMaterials — материалы темы. Сам факт открытия страницы
// фиксируется в прогрессе (viewed_materials).
func (h *Handler) HandleTopicMaterials(w http.ResponseWriter, r *http.Request) {
	topicID, err := strconv.ParseUint(mux.Vars(r)["topic_id"], 10, 32)
	if err != nil {
		http.Error(w, "Некорректный id темы", http.StatusBadRequest)
		return
	}

	db := h.DB.WithContext(r.Context())

	var topic models.Topic
	if err := db.First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Тема не найдена", http.StatusNotFound)
			return
		}
		DBError(w, err)
		return
	}

	ident, _ := middleware.IdentityFromContext(r.Context())
	if err := storage.MarkViewed(db, ident.UserID, uint(topicID)); err != nil {
		// Страницу все равно отдаем: прогресс — не повод ронять просмотр.
		log.Printf("Не удалось сохранить прогресс просмотра: %v", err)
	}

	var materials []models.Material
	if err := db.Where("topic_id = ?", topicID).Find(&materials).Error; err != nil {
		DBError(w, err)
		return
	}

	data := pageData(r, topic.Title)
	data.Topic = topic
	data.Materials = materials
	h.Render(w, "user_materials.html", data)
}

// HandleMaterialView — одиночный материал с заголовком его темы.
func (h *Handler) HandleMaterialView(w http.ResponseWriter, r *http.Request) {
	materialID, err := strconv.ParseUint(mux.Vars(r)["material_id"], 10, 32)
	if err != nil {
		http.Error(w, "Некорректный id материала", http.StatusBadRequest)
		return
	}

	db := h.DB.WithContext(r.Context())

	var material models.Material
	if err := db.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Материал не найден", http.StatusNotFound)
			return
		}
		DBError(w, err)
		return
	}

	topicTitle := "Без названия"
	var topic models.Topic
	if err := db.First(&topic, material.TopicID).Error; err == nil {
		topicTitle = topic.Title
	}

	data := pageData(r, material.Content)
	data.Material = material
	data.TopicTitle = topicTitle
	h.Render(w, "material_view.html", data)
}

// HandleTest — прохождение теста по теме. GET отдает вопросы (без
// признака правильности), POST считает процент и сохраняет прогресс.
func (h *Handler) HandleTest(w http.ResponseWriter, r *http.Request) {
	topicID, err := strconv.ParseUint(mux.Vars(r)["topic_id"], 10, 32)
	if err != nil {
		http.Error(w, "Некорректный id темы", http.StatusBadRequest)
		return
	}

	db := h.DB.WithContext(r.Context())

	var questions []models.Question
	if err := db.Preload("Answers").Where("topic_id = ?", topicID).Find(&questions).Error; err != nil {
		DBError(w, err)
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
			return
		}

		// Поля вида question_<id> = id выбранного варианта.
		// Вопросы без ответа просто не попадают в карту.
		selected := make(map[uint]uint)
		for _, q := range questions {
			raw := r.FormValue(fmt.Sprintf("question_%d", q.ID))
			if raw == "" {
				continue
			}
			answerID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				http.Error(w, fmt.Sprintf("Некорректные данные формы: поле question_%d не является id ответа", q.ID), http.StatusBadRequest)
				return
			}
			selected[q.ID] = uint(answerID)
		}

		score := quiz.Grade(questions, selected)

		ident, _ := middleware.IdentityFromContext(r.Context())
		if err := storage.SaveTestResult(db, ident.UserID, uint(topicID), score); err != nil {
			DBError(w, err)
			return
		}

		data := pageData(r, "Результат теста")
		data.Score = score
		h.Render(w, "user_result.html", data)
		return
	}

	data := pageData(r, "Тест")
	data.Questions = questions
	h.Render(w, "user_test.html", data)
}
