package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/handlers"
	"github.com/k/eduPlatform/internal/models"
	"github.com/k/eduPlatform/internal/storage"
	"github.com/k/eduPlatform/internal/upload"
)

func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	return uint(id), err == nil
}

// ==========================================
// Курсы
// ==========================================

func (s *Service) HandleCourses(w http.ResponseWriter, r *http.Request) {
	var courses []models.Course
	if err := s.DB.WithContext(r.Context()).Order("id").Find(&courses).Error; err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, "Курсы")
	data.Courses = courses
	s.Render(w, "admin_courses.html", data)
}

func (s *Service) HandleAddCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		form := handlers.CourseForm{Name: r.FormValue("title")}
		if msg, ok := handlers.ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		course := models.Course{Name: form.Name}
		if err := s.DB.WithContext(r.Context()).Create(&course).Error; err != nil {
			handlers.DBError(w, err)
			return
		}
		http.Redirect(w, r, "/admin/courses", http.StatusSeeOther)
		return
	}

	s.Render(w, "admin_add_course.html", s.pageData(r, "Новый курс"))
}

func (s *Service) HandleEditCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "course_id")
	if !ok {
		http.Error(w, "Некорректный id курса", http.StatusBadRequest)
		return
	}

	db := s.DB.WithContext(r.Context())

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Курс не найден", http.StatusNotFound)
			return
		}
		handlers.DBError(w, err)
		return
	}

	if r.Method == http.MethodPost {
		form := handlers.CourseForm{Name: r.FormValue("title")}
		if msg, ok := handlers.ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		if err := db.Model(&course).Update("name", form.Name).Error; err != nil {
			handlers.DBError(w, err)
			return
		}
		http.Redirect(w, r, "/admin/courses", http.StatusSeeOther)
		return
	}

	data := s.pageData(r, "Редактирование курса")
	data.Course = course
	s.Render(w, "admin_edit_course.html", data)
}

func (s *Service) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "course_id")
	if !ok {
		http.Error(w, "Некорректный id курса", http.StatusBadRequest)
		return
	}

	// Глубокий каскад одной транзакцией: темы, материалы, вопросы, ответы.
	err := storage.DeleteCourse(s.DB.WithContext(r.Context()), courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Курс не найден", http.StatusNotFound)
		return
	}
	if err != nil {
		handlers.DBError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/courses", http.StatusSeeOther)
}

func (s *Service) HandleCourseTopics(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "course_id")
	if !ok {
		http.Error(w, "Некорректный id курса", http.StatusBadRequest)
		return
	}

	db := s.DB.WithContext(r.Context())

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Курс не найден", http.StatusNotFound)
			return
		}
		handlers.DBError(w, err)
		return
	}

	var topics []models.Topic
	if err := db.Where("course_id = ?", courseID).Find(&topics).Error; err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, course.Name)
	data.Course = course
	data.Topics = topics
	s.Render(w, "admin_course_topics.html", data)
}

func (s *Service) HandleAddTopicToCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "course_id")
	if !ok {
		http.Error(w, "Некорректный id курса", http.StatusBadRequest)
		return
	}

	db := s.DB.WithContext(r.Context())

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Курс не найден", http.StatusNotFound)
			return
		}
		handlers.DBError(w, err)
		return
	}

	if r.Method == http.MethodPost {
		form := handlers.TopicForm{Title: r.FormValue("title")}
		if msg, ok := handlers.ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		topic := models.Topic{Title: form.Title, CourseID: &course.ID}
		if err := db.Create(&topic).Error; err != nil {
			handlers.DBError(w, err)
			return
		}
		http.Redirect(w, r, "/admin/courses/"+strconv.Itoa(int(courseID))+"/topics", http.StatusSeeOther)
		return
	}

	data := s.pageData(r, "Новая тема")
	data.Course = course
	s.Render(w, "admin_add_topic_to_course.html", data)
}

// ==========================================
// Темы
// ==========================================

func (s *Service) HandleTopics(w http.ResponseWriter, r *http.Request) {
	var topics []models.Topic
	if err := s.DB.WithContext(r.Context()).Order("id").Find(&topics).Error; err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, "Темы")
	data.Topics = topics
	s.Render(w, "admin_topics.html", data)
}

func (s *Service) HandleAddTopic(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		form := handlers.TopicForm{Title: r.FormValue("title")}
		if msg, ok := handlers.ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		// Тема без курса: course_id останется NULL.
		topic := models.Topic{Title: form.Title}
		if err := s.DB.WithContext(r.Context()).Create(&topic).Error; err != nil {
			handlers.DBError(w, err)
			return
		}
		http.Redirect(w, r, "/admin/topics", http.StatusSeeOther)
		return
	}

	s.Render(w, "admin_add_topic.html", s.pageData(r, "Новая тема"))
}

func (s *Service) HandleEditTopic(w http.ResponseWriter, r *http.Request) {
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
		form := handlers.TopicForm{Title: r.FormValue("title")}
		if msg, ok := handlers.ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		if err := db.Model(&topic).Update("title", form.Title).Error; err != nil {
			handlers.DBError(w, err)
			return
		}
		http.Redirect(w, r, "/admin/topics", http.StatusSeeOther)
		return
	}

	data := s.pageData(r, "Редактирование темы")
	data.Topic = topic
	s.Render(w, "admin_edit_topic.html", data)
}

func (s *Service) HandleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(r, "topic_id")
	if !ok {
		http.Error(w, "Некорректный id темы", http.StatusBadRequest)
		return
	}

	err := storage.DeleteTopic(s.DB.WithContext(r.Context()), topicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Тема не найдена", http.StatusNotFound)
		return
	}
	if err != nil {
		handlers.DBError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/topics", http.StatusSeeOther)
}

// ==========================================
// Материалы
// ==========================================

func (s *Service) HandleMaterials(w http.ResponseWriter, r *http.Request) {
	var materials []models.Material
	if err := s.DB.WithContext(r.Context()).Order("id").Find(&materials).Error; err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, "Материалы")
	data.Materials = materials
	s.Render(w, "admin_materials.html", data)
}

func (s *Service) HandleTopicMaterials(w http.ResponseWriter, r *http.Request) {
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

	var materials []models.Material
	if err := db.Where("topic_id = ?", topicID).Find(&materials).Error; err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, topic.Title)
	data.Topic = topic
	data.Materials = materials
	s.Render(w, "admin_topic_materials.html", data)
}

func (s *Service) HandleAddMaterial(w http.ResponseWriter, r *http.Request) {
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
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
			return
		}

		form := handlers.MaterialForm{
			Content: r.FormValue("content"),
			Body:    r.FormValue("body"),
		}
		if msg, ok := handlers.ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		// Вложение не обязательно; если есть — проверяем allow-list.
		var filePath *string
		if _, fh, err := r.FormFile("file"); err == nil && fh.Filename != "" {
			saved, err := upload.Save(fh, s.StaticDir)
			if errors.Is(err, upload.ErrExtension) {
				http.Error(w, "Некорректные данные формы: поле file: "+err.Error(), http.StatusBadRequest)
				return
			}
			if err != nil {
				handlers.DBError(w, err)
				return
			}
			filePath = &saved
		}

		material := models.Material{
			TopicID:  uint(topicID),
			Content:  form.Content,
			Body:     form.Body,
			FilePath: filePath,
		}
		if err := db.Create(&material).Error; err != nil {
			handlers.DBError(w, err)
			return
		}
		http.Redirect(w, r, "/admin/topics", http.StatusSeeOther)
		return
	}

	data := s.pageData(r, "Новый материал")
	data.Topic = topic
	s.Render(w, "admin_add_material.html", data)
}

func (s *Service) HandleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	materialID, ok := pathID(r, "material_id")
	if !ok {
		http.Error(w, "Некорректный id материала", http.StatusBadRequest)
		return
	}

	result := s.DB.WithContext(r.Context()).Delete(&models.Material{}, materialID)
	if result.Error != nil {
		handlers.DBError(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Материал не найден", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/admin/materials", http.StatusSeeOther)
}
