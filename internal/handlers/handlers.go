package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/middleware"
	"github.com/k/eduPlatform/internal/models"
	"github.com/k/eduPlatform/internal/storage"
)

type Handler struct {
	DB        *gorm.DB
	Store     *sessions.CookieStore
	Tmpl      *template.Template
	StaticDir string
}

func NewHandler(db *gorm.DB, store *sessions.CookieStore, staticDir string) *Handler {

	funcMap := template.FuncMap{
		"add": func(i, j int) int {
			return i + j
		},
		"formatTime": func(t *time.Time) string {
			if t == nil {
				return "Никогда"
			}
			return t.Format("02.01.2006 в 15:04")
		},
	}

	tmpl := template.New("").Funcs(funcMap)

	if _, err := tmpl.ParseGlob("template/*.html"); err != nil {
		log.Fatal("Ошибка разбора шаблонов:", err)
	}

	return &Handler{
		DB:        db,
		Store:     store,
		Tmpl:      tmpl,
		StaticDir: staticDir,
	}
}

type PageData struct {
	Title           string
	IsAuthenticated bool
	UserID          uint
	RoleID          uint
	UserName        string
	Email           string
	CurrentPath     string
	Error           string

	Courses   []models.Course
	Course    models.Course
	Topics    []models.Topic
	Topic     models.Topic
	Materials []models.Material
	Material  models.Material
	Questions []models.Question
	Users     []models.User

	TopicTitle   string
	InviteLink   string
	Score        int
	ProgressRows []storage.ProgressRow
	ChartData    []storage.TopicViewCount
}

// pageData заполняет общие поля из личности текущего запроса.
func pageData(r *http.Request, title string) PageData {
	ident, ok := middleware.IdentityFromContext(r.Context())
	return PageData{
		Title:           title,
		IsAuthenticated: ok,
		UserID:          ident.UserID,
		RoleID:          ident.RoleID,
		UserName:        ident.Name,
		CurrentPath:     r.URL.Path,
	}
}

func (h *Handler) Render(w http.ResponseWriter, name string, data PageData) {
	if err := h.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Ошибка рендеринга %s: %v", name, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// DBError — ответ на любую ошибку БД: в лог подробно, наружу без деталей
// (ни DSN, ни текста запроса клиент видеть не должен).
func DBError(w http.ResponseWriter, err error) {
	log.Printf("Ошибка базы данных: %v", err)
	http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
}

// HandleIndex — корень: залогиненных уводим в кабинет, остальным логин-форма.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.FromRequest(h.Store, r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.Render(w, "login.html", PageData{Title: "Вход"})
}

// HandleLogin — GET отдает форму, POST проверяет пароль и открывает сессию.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.Render(w, "login.html", PageData{Title: "Вход"})
		return
	}

	form := LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if msg, ok := ValidateForm(form); !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	user, err := storage.Authenticate(h.DB.WithContext(r.Context()), form.Email, form.Password)
	if errors.Is(err, storage.ErrInvalidLogin) {
		h.Render(w, "login.html", PageData{Title: "Вход", Error: "Неверный логин или пароль"})
		return
	}
	if err != nil {
		DBError(w, err)
		return
	}

	session, _ := h.Store.Get(r, "session")
	session.Values["user_id"] = user.ID
	session.Values["role_id"] = user.RoleID
	session.Values["name"] = user.FullName
	session.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   86400 * 7,
	}
	session.Save(r, w)

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, "session")
	session.Options.MaxAge = -1
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDashboard — единственный обработчик /dashboard:
// администратора уводим в админку, пользователю отдаем кабинет.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFromContext(r.Context())
	if ident.RoleID == models.RoleAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	h.Render(w, "user_dashboard.html", pageData(r, "Мое обучение"))
}
