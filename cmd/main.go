package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/k/eduPlatform/internal/database"
	"github.com/k/eduPlatform/internal/handlers"
	"github.com/k/eduPlatform/internal/handlers/admin"
	"github.com/k/eduPlatform/internal/middleware"
)

func main() {
	// ---------------------------
	// 0. Загрузка переменных окружения
	// ---------------------------
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: Не удалось загрузить файл .env. Используются системные переменные.")
	}

	// ---------------------------
	// 1. Подключаем GORM (База данных)
	// ---------------------------
	db, err := database.Connect()
	if err != nil {
		log.Fatal("Ошибка подключения к БД:", err)
	}

	// ---------------------------
	// 2. Делаем миграции
	// ---------------------------
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Ошибка миграции:", err)
	}

	// ---------------------------
	// 3. Сиды: роли и первый администратор (ADMIN_EMAIL/ADMIN_PASSWORD)
	// ---------------------------
	if err := database.Seed(db); err != nil {
		log.Println("Ошибка сидов (возможно, данные уже есть):", err)
	}

	// ---------------------------
	// 4. Настройка сессий
	// ---------------------------
	sessionKey := os.Getenv("SESSION_KEY")
	if sessionKey == "" {
		sessionKey = "super-secret-default-key" // Только для разработки!
		log.Println("Внимание: SESSION_KEY не задан, используется дефолтный.")
	}
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false, // Поставьте true, если используете HTTPS
	}

	// ---------------------------
	// 5. Инициализация хендлеров
	// ---------------------------
	staticDir := "./static"
	h := handlers.NewHandler(db, store, staticDir)

	adminService := admin.Service{
		Handler: *h,
	}

	requireLogin := middleware.RequireLogin(store)
	requireAdmin := middleware.RequireAdmin(store)

	// ---------------------------
	// 6. Роутинг с Gorilla Mux
	// ---------------------------
	r := mux.NewRouter()

	// --- Статические файлы (CSS и загруженные вложения) ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	// --- Публичные маршруты ---
	r.HandleFunc("/", h.HandleIndex).Methods("GET")
	r.HandleFunc("/login", h.HandleLogin).Methods("GET", "POST")
	r.HandleFunc("/logout", h.HandleLogout).Methods("GET")
	r.HandleFunc("/invite/{token}", h.HandleCompleteInvite).Methods("GET", "POST")

	// --- Маршруты пользователя (нужен вход) ---
	r.HandleFunc("/dashboard", requireLogin(h.HandleDashboard)).Methods("GET")
	r.HandleFunc("/user/courses", requireLogin(h.HandleUserCourses)).Methods("GET")
	r.HandleFunc("/user/topic/{topic_id}/materials", requireLogin(h.HandleTopicMaterials)).Methods("GET")
	r.HandleFunc("/user/test/{topic_id}", requireLogin(h.HandleTest)).Methods("GET", "POST")
	r.HandleFunc("/material/{material_id}", requireLogin(h.HandleMaterialView)).Methods("GET")

	// --- АДМИН ПАНЕЛЬ ---
	r.HandleFunc("/admin", requireAdmin(adminService.HandleAdminPage)).Methods("GET")
	r.HandleFunc("/admin/staff", requireAdmin(adminService.HandleStaffPage)).Methods("GET")

	// --- Курсы ---
	r.HandleFunc("/admin/courses", requireAdmin(adminService.HandleCourses)).Methods("GET")
	r.HandleFunc("/admin/add_course", requireAdmin(adminService.HandleAddCourse)).Methods("GET", "POST")
	r.HandleFunc("/admin/edit_course/{course_id}", requireAdmin(adminService.HandleEditCourse)).Methods("GET", "POST")
	r.HandleFunc("/admin/delete_course/{course_id}", requireAdmin(adminService.HandleDeleteCourse)).Methods("POST")
	r.HandleFunc("/admin/courses/{course_id}/topics", requireAdmin(adminService.HandleCourseTopics)).Methods("GET")
	r.HandleFunc("/admin/courses/{course_id}/add_topic", requireAdmin(adminService.HandleAddTopicToCourse)).Methods("GET", "POST")

	// --- Темы ---
	r.HandleFunc("/admin/topics", requireAdmin(adminService.HandleTopics)).Methods("GET")
	r.HandleFunc("/admin/add_topic", requireAdmin(adminService.HandleAddTopic)).Methods("GET", "POST")
	r.HandleFunc("/admin/edit_topic/{topic_id}", requireAdmin(adminService.HandleEditTopic)).Methods("GET", "POST")
	r.HandleFunc("/admin/delete_topic/{topic_id}", requireAdmin(adminService.HandleDeleteTopic)).Methods("POST")

	// --- Материалы ---
	r.HandleFunc("/admin/materials", requireAdmin(adminService.HandleMaterials)).Methods("GET")
	r.HandleFunc("/admin/topics/{topic_id}/materials", requireAdmin(adminService.HandleTopicMaterials)).Methods("GET")
	r.HandleFunc("/admin/add_material/{topic_id}", requireAdmin(adminService.HandleAddMaterial)).Methods("GET", "POST")
	r.HandleFunc("/admin/delete_material/{material_id}", requireAdmin(adminService.HandleDeleteMaterial)).Methods("POST")

	// --- Вопросы тестов ---
	r.HandleFunc("/admin/topics/{topic_id}/questions", requireAdmin(adminService.HandleTopicQuestions)).Methods("GET")
	r.HandleFunc("/admin/add_question/{topic_id}", requireAdmin(adminService.HandleAddQuestion)).Methods("GET", "POST")
	r.HandleFunc("/admin/delete_question/{question_id}", requireAdmin(adminService.HandleDeleteQuestion)).Methods("POST")

	// --- Приглашения ---
	r.HandleFunc("/admin/invite", requireAdmin(adminService.HandleInvite)).Methods("GET", "POST")
	r.HandleFunc("/admin/invited_users", requireAdmin(adminService.HandleInvitedUsers)).Methods("GET")
	r.HandleFunc("/admin/delete_invited_user/{user_id}", requireAdmin(adminService.HandleDeleteInvitedUser)).Methods("POST")
	r.HandleFunc("/admin/update_full_name", requireAdmin(adminService.HandleUpdateFullName)).Methods("POST")

	// --- Прогресс ---
	r.HandleFunc("/admin/progress", requireAdmin(adminService.HandleProgress)).Methods("GET")
	r.HandleFunc("/admin/progress/chart", requireAdmin(adminService.HandleProgressChart)).Methods("GET")
	r.HandleFunc("/admin/progress/export", requireAdmin(adminService.HandleProgressExport)).Methods("GET")

	// ---------------------------
	// 7. Запуск сервера
	// ---------------------------
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Сервер запущен: http://localhost:%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
