package admin

import (
	"net/http"

	"github.com/k/eduPlatform/internal/handlers"
	"github.com/k/eduPlatform/internal/middleware"
)

// Service — хендлеры админки поверх общего Handler
// (БД, сессии и шаблоны берутся из него).
type Service struct {
	handlers.Handler
}

func (s *Service) pageData(r *http.Request, title string) handlers.PageData {
	ident, ok := middleware.IdentityFromContext(r.Context())
	return handlers.PageData{
		Title:           title,
		IsAuthenticated: ok,
		UserID:          ident.UserID,
		RoleID:          ident.RoleID,
		UserName:        ident.Name,
		CurrentPath:     r.URL.Path,
	}
}

func (s *Service) HandleAdminPage(w http.ResponseWriter, r *http.Request) {
	s.Render(w, "admin.html", s.pageData(r, "Панель администратора"))
}

func (s *Service) HandleStaffPage(w http.ResponseWriter, r *http.Request) {
	s.Render(w, "admin_staff.html", s.pageData(r, "Сотрудники"))
}
