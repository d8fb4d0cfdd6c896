package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/k/eduPlatform/internal/handlers"
	"github.com/k/eduPlatform/internal/models"
	"github.com/k/eduPlatform/internal/storage"
)

// HandleInvite — приглашение нового пользователя. POST создает
// неподтвержденный аккаунт и показывает одноразовую ссылку активации.
func (s *Service) HandleInvite(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r, "Приглашение пользователя")

	if r.Method == http.MethodPost {
		form := handlers.InviteForm{
			Email:    r.FormValue("email"),
			FullName: r.FormValue("full_name"),
		}
		if msg, ok := handlers.ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		token, err := storage.CreateInvite(s.DB.WithContext(r.Context()), form.Email, form.FullName)
		if err != nil {
			handlers.DBError(w, err)
			return
		}

		data.InviteLink = fmt.Sprintf("http://%s/invite/%s", r.Host, token)
	}

	s.Render(w, "admin_invite_user.html", data)
}

func (s *Service) HandleInvitedUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	err := s.DB.WithContext(r.Context()).
		Where("role_id = ?", models.RoleUser).
		Order("email").
		Find(&users).Error
	if err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, "Приглашенные пользователи")
	data.Users = users
	s.Render(w, "admin_invited_users.html", data)
}

// HandleDeleteInvitedUser — удалить можно только еще не активированного.
func (s *Service) HandleDeleteInvitedUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		http.Error(w, "Некорректный id пользователя", http.StatusBadRequest)
		return
	}

	err := storage.DeleteInvitedUser(s.DB.WithContext(r.Context()), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Пользователь не найден", http.StatusNotFound)
		return
	}
	if err != nil {
		handlers.DBError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/invited_users", http.StatusSeeOther)
}

func (s *Service) HandleUpdateFullName(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseUint(r.FormValue("user_id"), 10, 32)
	form := handlers.FullNameForm{
		UserID:   uint(userID),
		FullName: r.FormValue("full_name"),
	}
	if msg, ok := handlers.ValidateForm(form); !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	err := storage.UpdateFullName(s.DB.WithContext(r.Context()), form.UserID, form.FullName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Пользователь не найден", http.StatusNotFound)
		return
	}
	if err != nil {
		handlers.DBError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/invited_users", http.StatusSeeOther)
}
