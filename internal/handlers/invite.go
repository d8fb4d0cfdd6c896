package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/k/eduPlatform/internal/storage"
)

// HandleCompleteInvite — активация аккаунта по одноразовой ссылке
// /invite/{token}. GET отдает форму пароля, POST завершает приглашение.
// Использованный или неизвестный токен — терминальное сообщение.
func (h *Handler) HandleCompleteInvite(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	db := h.DB.WithContext(r.Context())

	user, err := storage.FindPendingInvite(db, token)
	if errors.Is(err, storage.ErrInactiveInvite) {
		fmt.Fprint(w, "Ссылка недействительна или пользователь уже активирован.")
		return
	}
	if err != nil {
		DBError(w, err)
		return
	}

	if r.Method == http.MethodPost {
		form := CompleteInviteForm{Password: r.FormValue("password")}
		if msg, ok := ValidateForm(form); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		err := storage.CompleteInvite(db, token, form.Password)
		if errors.Is(err, storage.ErrInactiveInvite) {
			// Гонка двух запросов с одним токеном: UPDATE не нашел строку.
			fmt.Fprint(w, "Ссылка недействительна или пользователь уже активирован.")
			return
		}
		if err != nil {
			DBError(w, err)
			return
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := PageData{Title: "Активация аккаунта", Email: user.Email}
	h.Render(w, "complete_invite.html", data)
}
