package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/k/eduPlatform/internal/models"
)

// Identity — личность текущего запроса. Заполняется из подписанной
// сессионной куки при логине; middleware кладет ее в контекст запроса,
// хендлеры читают через IdentityFromContext вместо глобального состояния.
type Identity struct {
	UserID uint
	RoleID uint
	Name   string
}

type identityKey struct{}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	return ident, ok
}

// FromRequest достает личность из сессионной куки. Роль берется из самой
// сессии (она записывается при логине), запроса к БД здесь нет.
func FromRequest(store *sessions.CookieStore, r *http.Request) (Identity, bool) {
	session, _ := store.Get(r, "session")

	userID, ok := session.Values["user_id"].(uint)
	if !ok || userID == 0 {
		return Identity{}, false
	}

	roleID, _ := session.Values["role_id"].(uint)
	name, _ := session.Values["name"].(string)

	return Identity{UserID: userID, RoleID: roleID, Name: name}, true
}

// RequireLogin пускает только аутентифицированных пользователей,
// остальных перенаправляет на страницу входа.
func RequireLogin(store *sessions.CookieStore) func(next http.HandlerFunc) http.HandlerFunc {
	return requireRole(store, models.RoleUser)
}

// RequireAdmin пускает только администраторов. Пользователь без прав
// тоже уходит на /login, а не получает 403 — так вел себя
// и исходный вариант системы.
func RequireAdmin(store *sessions.CookieStore) func(next http.HandlerFunc) http.HandlerFunc {
	return requireRole(store, models.RoleAdmin)
}

func requireRole(store *sessions.CookieStore, requiredRoleID uint) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ident, ok := FromRequest(store, r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if requiredRoleID == models.RoleAdmin && ident.RoleID != models.RoleAdmin {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}
