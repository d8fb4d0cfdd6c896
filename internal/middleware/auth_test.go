package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k/eduPlatform/internal/models"
)

// sessionCookie прогоняет значения через настоящий CookieStore, чтобы
// в тесте была подписанная кука, а не подделка.
func sessionCookie(t *testing.T, store *sessions.CookieStore, userID, roleID uint, name string) *http.Cookie {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	session, err := store.Get(r, "session")
	require.NoError(t, err)
	session.Values["user_id"] = userID
	session.Values["role_id"] = roleID
	session.Values["name"] = name
	require.NoError(t, session.Save(r, w))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestRequireLogin(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-session-key"))

	tests := []struct {
		name         string
		cookie       *http.Cookie
		wantStatus   int
		wantLocation string
		wantNext     bool
	}{
		{
			name:         "без сессии редирект на логин",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name:       "с сессией запрос проходит",
			cookie:     sessionCookie(t, store, 5, models.RoleUser, "Иванов"),
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}

			r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			RequireLogin(store)(next)(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-session-key"))

	tests := []struct {
		name         string
		cookie       *http.Cookie
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "без сессии редирект на логин",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			// Обычный пользователь уходит туда же, 403 не отдается.
			name:         "обычный пользователь уходит на логин",
			cookie:       sessionCookie(t, store, 5, models.RoleUser, "Иванов"),
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name:       "администратор проходит",
			cookie:     sessionCookie(t, store, 1, models.RoleAdmin, "Админ"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}

			r := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			RequireAdmin(store)(next)(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestIdentityReachesContext(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-session-key"))

	var got Identity
	var ok bool
	next := func(w http.ResponseWriter, r *http.Request) {
		got, ok = IdentityFromContext(r.Context())
	}

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(sessionCookie(t, store, 5, models.RoleUser, "Иванов"))
	w := httptest.NewRecorder()

	RequireLogin(store)(next)(w, r)

	require.True(t, ok, "личность должна попасть в контекст запроса")
	assert.Equal(t, uint(5), got.UserID)
	assert.Equal(t, uint(models.RoleUser), got.RoleID)
	assert.Equal(t, "Иванов", got.Name)
}

func TestIdentityFromContextEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(r.Context())
	assert.False(t, ok)
}
