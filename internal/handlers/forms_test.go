package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name    string
		form    interface{}
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "валидная форма логина",
			form:   LoginForm{Email: "user@example.com", Password: "secret"},
			wantOK: true,
		},
		{
			name:    "email не похож на email",
			form:    LoginForm{Email: "not-an-email", Password: "secret"},
			wantMsg: "Email",
		},
		{
			name:    "пустой пароль",
			form:    LoginForm{Email: "user@example.com"},
			wantMsg: "Password",
		},
		{
			name:    "короткий пароль при активации",
			form:    CompleteInviteForm{Password: "12345"},
			wantMsg: "Password",
		},
		{
			name:   "минимально допустимый пароль",
			form:   CompleteInviteForm{Password: "123456"},
			wantOK: true,
		},
		{
			name:    "курс без названия",
			form:    CourseForm{},
			wantMsg: "Name",
		},
		{
			name: "вопрос с пустым вариантом ответа",
			form: QuestionForm{
				Question: "Вопрос?",
				Answers:  [4]string{"а", "б", "", "г"},
				Correct:  1,
			},
			wantMsg: "Answers",
		},
		{
			name: "номер правильного варианта вне диапазона",
			form: QuestionForm{
				Question: "Вопрос?",
				Answers:  [4]string{"а", "б", "в", "г"},
				Correct:  5,
			},
			wantMsg: "Correct",
		},
		{
			name: "корректный вопрос",
			form: QuestionForm{
				Question: "Вопрос?",
				Answers:  [4]string{"а", "б", "в", "г"},
				Correct:  4,
			},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := ValidateForm(tt.form)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Empty(t, msg)
			} else {
				assert.Contains(t, msg, tt.wantMsg)
			}
		})
	}
}
