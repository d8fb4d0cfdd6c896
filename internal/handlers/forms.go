package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Формы приходят как application/x-www-form-urlencoded (или multipart
// для материалов); отсутствие обязательного поля — это 400 с указанием
// поля, а не необработанный сбой.

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type InviteForm struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"max=255"`
}

type CompleteInviteForm struct {
	Password string `validate:"required,min=6"`
}

type CourseForm struct {
	Name string `validate:"required,max=255"`
}

type TopicForm struct {
	Title string `validate:"required,max=255"`
}

type MaterialForm struct {
	Content string `validate:"required"`
	Body    string
}

type QuestionForm struct {
	Question string    `validate:"required"`
	Answers  [4]string `validate:"dive,required"`
	Correct  int       `validate:"required,min=1,max=4"`
}

type FullNameForm struct {
	UserID   uint   `validate:"required"`
	FullName string `validate:"required,max=255"`
}

// ValidateForm возвращает сообщение с перечнем невалидных полей.
func ValidateForm(form interface{}) (string, bool) {
	err := validate.Struct(form)
	if err == nil {
		return "", true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("поле %s: нарушено правило %q", fe.Field(), fe.Tag()))
		}
		return "Некорректные данные формы: " + strings.Join(parts, "; "), false
	}
	return "Некорректные данные формы", false
}
