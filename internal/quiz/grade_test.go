package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k/eduPlatform/internal/models"
)

func questionsFixture() []models.Question {
	return []models.Question{
		{
			ID: 1,
			Answers: []models.Answer{
				{ID: 11, IsCorrect: true},
				{ID: 12},
				{ID: 13},
				{ID: 14},
			},
		},
		{
			ID: 2,
			Answers: []models.Answer{
				{ID: 21},
				{ID: 22, IsCorrect: true},
				{ID: 23},
				{ID: 24},
			},
		},
		{
			ID: 3,
			Answers: []models.Answer{
				{ID: 31},
				{ID: 32},
				{ID: 33, IsCorrect: true},
				{ID: 34},
			},
		},
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name     string
		selected map[uint]uint
		want     int
	}{
		{
			name:     "все ответы верные",
			selected: map[uint]uint{1: 11, 2: 22, 3: 33},
			want:     100,
		},
		{
			name:     "все ответы неверные",
			selected: map[uint]uint{1: 12, 2: 21, 3: 34},
			want:     0,
		},
		{
			name:     "пустая попытка дает ноль",
			selected: map[uint]uint{},
			want:     0,
		},
		{
			name:     "вопрос без ответа не попадает в знаменатель",
			selected: map[uint]uint{1: 11, 2: 21},
			want:     50,
		},
		{
			name:     "один верный из двух отвеченных",
			selected: map[uint]uint{1: 11, 3: 31},
			want:     50,
		},
		{
			name:     "чужой id варианта считается неверным ответом",
			selected: map[uint]uint{1: 999, 2: 22},
			want:     50,
		},
		{
			name:     "округление до ближайшего целого",
			selected: map[uint]uint{1: 11, 2: 21, 3: 31},
			want:     33,
		},
		{
			name:     "два из трех округляются вверх",
			selected: map[uint]uint{1: 11, 2: 22, 3: 31},
			want:     67,
		},
		{
			name:     "ответ на несуществующий вопрос игнорируется",
			selected: map[uint]uint{99: 11},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(questionsFixture(), tt.selected)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradeNoQuestions(t *testing.T) {
	assert.Equal(t, 0, Grade(nil, map[uint]uint{1: 11}))
}
