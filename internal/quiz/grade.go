package quiz

import (
	"math"

	"github.com/k/eduPlatform/internal/models"
)

// Grade считает процент правильных ответов за попытку.
//
// selected — выбранный id варианта ответа по id вопроса. Вопрос без
// выбранного ответа пропускается целиком и не попадает в знаменатель.
// Выбранный id, не принадлежащий вариантам вопроса, засчитывается как
// неверный ответ (в знаменатель попадает, в числитель нет).
// Пустая попытка дает 0, а не ошибку.
func Grade(questions []models.Question, selected map[uint]uint) int {
	score := 0
	total := 0

	for _, q := range questions {
		answerID, ok := selected[q.ID]
		if !ok {
			continue
		}
		total++

		for _, a := range q.Answers {
			if a.ID == answerID && a.IsCorrect {
				score++
				break
			}
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
