package storage

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkViewed(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
	}{
		{
			name: "существующая строка обновляется",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "course_progress"`).
					WithArgs(uint(5), uint(7), 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "topic_id", "viewed_materials", "passed_test"}).
						AddRow(3, 5, 7, false, true))
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE "course_progress"`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "новая строка создается с passed_test = true",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "course_progress"`).
					WithArgs(uint(5), uint(7), 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO "course_progress"`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectCommit()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			tt.setupMock(mock)

			err := MarkViewed(db, 5, 7)

			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSaveTestResult(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		setupMock func(sqlmock.Sqlmock)
	}{
		{
			name:  "повторная сдача перезаписывает балл",
			score: 40,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "course_progress"`).
					WithArgs(uint(5), uint(7), 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "topic_id", "passed_test", "test_score"}).
						AddRow(3, 5, 7, true, 90))
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE "course_progress"`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:  "первая сдача создает строку",
			score: 75,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "course_progress"`).
					WithArgs(uint(5), uint(7), 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO "course_progress"`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectCommit()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			tt.setupMock(mock)

			err := SaveTestResult(db, 5, 7, tt.score)

			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAggregateProgress(t *testing.T) {
	db, mock := newTestDB(t)

	score := 85
	mock.ExpectQuery(`FROM "course_progress" JOIN users ON users.id = course_progress.user_id JOIN topics ON topics.id = course_progress.topic_id`).
		WillReturnRows(sqlmock.NewRows([]string{"full_name", "topic_title", "viewed_materials", "passed_test", "test_score"}).
			AddRow("Иванов Иван", "Введение", true, true, score).
			AddRow("Петров Петр", "Введение", false, false, nil))

	rows, err := AggregateProgress(db)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Иванов Иван", rows[0].FullName)
	assert.Equal(t, "Введение", rows[0].TopicTitle)
	assert.True(t, rows[0].ViewedMaterials)
	require.NotNil(t, rows[0].TestScore)
	assert.Equal(t, 85, *rows[0].TestScore)
	assert.Nil(t, rows[1].TestScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountViewsByTopic(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery(`FROM "topics" LEFT JOIN course_progress cp`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"title", "viewed_count"}).
			AddRow("Введение", 3).
			AddRow("Пустая тема", 0))

	counts, err := CountViewsByTopic(db)

	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, int64(3), counts[0].ViewedCount)
	assert.Equal(t, "Пустая тема", counts[1].Title)
	assert.Equal(t, int64(0), counts[1].ViewedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
