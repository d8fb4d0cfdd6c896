package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k/eduPlatform/internal/storage"
)

func TestBuildExcel(t *testing.T) {
	score := 85
	rows := []storage.ProgressRow{
		{
			FullName:        "Иванов Иван",
			TopicTitle:      "Введение",
			ViewedMaterials: true,
			PassedTest:      true,
			TestScore:       &score,
		},
		{
			FullName:        "Петров Петр",
			TopicTitle:      "Введение",
			ViewedMaterials: false,
			PassedTest:      false,
			TestScore:       nil,
		},
	}

	f, err := BuildExcel(rows)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(SheetName, ref)
		require.NoError(t, err)
		return v
	}

	// Шапка.
	assert.Equal(t, "ФИО", cell("A1"))
	assert.Equal(t, "Курс", cell("B1"))
	assert.Equal(t, "Материалы просмотрены", cell("C1"))
	assert.Equal(t, "Тест пройден", cell("D1"))
	assert.Equal(t, "Результат (%)", cell("E1"))

	// Первая строка данных.
	assert.Equal(t, "Иванов Иван", cell("A2"))
	assert.Equal(t, "Введение", cell("B2"))
	assert.Equal(t, "Да", cell("C2"))
	assert.Equal(t, "Да", cell("D2"))
	assert.Equal(t, "85", cell("E2"))

	// Вторая строка: тест не сдан, результата нет.
	assert.Equal(t, "Нет", cell("C3"))
	assert.Equal(t, "Нет", cell("D3"))
	assert.Equal(t, "", cell("E3"))
}

func TestBuildExcelEmpty(t *testing.T) {
	f, err := BuildExcel(nil)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Equal(t, SheetName, sheets[0])

	v, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ФИО", v)

	v, err = f.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
