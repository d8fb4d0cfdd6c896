package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/k/eduPlatform/internal/storage"
)

// SheetName — имя единственного листа отчета.
const SheetName = "Прогресс пользователей"

// Порядок колонок зафиксирован и совпадает со страницей отчета.
var headers = []string{"ФИО", "Курс", "Материалы просмотрены", "Тест пройден", "Результат (%)"}

// BuildExcel собирает xlsx-файл из агрегированных строк прогресса.
func BuildExcel(rows []storage.ProgressRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		values := []interface{}{
			row.FullName,
			row.TopicTitle,
			yesNo(row.ViewedMaterials),
			yesNo(row.PassedTest),
			scoreOrBlank(row.TestScore),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func yesNo(v bool) string {
	if v {
		return "Да"
	}
	return "Нет"
}

func scoreOrBlank(score *int) interface{} {
	if score == nil {
		return ""
	}
	return *score
}
