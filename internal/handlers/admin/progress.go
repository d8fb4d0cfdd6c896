package admin

import (
	"log"
	"net/http"

	"github.com/k/eduPlatform/internal/handlers"
	"github.com/k/eduPlatform/internal/report"
	"github.com/k/eduPlatform/internal/storage"
)

func (s *Service) HandleProgress(w http.ResponseWriter, r *http.Request) {
	rows, err := storage.AggregateProgress(s.DB.WithContext(r.Context()))
	if err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, "Прогресс пользователей")
	data.ProgressRows = rows
	s.Render(w, "admin_progress.html", data)
}

func (s *Service) HandleProgressChart(w http.ResponseWriter, r *http.Request) {
	counts, err := storage.CountViewsByTopic(s.DB.WithContext(r.Context()))
	if err != nil {
		handlers.DBError(w, err)
		return
	}

	data := s.pageData(r, "Диаграмма просмотров")
	data.ChartData = counts
	s.Render(w, "admin_progress_chart.html", data)
}

// HandleProgressExport — выгрузка отчета в xlsx. Колонки и их порядок
// совпадают со страницей отчета.
func (s *Service) HandleProgressExport(w http.ResponseWriter, r *http.Request) {
	rows, err := storage.AggregateProgress(s.DB.WithContext(r.Context()))
	if err != nil {
		handlers.DBError(w, err)
		return
	}

	f, err := report.BuildExcel(rows)
	if err != nil {
		log.Printf("Ошибка формирования отчета: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="progress_report.xlsx"`)
	if err := f.Write(w); err != nil {
		// Заголовки уже ушли клиенту, остается только залогировать.
		log.Printf("Ошибка записи отчета: %v", err)
	}
}
