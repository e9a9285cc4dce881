package api

import (
	"errors"
	"net/http"

	"github.com/CoffeeBeansLabs/allocate/internal/report"
)

// BenchReportHandler exports the bench report as CSV.
// @Summary Bench report
// @Description Users with at least one under-allocated day in the window, as CSV
// @Tags reports
// @Produce text/csv
// @Param start_date query string false "Window start (YYYY-MM-DD, default today)"
// @Param end_date query string false "Window end (YYYY-MM-DD, default today+30d)"
// @Success 200 {string} string "CSV body"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /reports/bench [get]
func (a *API) BenchReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	start, err := parseOptionalDate(r.URL.Query().Get("start_date"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseOptionalDate(r.URL.Query().Get("end_date"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := a.reports.BenchUsers(r.Context(), start, end)
	if errors.Is(err, report.ErrInvalidWindow) {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		a.log.Error().Err(err).Msg("bench report failed")
		a.writeError(w, http.StatusInternalServerError, "report error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bench_report.csv"`)
	if err := report.WriteBenchCSV(w, rows); err != nil {
		a.log.Error().Err(err).Msg("writing bench csv")
	}
}

// LeavingReportHandler exports users leaving within a window as CSV.
// @Summary Last-working-day report
// @Description Users whose last working day falls inside the window, as CSV
// @Tags reports
// @Produce text/csv
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Success 200 {string} string "CSV body"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /reports/leaving [get]
func (a *API) LeavingReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	start, err := parseOptionalDate(r.URL.Query().Get("start_date"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseOptionalDate(r.URL.Query().Get("end_date"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if start == nil || end == nil {
		a.writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	users, err := a.reports.LeavingUsers(r.Context(), *start, *end)
	if errors.Is(err, report.ErrInvalidWindow) {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		a.log.Error().Err(err).Msg("leaving report failed")
		a.writeError(w, http.StatusInternalServerError, "report error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leaving_report.csv"`)
	if err := report.WriteLeavingCSV(w, users); err != nil {
		a.log.Error().Err(err).Msg("writing leaving csv")
	}
}
