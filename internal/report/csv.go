package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

const dateLayout = "2006-01-02"

// WriteBenchCSV renders the bench report.
func WriteBenchCSV(w io.Writer, rows []BenchRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"employee_id", "name", "role", "work_location", "bench_days"}); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, row := range rows {
		record := []string{
			row.Candidate.EmployeeID,
			row.Candidate.FullName(),
			deref(row.Candidate.RoleName),
			deref(row.Candidate.WorkLocation),
			strconv.Itoa(row.BenchDays),
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}

// WriteLeavingCSV renders the last-working-day report.
func WriteLeavingCSV(w io.Writer, users []storage.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"employee_id", "name", "role", "work_location", "last_working_day"}); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, u := range users {
		lwd := ""
		if u.LastWorkingDay != nil {
			lwd = u.LastWorkingDay.Format(dateLayout)
		}
		record := []string{
			u.EmployeeID,
			u.FullName(),
			deref(u.RoleName),
			deref(u.WorkLocation),
			lwd,
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
