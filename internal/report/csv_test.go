package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

func strPtr(s string) *string { return &s }

func TestWriteBenchCSV(t *testing.T) {
	rows := []BenchRow{
		{
			Candidate: storage.Candidate{
				EmployeeID:   "E1",
				FirstName:    "Jane",
				LastName:     "Doe",
				RoleName:     strPtr("Engineer"),
				WorkLocation: strPtr("Pune"),
			},
			BenchDays: 12,
		},
		{
			Candidate: storage.Candidate{EmployeeID: "E2", FirstName: "Sam", LastName: "Roy"},
			BenchDays: 3,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBenchCSV(&buf, rows))

	want := "employee_id,name,role,work_location,bench_days\n" +
		"E1,Jane Doe,Engineer,Pune,12\n" +
		"E2,Sam Roy,,,3\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBenchCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBenchCSV(&buf, nil))
	assert.Equal(t, "employee_id,name,role,work_location,bench_days\n", buf.String())
}

func TestWriteLeavingCSV(t *testing.T) {
	lwd := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	users := []storage.Candidate{
		{
			EmployeeID:     "E1",
			FirstName:      "Jane",
			LastName:       "Doe",
			RoleName:       strPtr("Engineer"),
			WorkLocation:   strPtr("Pune"),
			LastWorkingDay: &lwd,
		},
		{EmployeeID: "E2", FirstName: "Sam", LastName: "Roy"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLeavingCSV(&buf, users))

	want := "employee_id,name,role,work_location,last_working_day\n" +
		"E1,Jane Doe,Engineer,Pune,2026-10-15\n" +
		"E2,Sam Roy,,,\n"
	assert.Equal(t, want, buf.String())
}
