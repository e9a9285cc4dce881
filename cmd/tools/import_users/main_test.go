package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCols() map[string]int {
	return map[string]int{
		"employee_id": 0, "email": 1, "first_name": 2, "last_name": 3,
		"role": 4, "work_location": 5, "career_start_date": 6,
		"career_break_months": 7, "last_working_day": 8, "skills": 9,
	}
}

func TestParseRecord(t *testing.T) {
	record := []string{
		"E1", "jane@example.com", "Jane", "Doe",
		"Engineer", "Pune", "2020-03-10", "2", "", "Go:4;SQL:3",
	}

	u, ratings, err := parseRecord(testCols(), record)
	require.NoError(t, err)
	assert.Equal(t, "E1", u.EmployeeID)
	assert.Equal(t, "jane@example.com", u.Email)
	require.NotNil(t, u.RoleName)
	assert.Equal(t, "Engineer", *u.RoleName)
	require.NotNil(t, u.CareerStartDate)
	assert.Equal(t, time.Date(2020, time.March, 10, 0, 0, 0, 0, time.UTC), *u.CareerStartDate)
	assert.Equal(t, 2, u.CareerBreakMonths)
	assert.Nil(t, u.LastWorkingDay)
	assert.Equal(t, map[string]int{"Go": 4, "SQL": 3}, ratings)
}

func TestParseRecordMissingKeys(t *testing.T) {
	record := []string{"", "jane@example.com", "Jane", "Doe", "", "", "", "", "", ""}
	_, _, err := parseRecord(testCols(), record)
	assert.ErrorIs(t, err, errEmptyKey)
}

func TestParseRecordBadDate(t *testing.T) {
	record := []string{"E1", "jane@example.com", "Jane", "Doe", "", "", "10/03/2020", "", "", ""}
	_, _, err := parseRecord(testCols(), record)
	assert.Error(t, err)
}

func TestParseSkillsCell(t *testing.T) {
	ratings, err := parseSkillsCell("Go:4; SQL:3 ;")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 4, "SQL": 3}, ratings)

	ratings, err = parseSkillsCell("")
	require.NoError(t, err)
	assert.Nil(t, ratings)

	_, err = parseSkillsCell("Go")
	assert.Error(t, err)

	_, err = parseSkillsCell("Go:9")
	assert.Error(t, err)
}
