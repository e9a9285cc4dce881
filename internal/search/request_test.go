package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

func TestValidateRejectsInvertedWindow(t *testing.T) {
	req := StaffingRequest{
		WindowStart: timePtr(date(2026, time.October, 10)),
		WindowEnd:   timePtr(date(2026, time.October, 1)),
	}
	assert.ErrorIs(t, req.Validate(), ErrInvalidWindow)
}

func TestValidateRejectsBadExperienceRange(t *testing.T) {
	req := StaffingRequest{ExperienceStartYears: intPtr(5), ExperienceEndYears: intPtr(2)}
	assert.ErrorIs(t, req.Validate(), ErrInvalidExperience)

	req = StaffingRequest{ExperienceStartYears: intPtr(-1), ExperienceEndYears: intPtr(2)}
	assert.ErrorIs(t, req.Validate(), ErrInvalidExperience)
}

func TestValidateRejectsOutOfRangeUtilization(t *testing.T) {
	assert.ErrorIs(t, StaffingRequest{Utilization: intPtr(101)}.Validate(), ErrInvalidUtilization)
	assert.ErrorIs(t, StaffingRequest{Utilization: intPtr(-1)}.Validate(), ErrInvalidUtilization)
	assert.NoError(t, StaffingRequest{Utilization: intPtr(0)}.Validate())
	assert.NoError(t, StaffingRequest{Utilization: intPtr(100)}.Validate())
}

func TestValidateAcceptsDegenerateRequest(t *testing.T) {
	assert.NoError(t, StaffingRequest{}.Validate())
}

func TestValidateAcceptsSingleDayWindow(t *testing.T) {
	d := date(2026, time.October, 1)
	req := StaffingRequest{WindowStart: &d, WindowEnd: &d}
	assert.NoError(t, req.Validate())
}

func TestHasWindowRequiresAllThreeInputs(t *testing.T) {
	start := date(2026, time.October, 1)
	end := date(2026, time.October, 30)
	util := 50

	full := StaffingRequest{WindowStart: &start, WindowEnd: &end, Utilization: &util}
	assert.True(t, full.HasWindow())

	assert.False(t, StaffingRequest{WindowStart: &start, WindowEnd: &end}.HasWindow())
	assert.False(t, StaffingRequest{WindowStart: &start, Utilization: &util}.HasWindow())
	assert.False(t, StaffingRequest{}.HasWindow())
}

func TestRequestFromPositionOpenEnded(t *testing.T) {
	pos := storage.Position{
		ID:                   42,
		RoleID:               7,
		StartDate:            date(2026, time.October, 1),
		Utilization:          80,
		ExperienceRangeStart: 2,
		ExperienceRangeEnd:   5,
		SkillIDs:             []int64{10, 11},
	}

	req := RequestFromPosition(pos)
	require.NotNil(t, req.RoleID)
	assert.Equal(t, int64(7), *req.RoleID)
	assert.Equal(t, []int64{10, 11}, req.SkillIDs)
	require.True(t, req.HasWindow())
	assert.Equal(t, date(2026, time.October, 1), *req.WindowStart)
	// Open-ended positions score over a 90-day inclusive window.
	assert.Equal(t, date(2026, time.December, 29), *req.WindowEnd)
	assert.Equal(t, 90, daysInclusive(*req.WindowStart, *req.WindowEnd))
	assert.Equal(t, 80, *req.Utilization)
}

func TestRequestFromPositionBoundedWindow(t *testing.T) {
	end := date(2026, time.November, 15)
	pos := storage.Position{
		RoleID:    7,
		StartDate: date(2026, time.October, 1),
		EndDate:   &end,
	}

	req := RequestFromPosition(pos)
	assert.Equal(t, end, *req.WindowEnd)
}
