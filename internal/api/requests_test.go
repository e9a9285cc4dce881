package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToStaffingRequest(t *testing.T) {
	roleID := int64(7)
	util := 80
	body := talentSearchRequest{
		RoleID:             &roleID,
		SkillIDs:           []int64{10, 11},
		Search:             "jane",
		Locations:          []string{"Pune"},
		RelatedSuggestions: true,
		StartDate:          "2026-10-01",
		EndDate:            "2026-10-30",
		Utilization:        &util,
	}

	req, err := body.toStaffingRequest()
	require.NoError(t, err)
	assert.Equal(t, &roleID, req.RoleID)
	assert.Equal(t, []int64{10, 11}, req.SkillIDs)
	assert.True(t, req.RelatedSuggestions)
	require.NotNil(t, req.WindowStart)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), *req.WindowStart)
	require.NotNil(t, req.WindowEnd)
	assert.Equal(t, time.Date(2026, time.October, 30, 0, 0, 0, 0, time.UTC), *req.WindowEnd)
	assert.True(t, req.HasWindow())
}

func TestToStaffingRequestBlankDatesStayNil(t *testing.T) {
	req, err := talentSearchRequest{Search: "jane"}.toStaffingRequest()
	require.NoError(t, err)
	assert.Nil(t, req.WindowStart)
	assert.Nil(t, req.WindowEnd)
	assert.False(t, req.HasWindow())
}

func TestToStaffingRequestRejectsMalformedDate(t *testing.T) {
	_, err := talentSearchRequest{StartDate: "01/10/2026"}.toStaffingRequest()
	assert.Error(t, err)

	_, err = talentSearchRequest{EndDate: "2026-13-40"}.toStaffingRequest()
	assert.Error(t, err)
}

func TestParsePositionSearchParams(t *testing.T) {
	values := url.Values{
		"position":            {"42"},
		"search":              {"jane"},
		"related_suggestions": {"true"},
		"locations":           {"Pune", "Bangalore"},
		"response_date_start": {"2026-10-01"},
		"page":                {"2"},
		"size":                {"25"},
	}

	p, err := parsePositionSearchParams(values)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.PositionID)
	assert.Equal(t, "jane", p.Search)
	assert.True(t, p.RelatedSuggestions)
	assert.Equal(t, []string{"Pune", "Bangalore"}, p.Locations)
	require.NotNil(t, p.ResponseDateStart)
	assert.Nil(t, p.ResponseDateEnd)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 25, p.Size)
}

func TestParsePositionSearchParamsDefaults(t *testing.T) {
	p, err := parsePositionSearchParams(url.Values{"position": {"42"}})
	require.NoError(t, err)
	assert.Equal(t, defaultPageNumber, p.Page)
	assert.Equal(t, defaultPageSize, p.Size)
	assert.False(t, p.RelatedSuggestions)
	assert.Empty(t, p.Locations)
}

func TestParsePositionSearchParamsRequiresPosition(t *testing.T) {
	_, err := parsePositionSearchParams(url.Values{})
	assert.Error(t, err)

	_, err = parsePositionSearchParams(url.Values{"position": {"abc"}})
	assert.Error(t, err)
}

func TestQueryIntFallsBackOnGarbage(t *testing.T) {
	values := url.Values{"page": {"not-a-number"}}
	assert.Equal(t, 1, queryInt(values, "page", 1))
	assert.Equal(t, 10, queryInt(values, "size", 10))
}
