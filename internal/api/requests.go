package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/CoffeeBeansLabs/allocate/internal/search"
)

const dateLayout = "2006-01-02"

// talentSearchRequest is the quick-search payload. Dates arrive as
// YYYY-MM-DD strings; optional numerics are pointers so absence stays
// distinguishable from zero.
type talentSearchRequest struct {
	RoleID               *int64   `json:"role"`
	SkillIDs             []int64  `json:"skills"`
	ProjectIDs           []int64  `json:"projects"`
	Search               string   `json:"search"`
	Locations            []string `json:"locations"`
	RelatedSuggestions   bool     `json:"related_suggestions"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	Utilization          *int     `json:"utilization"`
	ExperienceRangeStart *int     `json:"experience_range_start"`
	ExperienceRangeEnd   *int     `json:"experience_range_end"`
	ResponseDateStart    string   `json:"response_date_start"`
	ResponseDateEnd      string   `json:"response_date_end"`
	Page                 int      `json:"page"`
	Size                 int      `json:"size"`
}

func (r talentSearchRequest) toStaffingRequest() (search.StaffingRequest, error) {
	req := search.StaffingRequest{
		RoleID:               r.RoleID,
		SkillIDs:             r.SkillIDs,
		Search:               r.Search,
		Locations:            r.Locations,
		RelatedSuggestions:   r.RelatedSuggestions,
		ProjectIDs:           r.ProjectIDs,
		Utilization:          r.Utilization,
		ExperienceStartYears: r.ExperienceRangeStart,
		ExperienceEndYears:   r.ExperienceRangeEnd,
	}
	var err error
	if req.WindowStart, err = parseOptionalDate(r.StartDate); err != nil {
		return req, err
	}
	if req.WindowEnd, err = parseOptionalDate(r.EndDate); err != nil {
		return req, err
	}
	return req, nil
}

func (r talentSearchRequest) responseWindow() (*time.Time, *time.Time, error) {
	start, err := parseOptionalDate(r.ResponseDateStart)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseOptionalDate(r.ResponseDateEnd)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// positionSearchParams are the query parameters of the position-driven
// search endpoint.
type positionSearchParams struct {
	PositionID         int64
	Search             string
	RelatedSuggestions bool
	Locations          []string
	ResponseDateStart  *time.Time
	ResponseDateEnd    *time.Time
	Page               int
	Size               int
}

func parsePositionSearchParams(values url.Values) (positionSearchParams, error) {
	p := positionSearchParams{
		Search:    values.Get("search"),
		Locations: values["locations"],
		Page:      queryInt(values, "page", defaultPageNumber),
		Size:      queryInt(values, "size", defaultPageSize),
	}

	rawPosition := values.Get("position")
	if rawPosition == "" {
		return p, eris.New("position is required")
	}
	id, err := strconv.ParseInt(rawPosition, 10, 64)
	if err != nil {
		return p, eris.Wrap(err, "invalid position id")
	}
	p.PositionID = id

	p.RelatedSuggestions, _ = strconv.ParseBool(values.Get("related_suggestions"))

	if p.ResponseDateStart, err = parseOptionalDate(values.Get("response_date_start")); err != nil {
		return p, err
	}
	if p.ResponseDateEnd, err = parseOptionalDate(values.Get("response_date_end")); err != nil {
		return p, err
	}
	return p, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}

func queryInt(values url.Values, key string, fallback int) int {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
