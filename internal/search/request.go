package search

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

// DefaultWindowDays is added to a position's start date when the position is
// open-ended, giving an inclusive 90-day scoring window.
const DefaultWindowDays = 89

// Validation failures surfaced before any scoring work starts. Ranges are
// rejected, never clamped.
var (
	ErrInvalidWindow      = eris.New("window end date precedes start date")
	ErrInvalidExperience  = eris.New("invalid experience range")
	ErrInvalidUtilization = eris.New("utilization must be between 0 and 100")
)

// StaffingRequest is one talent search: hard filters for the pool builder
// plus the scoring parameters. Optional fields are pointers; a nil field
// drops the corresponding sub-score and its weight from the composite.
type StaffingRequest struct {
	RoleID             *int64
	SkillIDs           []int64
	Search             string
	Locations          []string
	RelatedSuggestions bool
	ProjectIDs         []int64

	WindowStart *time.Time
	WindowEnd   *time.Time
	Utilization *int

	ExperienceStartYears *int
	ExperienceEndYears   *int
}

// Validate rejects malformed ranges up front. A degenerate request (no
// skills, no window, no experience bounds) is valid and simply scores 0.
func (r StaffingRequest) Validate() error {
	if r.WindowStart != nil && r.WindowEnd != nil && r.WindowEnd.Before(*r.WindowStart) {
		return ErrInvalidWindow
	}
	if r.ExperienceStartYears != nil && r.ExperienceEndYears != nil {
		if *r.ExperienceStartYears < 0 || *r.ExperienceEndYears < *r.ExperienceStartYears {
			return ErrInvalidExperience
		}
	}
	if r.Utilization != nil && (*r.Utilization < 0 || *r.Utilization > 100) {
		return ErrInvalidUtilization
	}
	return nil
}

// HasWindow reports whether availability can be scored: the caller supplied
// both window dates and a utilization threshold. A partial window is not an
// error; availability is simply excluded from the composite.
func (r StaffingRequest) HasWindow() bool {
	return r.WindowStart != nil && r.WindowEnd != nil && r.Utilization != nil
}

// HasExperienceRange reports whether both experience bounds were supplied.
func (r StaffingRequest) HasExperienceRange() bool {
	return r.ExperienceStartYears != nil && r.ExperienceEndYears != nil
}

// RequestFromPosition derives a search request from a stored project
// position. An open-ended position gets the default 90-day window.
func RequestFromPosition(p storage.Position) StaffingRequest {
	start := p.StartDate
	end := start.AddDate(0, 0, DefaultWindowDays)
	if p.EndDate != nil {
		end = *p.EndDate
	}
	roleID := p.RoleID
	util := p.Utilization
	expStart := p.ExperienceRangeStart
	expEnd := p.ExperienceRangeEnd
	return StaffingRequest{
		RoleID:               &roleID,
		SkillIDs:             p.SkillIDs,
		WindowStart:          &start,
		WindowEnd:            &end,
		Utilization:          &util,
		ExperienceStartYears: &expStart,
		ExperienceEndYears:   &expEnd,
	}
}
