package api

import (
	"context"
	"strconv"
	"time"

	"github.com/CoffeeBeansLabs/allocate/internal/search"
	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

// talentView is one talent in the search response: the score plus the
// context a staffing manager needs to act on it.
type talentView struct {
	ID               int64                       `json:"id"`
	Name             string                      `json:"name"`
	MatchPercent     string                      `json:"match_percent"`
	Role             *string                     `json:"role"`
	ExperienceMonths int                         `json:"experience_months"`
	Skills           []storage.SkillRating       `json:"skills"`
	KTPeriodDetail   []ktDetail                  `json:"kt_period_detail"`
	Requests         []storage.AllocationRequest `json:"requests"`
	Allocation       []storage.Allocation        `json:"allocation"`
	Leaves           []storage.LeavePlan         `json:"leaves"`
	WorkLocation     *string                     `json:"work_location"`
	LastWorkingDay   *string                     `json:"last_working_day"`
}

// ktDetail is the knowledge-transfer window preceding one allocation: the
// kt_period days running up to the allocation's start.
type ktDetail struct {
	OnKTPeriod bool   `json:"is_talent_on_kt_period"`
	StartDate  string `json:"kt_period_start_date"`
	EndDate    string `json:"kt_period_end_date"`
}

type talentSearchResponse struct {
	Criteria interface{}  `json:"criteria"`
	Talents  []talentView `json:"talents"`
	Count    int          `json:"count"`
}

// buildTalentPage enriches one page of scored talents with proficiency,
// allocation, leave and pending-request detail: four bulk queries per page,
// never one per talent.
func (a *API) buildTalentPage(ctx context.Context, page []search.ScoredTalent,
	skillIDs []int64, respStart, respEnd *time.Time) ([]talentView, error) {
	if len(page) == 0 {
		return []talentView{}, nil
	}

	ids := make([]int64, len(page))
	for i, t := range page {
		ids[i] = t.Candidate.ID
	}

	profs, err := a.db.ProficienciesForUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	allocs, err := a.db.AllocationsForUsers(ctx, ids, respStart, respEnd)
	if err != nil {
		return nil, err
	}
	leaves, err := a.db.ApprovedLeavesForUsers(ctx, ids, respStart, respEnd)
	if err != nil {
		return nil, err
	}
	requests, err := a.db.PendingAllocationRequestsForUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	views := make([]talentView, 0, len(page))
	for _, t := range page {
		c := t.Candidate
		view := talentView{
			ID:               c.ID,
			Name:             c.FullName(),
			MatchPercent:     strconv.Itoa(t.Score) + "%",
			Role:             c.RoleName,
			ExperienceMonths: experienceMonths(c, today),
			Skills:           orderSkills(profs[c.ID], skillIDs),
			KTPeriodDetail:   ktDetails(allocs[c.ID], today),
			Requests:         orEmptyRequests(requests[c.ID]),
			Allocation:       orEmptyAllocations(allocs[c.ID]),
			Leaves:           orEmptyLeaves(leaves[c.ID]),
			WorkLocation:     c.WorkLocation,
		}
		if c.LastWorkingDay != nil {
			lwd := c.LastWorkingDay.Format(dateLayout)
			view.LastWorkingDay = &lwd
		}
		views = append(views, view)
	}
	return views, nil
}

// orderSkills lists the requested skills first, then the talent's remaining
// skills, each group already rating-descending from the query.
func orderSkills(ratings []storage.SkillRating, skillIDs []int64) []storage.SkillRating {
	requested := make(map[int64]bool, len(skillIDs))
	for _, id := range skillIDs {
		requested[id] = true
	}

	ordered := make([]storage.SkillRating, 0, len(ratings))
	for _, r := range ratings {
		if requested[r.SkillID] {
			ordered = append(ordered, r)
		}
	}
	for _, r := range ratings {
		if !requested[r.SkillID] {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// ktDetails derives the knowledge-transfer window for each allocation:
// [start - kt_period days, start], inclusive on both ends. The talent is on
// KT when today falls inside that window.
func ktDetails(allocs []storage.Allocation, today time.Time) []ktDetail {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	details := make([]ktDetail, 0, len(allocs))
	for _, a := range allocs {
		ktEnd := time.Date(a.StartDate.Year(), a.StartDate.Month(), a.StartDate.Day(), 0, 0, 0, 0, time.UTC)
		ktStart := ktEnd.AddDate(0, 0, -a.KTPeriod)
		details = append(details, ktDetail{
			OnKTPeriod: !day.Before(ktStart) && !day.After(ktEnd),
			StartDate:  ktStart.Format(dateLayout),
			EndDate:    ktEnd.Format(dateLayout),
		})
	}
	return details
}

// experienceMonths is the talent's career length in months, minus break
// months, cut at the last working day once it has passed.
func experienceMonths(c storage.Candidate, today time.Time) int {
	if c.CareerStartDate == nil {
		return 0
	}
	until := today
	if c.LastWorkingDay != nil && today.After(*c.LastWorkingDay) {
		until = *c.LastWorkingDay
	}
	return monthsBetween(*c.CareerStartDate, until) - c.CareerBreakMonths
}

func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}

func orEmptyAllocations(a []storage.Allocation) []storage.Allocation {
	if a == nil {
		return []storage.Allocation{}
	}
	return a
}

func orEmptyLeaves(l []storage.LeavePlan) []storage.LeavePlan {
	if l == nil {
		return []storage.LeavePlan{}
	}
	return l
}

func orEmptyRequests(r []storage.AllocationRequest) []storage.AllocationRequest {
	if r == nil {
		return []storage.AllocationRequest{}
	}
	return r
}
