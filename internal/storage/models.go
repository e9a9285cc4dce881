package storage

import "time"

// Leave approval statuses as stored in the leave_plans table. Anything other
// than Cancelled/Rejected counts against a candidate's availability.
const (
	LeaveApproved  = "Approved"
	LeavePending   = "Pending"
	LeaveCancelled = "Cancelled"
	LeaveRejected  = "Rejected"
)

// Candidate is an active employee row as read for talent search.
type Candidate struct {
	ID                int64      `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	RoleID            *int64     `json:"role_id,omitempty"`
	RoleName          *string    `json:"role,omitempty"`
	WorkLocation      *string    `json:"work_location,omitempty"`
	CareerStartDate   *time.Time `json:"career_start_date,omitempty"`
	CareerBreakMonths int        `json:"career_break_months"`
	LastWorkingDay    *time.Time `json:"last_working_day,omitempty"`
}

// FullName returns "first last", the string matched by free-text search.
func (c Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}

// SkillRating is one proficiency_mapping row. Rating 0 means the skill is
// recorded but no longer counts toward scoring.
type SkillRating struct {
	UserID    int64  `json:"-"`
	SkillID   int64  `json:"skill_id"`
	SkillName string `json:"skill"`
	Rating    int    `json:"rating"`
}

// Allocation is a time-bounded claim on a candidate's capacity. A nil
// EndDate means the allocation is open-ended. Tentative allocations are
// soft holds and never count against availability.
type Allocation struct {
	UserID      int64      `json:"-"`
	PositionID  int64      `json:"position_id"`
	ProjectName string     `json:"project_name,omitempty"`
	Utilization int        `json:"utilization"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Tentative   bool       `json:"tentative"`
	KTPeriod    int        `json:"kt_period"`
}

// AllocationRequest is a pending project_allocation_request row: a
// proposed claim on a candidate's capacity awaiting approval.
type AllocationRequest struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	ProjectName string     `json:"project_name"`
	Utilization int        `json:"utilization"`
	KTPeriod    int        `json:"kt_period"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// LeavePlan is a leave_plans row.
type LeavePlan struct {
	UserID         int64     `json:"-"`
	FromDate       time.Time `json:"from_date"`
	ToDate         time.Time `json:"to_date"`
	ApprovalStatus string    `json:"-"`
}

// Snapshot is the immutable bulk read the scorer works over: proficiency,
// allocation and leave rows for one candidate pool, keyed by candidate id.
type Snapshot struct {
	Ratings     map[int64][]SkillRating
	Allocations map[int64][]Allocation
	Leaves      map[int64][]LeavePlan
}

// CandidateFilter carries the hard constraints the pool builder applies.
type CandidateFilter struct {
	RoleID *int64
	// ExcludeRole inverts the role filter: keep candidates outside the
	// given role to surface alternative-role matches.
	ExcludeRole bool
	SkillIDs    []int64
	Search      string
	Locations   []string
	ProjectIDs  []int64
}

// Position is a stored project position a search request can be derived from.
type Position struct {
	ID                   int64      `json:"id"`
	RoleID               int64      `json:"role_id"`
	RoleName             string     `json:"role"`
	ProjectID            int64      `json:"project_id"`
	ProjectName          string     `json:"project_name"`
	SkillIDs             []int64    `json:"skills"`
	ExperienceRangeStart int        `json:"experience_range_start"`
	ExperienceRangeEnd   int        `json:"experience_range_end"`
	Utilization          int        `json:"utilization"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              *time.Time `json:"end_date,omitempty"`
}

// NamedRef is an (id, name) pair returned by universal search lookups.
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
