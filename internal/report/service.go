package report

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

// A user counts as on the bench on a day when their total allocation,
// tentative holds included, stays below this utilization percentage.
const MaxBenchUtilization = 30

// DefaultBenchWindowDays is the look-ahead window when the caller gives no
// explicit dates.
const DefaultBenchWindowDays = 30

// ErrInvalidWindow rejects an inverted report window before any reads.
var ErrInvalidWindow = eris.New("report end date precedes start date")

// ExcludedBenchStatuses are long-leave statuses that should not show up on
// a bench report even when unallocated.
var ExcludedBenchStatuses = []string{
	"Maternity Break",
	"Adoption Leave",
	"Sabbatical",
	"Paternity Break",
}

// Store is the read surface the report service needs.
type Store interface {
	ActiveUsersForBench(ctx context.Context, excludedStatuses []string) ([]storage.Candidate, error)
	AllAllocationsOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) (map[int64][]storage.Allocation, error)
	UsersLeavingBetween(ctx context.Context, start, end time.Time) ([]storage.Candidate, error)
}

// Service produces the staffing reports exported as CSV.
type Service struct {
	store     Store
	threshold int
	now       func() time.Time
	log       zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		threshold: MaxBenchUtilization,
		now:       time.Now,
		log:       log,
	}
}

// BenchRow is one bench report line: a user plus how many days in the
// window they sit below the bench threshold.
type BenchRow struct {
	Candidate storage.Candidate
	BenchDays int
}

// BenchUsers lists users with at least one bench day in [start, end]. Nil
// dates default to a 30-day look-ahead from today.
func (s *Service) BenchUsers(ctx context.Context, start, end *time.Time) ([]BenchRow, error) {
	from := day(s.now())
	to := from.AddDate(0, 0, DefaultBenchWindowDays)
	if start != nil {
		from = day(*start)
	}
	if end != nil {
		to = day(*end)
	}
	if to.Before(from) {
		return nil, ErrInvalidWindow
	}

	users, err := s.store.ActiveUsersForBench(ctx, ExcludedBenchStatuses)
	if err != nil {
		return nil, eris.Wrap(err, "list bench users")
	}
	if len(users) == 0 {
		return []BenchRow{}, nil
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	allocs, err := s.store.AllAllocationsOverlapping(ctx, ids, from, to)
	if err != nil {
		return nil, eris.Wrap(err, "load bench allocations")
	}

	rows := make([]BenchRow, 0, len(users))
	for _, u := range users {
		days := benchDays(allocs[u.ID], from, to, s.threshold)
		if days > 0 {
			rows = append(rows, BenchRow{Candidate: u, BenchDays: days})
		}
	}
	s.log.Debug().Int("users", len(users)).Int("on_bench", len(rows)).Msg("bench report computed")
	return rows, nil
}

// LeavingUsers lists users whose last working day falls in [start, end].
func (s *Service) LeavingUsers(ctx context.Context, start, end time.Time) ([]storage.Candidate, error) {
	if end.Before(start) {
		return nil, ErrInvalidWindow
	}
	users, err := s.store.UsersLeavingBetween(ctx, day(start), day(end))
	if err != nil {
		return nil, eris.Wrap(err, "list leaving users")
	}
	return users, nil
}

// benchDays counts days in [from, to] where total allocation, tentative
// included, stays below the threshold. Open-ended allocations reach the
// window's end.
func benchDays(allocs []storage.Allocation, from, to time.Time, threshold int) int {
	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		util := 0
		for _, a := range allocs {
			allocEnd := to
			if a.EndDate != nil {
				allocEnd = day(*a.EndDate)
			}
			if !d.Before(day(a.StartDate)) && !d.After(allocEnd) {
				util += a.Utilization
			}
		}
		if util < threshold {
			days++
		}
	}
	return days
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
