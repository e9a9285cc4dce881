package search

import (
	"time"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

// day strips the time-of-day so date arithmetic is exact across zones.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysInclusive counts days in [start, end], both ends included.
func daysInclusive(start, end time.Time) int {
	return int(day(end).Sub(day(start)).Hours()/24) + 1
}

// AvailabilityScore reconstructs a candidate's day-by-day timeline over
// [start, end] and returns the fraction of days the candidate is available
// as a float in [0, 1]. A day counts only when all three hold:
//
//   - firm (non-tentative) allocations leave at least `utilization` percent
//     of capacity free on that day; an open-ended allocation covers through
//     the window's end,
//   - no non-cancelled, non-rejected leave plan covers the day,
//   - the day is strictly before the candidate's last working day, if set.
//
// The original system expressed this as a generate_series window query in
// the database; the same per-day predicate is materialized here in memory
// because the threshold and window vary per request.
func AvailabilityScore(allocs []storage.Allocation, leaves []storage.LeavePlan,
	lastWorkingDay *time.Time, start, end time.Time, utilization int) float64 {
	start, end = day(start), day(end)
	total := daysInclusive(start, end)
	if total <= 0 {
		return 0
	}

	available := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if availableOn(d, end, allocs, leaves, lastWorkingDay, utilization) {
			available++
		}
	}
	return float64(available) / float64(total)
}

func availableOn(d, windowEnd time.Time, allocs []storage.Allocation,
	leaves []storage.LeavePlan, lastWorkingDay *time.Time, utilization int) bool {
	if lastWorkingDay != nil && !d.Before(day(*lastWorkingDay)) {
		return false
	}

	util := 0
	for _, a := range allocs {
		if a.Tentative {
			continue
		}
		allocEnd := windowEnd
		if a.EndDate != nil {
			allocEnd = day(*a.EndDate)
		}
		if !d.Before(day(a.StartDate)) && !d.After(allocEnd) {
			util += a.Utilization
		}
	}
	if 100-util < utilization {
		return false
	}

	for _, l := range leaves {
		if l.ApprovalStatus == storage.LeaveCancelled || l.ApprovalStatus == storage.LeaveRejected {
			continue
		}
		if !d.Before(day(l.FromDate)) && !d.After(day(l.ToDate)) {
			return false
		}
	}
	return true
}
