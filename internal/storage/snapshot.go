package storage

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// LoadSnapshot bulk-reads everything the scorer needs for one candidate
// pool: a constant number of queries regardless of pool size. The
// allocation and leave reads only make sense against a date window and are
// skipped when none is supplied.
func (db *DB) LoadSnapshot(ctx context.Context, candidateIDs []int64, skillIDs []int64,
	windowStart, windowEnd *time.Time) (*Snapshot, error) {
	snap := &Snapshot{
		Ratings:     make(map[int64][]SkillRating),
		Allocations: make(map[int64][]Allocation),
		Leaves:      make(map[int64][]LeavePlan),
	}
	if len(candidateIDs) == 0 {
		return snap, nil
	}

	var (
		ratings []SkillRating
		allocs  []Allocation
		leaves  []LeavePlan
	)

	g, gctx := errgroup.WithContext(ctx)
	if len(skillIDs) > 0 {
		g.Go(func() error {
			var err error
			ratings, err = db.ratingsFor(gctx, candidateIDs, skillIDs)
			return err
		})
	}
	if windowStart != nil && windowEnd != nil {
		start, end := *windowStart, *windowEnd
		g.Go(func() error {
			var err error
			allocs, err = db.firmAllocationsOverlapping(gctx, candidateIDs, start, end)
			return err
		})
		g.Go(func() error {
			var err error
			leaves, err = db.leavesOverlapping(gctx, candidateIDs, start, end)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range ratings {
		snap.Ratings[r.UserID] = append(snap.Ratings[r.UserID], r)
	}
	for _, a := range allocs {
		snap.Allocations[a.UserID] = append(snap.Allocations[a.UserID], a)
	}
	for _, l := range leaves {
		snap.Leaves[l.UserID] = append(snap.Leaves[l.UserID], l)
	}
	return snap, nil
}

func (db *DB) ratingsFor(ctx context.Context, userIDs, skillIDs []int64) ([]SkillRating, error) {
	query := `SELECT pm.user_id, pm.skill_id, s.name, pm.rating
	FROM proficiency_mapping pm
	JOIN skill s ON pm.skill_id = s.id
	WHERE pm.user_id = ANY($1) AND pm.skill_id = ANY($2)`

	rows, err := db.connection.QueryContext(ctx, query, pq.Array(userIDs), pq.Array(skillIDs))
	if err != nil {
		return nil, eris.Wrap(err, "query proficiency ratings")
	}
	defer rows.Close()

	var res []SkillRating
	for rows.Next() {
		var r SkillRating
		if err := rows.Scan(&r.UserID, &r.SkillID, &r.SkillName, &r.Rating); err != nil {
			return nil, eris.Wrap(err, "scan proficiency rating")
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// firmAllocationsOverlapping returns non-tentative allocations touching
// [start, end]. Open-ended allocations (null end date) always reach the
// window's end.
func (db *DB) firmAllocationsOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) ([]Allocation, error) {
	query := `SELECT pa.user_id, pa.position_id, pa.utilization, pa.start_date, pa.end_date, pa.tentative, pa.kt_period
	FROM project_allocation pa
	WHERE pa.user_id = ANY($1)
		AND pa.tentative = false
		AND pa.start_date <= $3
		AND (pa.end_date IS NULL OR pa.end_date >= $2)`

	rows, err := db.connection.QueryContext(ctx, query, pq.Array(userIDs), start, end)
	if err != nil {
		return nil, eris.Wrap(err, "query allocations")
	}
	defer rows.Close()

	var res []Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// leavesOverlapping returns leave plans touching [start, end] whose
// approval status still counts against availability.
func (db *DB) leavesOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) ([]LeavePlan, error) {
	query := `SELECT lp.user_id, lp.from_date, lp.to_date, lp.approval_status
	FROM leave_plans lp
	WHERE lp.user_id = ANY($1)
		AND lp.approval_status NOT IN ($2, $3)
		AND lp.from_date <= $5 AND lp.to_date >= $4`

	rows, err := db.connection.QueryContext(ctx, query,
		pq.Array(userIDs), LeaveCancelled, LeaveRejected, start, end)
	if err != nil {
		return nil, eris.Wrap(err, "query leave plans")
	}
	defer rows.Close()

	var res []LeavePlan
	for rows.Next() {
		var l LeavePlan
		if err := rows.Scan(&l.UserID, &l.FromDate, &l.ToDate, &l.ApprovalStatus); err != nil {
			return nil, eris.Wrap(err, "scan leave plan")
		}
		res = append(res, l)
	}
	return res, rows.Err()
}
