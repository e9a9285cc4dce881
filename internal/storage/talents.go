package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"
)

// ProficienciesForUsers returns every live (rating > 0) proficiency row for
// the given users, keyed by user id, rating descending. Used to enrich the
// search response; one query per page, not per talent.
func (db *DB) ProficienciesForUsers(ctx context.Context, userIDs []int64) (map[int64][]SkillRating, error) {
	query := `SELECT pm.user_id, pm.skill_id, s.name, pm.rating
	FROM proficiency_mapping pm
	JOIN skill s ON pm.skill_id = s.id
	WHERE pm.user_id = ANY($1) AND pm.rating > 0
	ORDER BY pm.rating DESC, pm.skill_id`

	rows, err := db.connection.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, eris.Wrap(err, "query user proficiencies")
	}
	defer rows.Close()

	res := make(map[int64][]SkillRating)
	for rows.Next() {
		var r SkillRating
		if err := rows.Scan(&r.UserID, &r.SkillID, &r.SkillName, &r.Rating); err != nil {
			return nil, eris.Wrap(err, "scan proficiency")
		}
		res[r.UserID] = append(res[r.UserID], r)
	}
	return res, rows.Err()
}

// AllocationsForUsers returns all allocations (tentative included, with
// project names) for the given users, optionally clipped to a response
// window, keyed by user id.
func (db *DB) AllocationsForUsers(ctx context.Context, userIDs []int64, from, to *time.Time) (map[int64][]Allocation, error) {
	query := `SELECT pa.user_id, pa.position_id, p.name, pa.utilization, pa.start_date, pa.end_date, pa.tentative, pa.kt_period
	FROM project_allocation pa
	JOIN project_position pp ON pa.position_id = pp.id
	JOIN project_role pr ON pp.project_role_id = pr.id
	JOIN project p ON pr.project_id = p.id
	WHERE pa.user_id = ANY($1)`
	args := []interface{}{pq.Array(userIDs)}
	query, args = clipWindow(query, args, "pa.start_date", "pa.end_date", from, to)
	query += " ORDER BY pa.start_date"

	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "query user allocations")
	}
	defer rows.Close()

	res := make(map[int64][]Allocation)
	for rows.Next() {
		var a Allocation
		var endDate sql.NullTime
		err := rows.Scan(&a.UserID, &a.PositionID, &a.ProjectName, &a.Utilization,
			&a.StartDate, &endDate, &a.Tentative, &a.KTPeriod)
		if err != nil {
			return nil, eris.Wrap(err, "scan allocation")
		}
		a.EndDate = nullableTime(endDate)
		res[a.UserID] = append(res[a.UserID], a)
	}
	return res, rows.Err()
}

// ApprovedLeavesForUsers returns approved leave plans for the given users,
// optionally clipped to a response window, keyed by user id.
func (db *DB) ApprovedLeavesForUsers(ctx context.Context, userIDs []int64, from, to *time.Time) (map[int64][]LeavePlan, error) {
	query := `SELECT lp.user_id, lp.from_date, lp.to_date, lp.approval_status
	FROM leave_plans lp
	WHERE lp.user_id = ANY($1) AND lp.approval_status = $2`
	args := []interface{}{pq.Array(userIDs), LeaveApproved}
	query, args = clipWindow(query, args, "lp.from_date", "lp.to_date", from, to)
	query += " ORDER BY lp.from_date"

	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "query user leaves")
	}
	defer rows.Close()

	res := make(map[int64][]LeavePlan)
	for rows.Next() {
		var l LeavePlan
		if err := rows.Scan(&l.UserID, &l.FromDate, &l.ToDate, &l.ApprovalStatus); err != nil {
			return nil, eris.Wrap(err, "scan leave plan")
		}
		res[l.UserID] = append(res[l.UserID], l)
	}
	return res, rows.Err()
}

// PendingAllocationRequestsForUsers returns allocation requests still
// awaiting approval for the given users, keyed by user id.
func (db *DB) PendingAllocationRequestsForUsers(ctx context.Context, userIDs []int64) (map[int64][]AllocationRequest, error) {
	query := `SELECT par.id, par.user_id, p.name, par.utilization, par.kt_period, par.start_date, par.end_date
	FROM project_allocation_request par
	JOIN project_position pp ON par.position_id = pp.id
	JOIN project_role pr ON pp.project_role_id = pr.id
	JOIN project p ON pr.project_id = p.id
	WHERE par.user_id = ANY($1) AND par.status = 'PENDING'
	ORDER BY par.start_date`

	rows, err := db.connection.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, eris.Wrap(err, "query allocation requests")
	}
	defer rows.Close()

	res := make(map[int64][]AllocationRequest)
	for rows.Next() {
		var r AllocationRequest
		var endDate sql.NullTime
		err := rows.Scan(&r.ID, &r.UserID, &r.ProjectName, &r.Utilization,
			&r.KTPeriod, &r.StartDate, &endDate)
		if err != nil {
			return nil, eris.Wrap(err, "scan allocation request")
		}
		r.EndDate = nullableTime(endDate)
		res[r.UserID] = append(res[r.UserID], r)
	}
	return res, rows.Err()
}

// clipWindow appends overlap conditions for an interval [startCol, endCol]
// against an optional [from, to] response window. A null end column means
// the interval is open-ended and always reaches `from`.
func clipWindow(query string, args []interface{}, startCol, endCol string, from, to *time.Time) (string, []interface{}) {
	var conds []string
	if from != nil {
		conds = append(conds, fmt.Sprintf("(%s IS NULL OR %s >= $%d)", endCol, endCol, len(args)+1))
		args = append(args, *from)
	}
	if to != nil {
		conds = append(conds, fmt.Sprintf("%s <= $%d", startCol, len(args)+1))
		args = append(args, *to)
	}
	if len(conds) > 0 {
		query += " AND " + strings.Join(conds, " AND ")
	}
	return query, args
}

func scanAllocation(rows *sql.Rows) (Allocation, error) {
	var a Allocation
	var endDate sql.NullTime
	err := rows.Scan(&a.UserID, &a.PositionID, &a.Utilization, &a.StartDate,
		&endDate, &a.Tentative, &a.KTPeriod)
	if err != nil {
		return a, eris.Wrap(err, "scan allocation")
	}
	a.EndDate = nullableTime(endDate)
	return a, nil
}
