package storage

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"
)

// ActiveUsersForBench returns active users eligible for the bench report,
// skipping statuses that should not appear (long leaves such as sabbatical
// or parental breaks), ordered by first name.
func (db *DB) ActiveUsersForBench(ctx context.Context, excludedStatuses []string) ([]Candidate, error) {
	query := "SELECT " + candidateColumns + `
	FROM users u
	LEFT JOIN user_role r ON u.role_id = r.id
	WHERE u.is_active = true
		AND (u.current_status IS NULL OR u.current_status <> ALL($1))
	ORDER BY u.first_name, u.last_name`

	rows, err := db.connection.QueryContext(ctx, query, pq.Array(excludedStatuses))
	if err != nil {
		return nil, eris.Wrap(err, "query bench users")
	}
	defer rows.Close()

	var res []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// AllAllocationsOverlapping returns every allocation, tentative included,
// touching [start, end] for the given users. The bench report counts soft
// holds as occupancy, unlike availability scoring.
func (db *DB) AllAllocationsOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) (map[int64][]Allocation, error) {
	query := `SELECT pa.user_id, pa.position_id, pa.utilization, pa.start_date, pa.end_date, pa.tentative, pa.kt_period
	FROM project_allocation pa
	WHERE pa.user_id = ANY($1)
		AND pa.start_date <= $3
		AND (pa.end_date IS NULL OR pa.end_date >= $2)`

	rows, err := db.connection.QueryContext(ctx, query, pq.Array(userIDs), start, end)
	if err != nil {
		return nil, eris.Wrap(err, "query allocations")
	}
	defer rows.Close()

	res := make(map[int64][]Allocation)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		res[a.UserID] = append(res[a.UserID], a)
	}
	return res, rows.Err()
}

// UsersLeavingBetween returns users whose last working day falls inside
// [start, end], most recent departure first.
func (db *DB) UsersLeavingBetween(ctx context.Context, start, end time.Time) ([]Candidate, error) {
	query := "SELECT " + candidateColumns + `
	FROM users u
	LEFT JOIN user_role r ON u.role_id = r.id
	WHERE u.last_working_day >= $1 AND u.last_working_day <= $2
	ORDER BY u.last_working_day DESC`

	rows, err := db.connection.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, eris.Wrap(err, "query leaving users")
	}
	defer rows.Close()

	var res []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}
