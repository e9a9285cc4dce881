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

const candidateColumns = `u.id, u.employee_id, u.first_name, u.last_name, u.role_id, r.name,
		u.work_location, u.career_start_date, u.career_break_months, u.last_working_day`

// buildCandidateQuery assembles the candidate pool filter as a single
// SELECT with numbered placeholders. Every filter narrows the set; omitted
// filters simply widen it to all active candidates. The EXISTS subqueries
// keep the result de-duplicated even when a candidate matches several
// proficiency rows or allocations.
func buildCandidateQuery(f CandidateFilter) (string, []interface{}) {
	where := []string{"u.is_active = true"}
	var args []interface{}
	i := 1

	if f.RoleID != nil {
		if f.ExcludeRole {
			// related suggestions: surface matches outside the requested role
			where = append(where, fmt.Sprintf("(u.role_id IS NULL OR u.role_id <> $%d)", i))
		} else {
			where = append(where, fmt.Sprintf("u.role_id = $%d", i))
		}
		args = append(args, *f.RoleID)
		i++
	}
	if f.Search != "" {
		where = append(where, fmt.Sprintf("(u.first_name || ' ' || u.last_name) ILIKE $%d", i))
		args = append(args, "%"+f.Search+"%")
		i++
	}
	if len(f.SkillIDs) > 0 {
		// membership filter on any rating; proficiency is scored later, not gated here
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM proficiency_mapping pm WHERE pm.user_id = u.id AND pm.skill_id = ANY($%d))", i))
		args = append(args, pq.Array(f.SkillIDs))
		i++
	}
	if len(f.ProjectIDs) > 0 {
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM project_allocation pa
				JOIN project_position pp ON pa.position_id = pp.id
				JOIN project_role pr ON pp.project_role_id = pr.id
				WHERE pa.user_id = u.id AND pr.project_id = ANY($%d))`, i))
		args = append(args, pq.Array(f.ProjectIDs))
		i++
	}
	if len(f.Locations) > 0 {
		lowered := make([]string, len(f.Locations))
		for j, loc := range f.Locations {
			lowered[j] = strings.ToLower(loc)
		}
		where = append(where, fmt.Sprintf("LOWER(u.work_location) = ANY($%d)", i))
		args = append(args, pq.Array(lowered))
		i++
	}

	query := "SELECT " + candidateColumns + `
	FROM users u
	LEFT JOIN user_role r ON u.role_id = r.id
	WHERE ` + strings.Join(where, "\n\t\tAND ") + `
	ORDER BY u.id`
	return query, args
}

// FilterCandidates returns all active candidates matching the filter, in id
// order. An empty result is a valid zero-match outcome, not an error.
func (db *DB) FilterCandidates(ctx context.Context, f CandidateFilter) ([]Candidate, error) {
	query, args := buildCandidateQuery(f)
	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "query candidates")
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

func scanCandidate(rows *sql.Rows) (Candidate, error) {
	var c Candidate
	var roleID sql.NullInt64
	var roleName, workLocation sql.NullString
	var careerStart, lastWorkingDay sql.NullTime
	err := rows.Scan(&c.ID, &c.EmployeeID, &c.FirstName, &c.LastName, &roleID, &roleName,
		&workLocation, &careerStart, &c.CareerBreakMonths, &lastWorkingDay)
	if err != nil {
		return c, eris.Wrap(err, "scan candidate")
	}
	c.RoleID = nullableInt64(roleID)
	c.RoleName = nullableString(roleName)
	c.WorkLocation = nullableString(workLocation)
	c.CareerStartDate = nullableTime(careerStart)
	c.LastWorkingDay = nullableTime(lastWorkingDay)
	return c, nil
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
