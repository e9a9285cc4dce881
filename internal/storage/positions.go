package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = eris.New("not found")

// GetPosition loads a project position with its role, project and required
// skill set.
func (db *DB) GetPosition(ctx context.Context, id int64) (*Position, error) {
	query := `SELECT pp.id, pr.role_id, r.name, pr.project_id, p.name,
		pp.experience_range_start, pp.experience_range_end, pp.utilization, pp.start_date, pp.end_date,
		COALESCE(array_agg(pps.skill_id) FILTER (WHERE pps.skill_id IS NOT NULL), '{}')
	FROM project_position pp
	JOIN project_role pr ON pp.project_role_id = pr.id
	JOIN user_role r ON pr.role_id = r.id
	JOIN project p ON pr.project_id = p.id
	LEFT JOIN project_position_skills pps ON pps.position_id = pp.id
	WHERE pp.id = $1
	GROUP BY pp.id, pr.role_id, r.name, pr.project_id, p.name,
		pp.experience_range_start, pp.experience_range_end, pp.utilization, pp.start_date, pp.end_date`

	var pos Position
	var endDate sql.NullTime
	var skillIDs pq.Int64Array
	err := db.connection.QueryRowContext(ctx, query, id).Scan(
		&pos.ID, &pos.RoleID, &pos.RoleName, &pos.ProjectID, &pos.ProjectName,
		&pos.ExperienceRangeStart, &pos.ExperienceRangeEnd, &pos.Utilization,
		&pos.StartDate, &endDate, &skillIDs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "query position")
	}
	pos.EndDate = nullableTime(endDate)
	pos.SkillIDs = skillIDs
	return &pos, nil
}
