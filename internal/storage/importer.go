package storage

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// UserUpsert is one row of the user import feed.
type UserUpsert struct {
	EmployeeID        string
	Email             string
	FirstName         string
	LastName          string
	RoleName          *string
	WorkLocation      *string
	CareerStartDate   *time.Time
	CareerBreakMonths int
	LastWorkingDay    *time.Time
}

// UpsertUser inserts or refreshes a user keyed by employee id, resolving
// the role by name on the fly, and returns the user's id.
func (db *DB) UpsertUser(ctx context.Context, u UserUpsert) (int64, error) {
	var roleID *int64
	if u.RoleName != nil && *u.RoleName != "" {
		id, err := db.ensureRole(ctx, *u.RoleName)
		if err != nil {
			return 0, err
		}
		roleID = &id
	}

	query := `INSERT INTO users
		(employee_id, email, first_name, last_name, role_id, work_location,
		 career_start_date, career_break_months, last_working_day, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
	ON CONFLICT (employee_id) DO UPDATE
		SET email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role_id = EXCLUDED.role_id,
			work_location = EXCLUDED.work_location,
			career_start_date = EXCLUDED.career_start_date,
			career_break_months = EXCLUDED.career_break_months,
			last_working_day = EXCLUDED.last_working_day
	RETURNING id`

	var id int64
	err := db.connection.QueryRowContext(ctx, query,
		u.EmployeeID, u.Email, u.FirstName, u.LastName, roleID, u.WorkLocation,
		u.CareerStartDate, u.CareerBreakMonths, u.LastWorkingDay).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "upsert user %s", u.EmployeeID)
	}
	return id, nil
}

// UpsertSkillRatings refreshes a user's proficiency rows from a name->rating
// map, creating skills by name as needed. Existing rows for skills outside
// the map are left alone.
func (db *DB) UpsertSkillRatings(ctx context.Context, userID int64, ratings map[string]int) error {
	for name, rating := range ratings {
		skillID, err := db.ensureSkill(ctx, name)
		if err != nil {
			return err
		}
		query := `INSERT INTO proficiency_mapping (user_id, skill_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, skill_id) DO UPDATE SET rating = EXCLUDED.rating`
		if _, err := db.connection.ExecContext(ctx, query, userID, skillID, rating); err != nil {
			return eris.Wrapf(err, "upsert rating for skill %s", name)
		}
	}
	return nil
}

func (db *DB) ensureSkill(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO skill (name) VALUES ($1)
	ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	RETURNING id`
	var id int64
	if err := db.connection.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, eris.Wrapf(err, "ensure skill %s", name)
	}
	return id, nil
}

func (db *DB) ensureRole(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO user_role (name) VALUES ($1)
	ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	RETURNING id`
	var id int64
	if err := db.connection.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, eris.Wrapf(err, "ensure role %s", name)
	}
	return id, nil
}
