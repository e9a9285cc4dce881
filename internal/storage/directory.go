package storage

import (
	"context"

	"github.com/rotisserie/eris"
)

// Universal search: case-insensitive name lookups across users, clients and
// projects. Each returns bare (id, name) pairs for type-ahead use.

func (db *DB) SearchUsersByName(ctx context.Context, search string) ([]NamedRef, error) {
	query := `SELECT u.id, u.first_name || ' ' || u.last_name
	FROM users u
	WHERE (u.first_name || ' ' || u.last_name) ILIKE $1
	ORDER BY u.first_name, u.last_name`
	return db.queryNamedRefs(ctx, query, "%"+search+"%")
}

func (db *DB) SearchClientsByName(ctx context.Context, search string) ([]NamedRef, error) {
	query := `SELECT c.id, c.name FROM client c WHERE c.name ILIKE $1 ORDER BY c.name`
	return db.queryNamedRefs(ctx, query, "%"+search+"%")
}

func (db *DB) SearchProjectsByName(ctx context.Context, search string) ([]NamedRef, error) {
	query := `SELECT p.id, p.name FROM project p WHERE p.name ILIKE $1 ORDER BY p.name`
	return db.queryNamedRefs(ctx, query, "%"+search+"%")
}

func (db *DB) queryNamedRefs(ctx context.Context, query string, args ...interface{}) ([]NamedRef, error) {
	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "query named refs")
	}
	defer rows.Close()

	var res []NamedRef
	for rows.Next() {
		var ref NamedRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, eris.Wrap(err, "scan named ref")
		}
		res = append(res, ref)
	}
	return res, rows.Err()
}
