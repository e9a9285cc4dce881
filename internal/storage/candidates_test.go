package storage

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCandidateQueryNoFilters(t *testing.T) {
	query, args := buildCandidateQuery(CandidateFilter{})
	assert.Contains(t, query, "u.is_active = true")
	assert.Contains(t, query, "ORDER BY u.id")
	assert.NotContains(t, query, "$1")
	assert.Empty(t, args)
}

func TestBuildCandidateQueryRoleFilter(t *testing.T) {
	roleID := int64(7)

	query, args := buildCandidateQuery(CandidateFilter{RoleID: &roleID})
	assert.Contains(t, query, "u.role_id = $1")
	assert.Equal(t, []interface{}{roleID}, args)

	query, args = buildCandidateQuery(CandidateFilter{RoleID: &roleID, ExcludeRole: true})
	assert.Contains(t, query, "(u.role_id IS NULL OR u.role_id <> $1)")
	assert.Equal(t, []interface{}{roleID}, args)
}

func TestBuildCandidateQuerySearchWrapsWildcards(t *testing.T) {
	query, args := buildCandidateQuery(CandidateFilter{Search: "jane d"})
	assert.Contains(t, query, "(u.first_name || ' ' || u.last_name) ILIKE $1")
	assert.Equal(t, []interface{}{"%jane d%"}, args)
}

func TestBuildCandidateQuerySkillMembership(t *testing.T) {
	query, args := buildCandidateQuery(CandidateFilter{SkillIDs: []int64{10, 11}})
	assert.Contains(t, query, "pm.skill_id = ANY($1)")
	require.Len(t, args, 1)
	assert.Equal(t, pq.Array([]int64{10, 11}), args[0])
}

func TestBuildCandidateQueryLocationsLowered(t *testing.T) {
	query, args := buildCandidateQuery(CandidateFilter{Locations: []string{"Pune", "BANGALORE"}})
	assert.Contains(t, query, "LOWER(u.work_location) = ANY($1)")
	require.Len(t, args, 1)
	assert.Equal(t, pq.Array([]string{"pune", "bangalore"}), args[0])
}

func TestBuildCandidateQueryPlaceholderNumbering(t *testing.T) {
	roleID := int64(7)
	query, args := buildCandidateQuery(CandidateFilter{
		RoleID:     &roleID,
		Search:     "jane",
		SkillIDs:   []int64{10},
		ProjectIDs: []int64{3},
		Locations:  []string{"Pune"},
	})

	assert.Contains(t, query, "u.role_id = $1")
	assert.Contains(t, query, "ILIKE $2")
	assert.Contains(t, query, "pm.skill_id = ANY($3)")
	assert.Contains(t, query, "pr.project_id = ANY($4)")
	assert.Contains(t, query, "LOWER(u.work_location) = ANY($5)")
	assert.Len(t, args, 5)
}
