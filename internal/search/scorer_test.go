package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func fixedScorer(today time.Time) *Scorer {
	s := NewScorer(DefaultWeights())
	s.now = func() time.Time { return today }
	return s
}

func emptySnapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Ratings:     map[int64][]storage.SkillRating{},
		Allocations: map[int64][]storage.Allocation{},
		Leaves:      map[int64][]storage.LeavePlan{},
	}
}

func TestScorePoolRanges(t *testing.T) {
	today := date(2026, time.September, 1)
	careerStart := date(2020, time.March, 10)
	pool := []storage.Candidate{
		{ID: 1, CareerStartDate: &careerStart, CareerBreakMonths: 2},
		{ID: 2},
		{ID: 3, CareerStartDate: &careerStart},
	}
	snap := emptySnapshot()
	snap.Ratings[1] = []storage.SkillRating{{UserID: 1, SkillID: 10, Rating: 3}, {UserID: 1, SkillID: 11, Rating: 5}}
	snap.Ratings[3] = []storage.SkillRating{{UserID: 3, SkillID: 10, Rating: 1}}
	snap.Allocations[2] = []storage.Allocation{
		{UserID: 2, Utilization: 50, StartDate: date(2026, time.October, 1), EndDate: timePtr(date(2026, time.October, 20))},
	}

	req := StaffingRequest{
		SkillIDs:             []int64{10, 11},
		WindowStart:          timePtr(date(2026, time.October, 1)),
		WindowEnd:            timePtr(date(2026, time.October, 30)),
		Utilization:          intPtr(80),
		ExperienceStartYears: intPtr(2),
		ExperienceEndYears:   intPtr(8),
	}

	scored := fixedScorer(today).ScorePool(pool, snap, req)
	require.Len(t, scored, 3)
	for _, st := range scored {
		assert.GreaterOrEqual(t, st.Score, 0)
		assert.LessOrEqual(t, st.Score, 100)
		for _, sub := range []float64{st.AvailabilityScore, st.SkillScore, st.ProficiencyScore, st.ExperienceScore} {
			assert.GreaterOrEqual(t, sub, 0.0)
			assert.LessOrEqual(t, sub, 1.0)
		}
	}
}

func TestScorePoolProficiencyMonotonic(t *testing.T) {
	today := date(2026, time.September, 1)
	req := StaffingRequest{SkillIDs: []int64{10}}

	var previous int
	for rating := 0; rating <= 5; rating++ {
		snap := emptySnapshot()
		snap.Ratings[1] = []storage.SkillRating{{UserID: 1, SkillID: 10, Rating: rating}}
		scored := fixedScorer(today).ScorePool([]storage.Candidate{{ID: 1}}, snap, req)
		require.Len(t, scored, 1)
		assert.GreaterOrEqual(t, scored[0].Score, previous,
			"raising rating to %d must not lower the composite", rating)
		previous = scored[0].Score
	}
}

func TestScorePoolIdempotent(t *testing.T) {
	today := date(2026, time.September, 1)
	careerStart := date(2019, time.January, 1)
	pool := []storage.Candidate{{ID: 1, CareerStartDate: &careerStart}, {ID: 2}, {ID: 3}}
	snap := emptySnapshot()
	snap.Ratings[1] = []storage.SkillRating{{UserID: 1, SkillID: 10, Rating: 4}}
	snap.Ratings[2] = []storage.SkillRating{{UserID: 2, SkillID: 10, Rating: 2}}
	req := StaffingRequest{
		SkillIDs:             []int64{10},
		ExperienceStartYears: intPtr(1),
		ExperienceEndYears:   intPtr(10),
	}

	scorer := fixedScorer(today)
	first := scorer.ScorePool(pool, snap, req)
	second := scorer.ScorePool(pool, snap, req)
	assert.Equal(t, first, second)
}

func TestScorePoolWeightExclusionEquivalence(t *testing.T) {
	// Omitting the window must score the same as forcing availability
	// weight to zero with a window present.
	today := date(2026, time.September, 1)
	pool := []storage.Candidate{{ID: 1}}
	snap := emptySnapshot()
	snap.Ratings[1] = []storage.SkillRating{{UserID: 1, SkillID: 10, Rating: 3}}

	noWindow := StaffingRequest{SkillIDs: []int64{10}}
	withWindow := StaffingRequest{
		SkillIDs:    []int64{10},
		WindowStart: timePtr(date(2026, time.October, 1)),
		WindowEnd:   timePtr(date(2026, time.October, 10)),
		Utilization: intPtr(100),
	}

	plain := fixedScorer(today).ScorePool(pool, snap, noWindow)

	zeroAvail := NewScorer(Weights{Availability: 0, Skill: 20, Proficiency: 35, Experience: 20})
	zeroAvail.now = func() time.Time { return today }
	forced := zeroAvail.ScorePool(pool, snap, withWindow)

	require.Len(t, plain, 1)
	require.Len(t, forced, 1)
	assert.Equal(t, plain[0].Score, forced[0].Score)
}

func TestScorePoolEmptySkillListIsNotAnError(t *testing.T) {
	today := date(2026, time.September, 1)
	scored := fixedScorer(today).ScorePool([]storage.Candidate{{ID: 1}}, emptySnapshot(), StaffingRequest{})
	require.Len(t, scored, 1)
	assert.Equal(t, 0, scored[0].Score)
	assert.Zero(t, scored[0].SkillScore)
	assert.Zero(t, scored[0].ProficiencyScore)
}

func TestScorePoolTieBreakByCandidateID(t *testing.T) {
	today := date(2026, time.September, 1)
	snap := emptySnapshot()
	snap.Ratings[7] = []storage.SkillRating{{UserID: 7, SkillID: 10, Rating: 4}}
	snap.Ratings[3] = []storage.SkillRating{{UserID: 3, SkillID: 10, Rating: 4}}
	pool := []storage.Candidate{{ID: 7}, {ID: 3}}

	scored := fixedScorer(today).ScorePool(pool, snap, StaffingRequest{SkillIDs: []int64{10}})
	require.Len(t, scored, 2)
	assert.Equal(t, scored[0].Score, scored[1].Score)
	assert.Equal(t, int64(3), scored[0].Candidate.ID)
	assert.Equal(t, int64(7), scored[1].Candidate.ID)
}

func TestSkillSetScore(t *testing.T) {
	ratings := []storage.SkillRating{
		{SkillID: 10, Rating: 3},
		{SkillID: 11, Rating: 0}, // stale rating must not count
		{SkillID: 12, Rating: 5},
		{SkillID: 99, Rating: 4}, // not requested
	}
	assert.InDelta(t, 2.0/3.0, SkillSetScore(ratings, []int64{10, 11, 12}), 1e-9)
	assert.Zero(t, SkillSetScore(ratings, nil))
	assert.Zero(t, SkillSetScore(nil, []int64{10}))
}

func TestProficiencyScoreCapsRatingAtFour(t *testing.T) {
	five := []storage.SkillRating{{SkillID: 10, Rating: 5}}
	four := []storage.SkillRating{{SkillID: 10, Rating: 4}}
	assert.Equal(t, 1.0, ProficiencyScore(five, []int64{10}))
	assert.Equal(t, 1.0, ProficiencyScore(four, []int64{10}))

	two := []storage.SkillRating{{SkillID: 10, Rating: 2}}
	assert.InDelta(t, 0.5, ProficiencyScore(two, []int64{10}), 1e-9)
	assert.Zero(t, ProficiencyScore(five, nil))
}

func TestExperienceDays(t *testing.T) {
	today := date(2026, time.September, 1)
	start := today.AddDate(0, 0, -730)
	assert.Equal(t, 730, ExperienceDays(&start, 0, today))
	assert.Equal(t, 730-60, ExperienceDays(&start, 2, today))
	assert.Equal(t, 0, ExperienceDays(nil, 5, today))
}

func TestExperienceScoreGrades(t *testing.T) {
	// range [2y, 4y] in days: [730, 1460]
	tests := []struct {
		name   string
		tenure int
		want   float64
	}{
		{"exactly at range start", 730, 1.0},
		{"inside range", 1000, 1.0},
		{"at range end", 1460, 1.0},
		{"one year under", 730 - 365, 0.75},
		{"just under range", 729, 0.75},
		{"one year over", 1460 + 365, 0.75},
		{"three years under", 730 - 1095, 0.5},
		{"three years over", 1460 + 1095, 0.5},
		{"far out", 5000, 0.25},
		{"zero tenure", 0, 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExperienceScore(tc.tenure, 2, 4))
		})
	}
}

func TestScorePoolExperienceExactBoundary(t *testing.T) {
	// Career start exactly experience_start_years*365 days ago scores 1.0.
	today := date(2026, time.September, 1)
	start := today.AddDate(0, 0, -2*365)
	pool := []storage.Candidate{{ID: 1, CareerStartDate: &start}}
	req := StaffingRequest{
		ExperienceStartYears: intPtr(2),
		ExperienceEndYears:   intPtr(5),
	}

	scored := fixedScorer(today).ScorePool(pool, emptySnapshot(), req)
	require.Len(t, scored, 1)
	assert.Equal(t, 1.0, scored[0].ExperienceScore)
	assert.Equal(t, 100, scored[0].Score)
}
