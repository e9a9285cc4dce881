package search

import (
	"math"
	"sort"
	"time"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

// Ratings run 0-5 but anything above 4 earns no extra credit.
const maxCountedRating = 4

// Weights are the relative weights of the four sub-scores. A weight is
// forced to 0 when the request omits the inputs its sub-score needs, and
// the weight then drops out of the normalization denominator too.
type Weights struct {
	Availability int
	Skill        int
	Proficiency  int
	Experience   int
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{Availability: 25, Skill: 20, Proficiency: 35, Experience: 20}
}

// ScoredTalent is one candidate with its four sub-scores (each in [0, 1])
// and the weighted composite match percentage.
type ScoredTalent struct {
	Candidate         storage.Candidate `json:"candidate"`
	Score             int               `json:"score"`
	AvailabilityScore float64           `json:"availability_score"`
	SkillScore        float64           `json:"skill_score"`
	ProficiencyScore  float64           `json:"proficiency_score"`
	ExperienceScore   float64           `json:"experience_score"`
}

// Scorer combines the four sub-scores into composite match percentages.
// It is a pure function of (pool, snapshot, request); the clock is injected
// for tests.
type Scorer struct {
	weights Weights
	now     func() time.Time
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights, now: time.Now}
}

// ScorePool scores every candidate in the pool against the request and
// returns them ordered by composite score descending, candidate id
// ascending on ties.
func (s *Scorer) ScorePool(pool []storage.Candidate, snap *storage.Snapshot, req StaffingRequest) []ScoredTalent {
	today := day(s.now())

	hasWindow := req.HasWindow()
	hasExperience := req.HasExperienceRange()
	hasSkills := len(req.SkillIDs) > 0

	w := s.weights
	if !hasWindow {
		w.Availability = 0
	}
	if !hasExperience {
		w.Experience = 0
	}
	if !hasSkills {
		w.Skill = 0
		w.Proficiency = 0
	}
	totalWeight := w.Availability + w.Skill + w.Proficiency + w.Experience

	results := make([]ScoredTalent, 0, len(pool))
	for _, c := range pool {
		st := ScoredTalent{Candidate: c}

		if hasWindow {
			st.AvailabilityScore = AvailabilityScore(
				snap.Allocations[c.ID], snap.Leaves[c.ID], c.LastWorkingDay,
				*req.WindowStart, *req.WindowEnd, *req.Utilization)
		}
		if hasSkills {
			st.SkillScore = SkillSetScore(snap.Ratings[c.ID], req.SkillIDs)
			st.ProficiencyScore = ProficiencyScore(snap.Ratings[c.ID], req.SkillIDs)
		}
		if hasExperience {
			tenure := ExperienceDays(c.CareerStartDate, c.CareerBreakMonths, today)
			st.ExperienceScore = ExperienceScore(tenure, *req.ExperienceStartYears, *req.ExperienceEndYears)
		}

		if totalWeight > 0 {
			weighted := st.AvailabilityScore*float64(w.Availability) +
				st.SkillScore*float64(w.Skill) +
				st.ProficiencyScore*float64(w.Proficiency) +
				st.ExperienceScore*float64(w.Experience)
			st.Score = int(math.Round(weighted / float64(totalWeight) * 100))
		}
		results = append(results, st)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Candidate.ID < results[j].Candidate.ID
	})
	return results
}

// SkillSetScore is the fraction of requested skills the candidate has a
// live (rating > 0) proficiency row for. Zero requested skills score 0, not
// a division error.
func SkillSetScore(ratings []storage.SkillRating, skillIDs []int64) float64 {
	if len(skillIDs) == 0 {
		return 0
	}
	requested := skillSet(skillIDs)
	count := 0
	for _, r := range ratings {
		if r.Rating > 0 && requested[r.SkillID] {
			count++
		}
	}
	return float64(count) / float64(len(skillIDs))
}

// ProficiencyScore is the candidate's rating depth across the requested
// skills, normalized so a rating of 4 on every skill scores 1.0. Ratings
// above 4 are capped.
func ProficiencyScore(ratings []storage.SkillRating, skillIDs []int64) float64 {
	if len(skillIDs) == 0 {
		return 0
	}
	requested := skillSet(skillIDs)
	sum := 0
	for _, r := range ratings {
		if !requested[r.SkillID] {
			continue
		}
		rating := r.Rating
		if rating > maxCountedRating {
			rating = maxCountedRating
		}
		sum += rating
	}
	return float64(sum) / float64(maxCountedRating*len(skillIDs))
}

// ExperienceDays is the candidate's tenure in days: calendar days since the
// career start, minus 30 days per career-break month. No career start means
// zero experience.
func ExperienceDays(careerStart *time.Time, breakMonths int, today time.Time) int {
	if careerStart == nil {
		return 0
	}
	return daysInclusive(day(*careerStart), day(today)) - 1 - breakMonths*30
}

// ExperienceScore grades tenure against a requested range in years: 1.0
// inside the range, 0.75 within a year of it, 0.5 within three years, 0.25
// otherwise.
func ExperienceScore(tenureDays, startYears, endYears int) float64 {
	startRange := startYears * 365
	endRange := endYears * 365
	switch {
	case tenureDays >= startRange && tenureDays <= endRange:
		return 1.0
	case tenureDays >= startRange-365 && tenureDays <= endRange+365:
		return 0.75
	case tenureDays >= startRange-3*365 && tenureDays <= endRange+3*365:
		return 0.5
	default:
		return 0.25
	}
}

func skillSet(skillIDs []int64) map[int64]bool {
	set := make(map[int64]bool, len(skillIDs))
	for _, id := range skillIDs {
		set[id] = true
	}
	return set
}
