package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

// Store is the read-only query surface the engine consumes. The engine
// never writes; retry policy for the data store belongs to the implementor.
type Store interface {
	// FilterCandidates returns the de-duplicated set of active candidates
	// matching the hard constraints, in stable id order.
	FilterCandidates(ctx context.Context, f storage.CandidateFilter) ([]storage.Candidate, error)
	// LoadSnapshot bulk-reads proficiency, allocation and leave rows for
	// the given candidates. Allocation and leave reads are skipped when no
	// window is supplied.
	LoadSnapshot(ctx context.Context, candidateIDs []int64, skillIDs []int64,
		windowStart, windowEnd *time.Time) (*storage.Snapshot, error)
}

// Engine wires the pool builder and the scorer together. One Search call is
// a stateless, synchronous computation: a constant number of bulk reads,
// then pure scoring over the snapshot.
type Engine struct {
	store  Store
	scorer *Scorer
	log    zerolog.Logger
}

func NewEngine(store Store, weights Weights, log zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		scorer: NewScorer(weights),
		log:    log,
	}
}

// BuildPool applies the hard constraints and returns the candidate pool,
// unscored. Empty filters widen the pool; an empty result is not an error.
func (e *Engine) BuildPool(ctx context.Context, req StaffingRequest) ([]storage.Candidate, error) {
	pool, err := e.store.FilterCandidates(ctx, storage.CandidateFilter{
		RoleID:      req.RoleID,
		ExcludeRole: req.RelatedSuggestions && req.RoleID != nil,
		SkillIDs:    req.SkillIDs,
		Search:      req.Search,
		Locations:   req.Locations,
		ProjectIDs:  req.ProjectIDs,
	})
	if err != nil {
		return nil, eris.Wrap(err, "filter candidates")
	}
	return pool, nil
}

// ScoreTalents loads the scoring snapshot for the pool and returns every
// candidate scored and ordered. Either the full sorted list is produced or
// the call fails outright.
func (e *Engine) ScoreTalents(ctx context.Context, pool []storage.Candidate, req StaffingRequest) ([]ScoredTalent, error) {
	if len(pool) == 0 {
		return []ScoredTalent{}, nil
	}

	ids := make([]int64, len(pool))
	for i, c := range pool {
		ids[i] = c.ID
	}

	var windowStart, windowEnd *time.Time
	if req.HasWindow() {
		windowStart, windowEnd = req.WindowStart, req.WindowEnd
	}

	snap, err := e.store.LoadSnapshot(ctx, ids, req.SkillIDs, windowStart, windowEnd)
	if err != nil {
		return nil, eris.Wrap(err, "load scoring snapshot")
	}
	return e.scorer.ScorePool(pool, snap, req), nil
}

// Search validates the request, builds the pool and scores it.
func (e *Engine) Search(ctx context.Context, req StaffingRequest) ([]ScoredTalent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	queryID := uuid.New().String()
	log := e.log.With().Str("query_id", queryID).Logger()

	pool, err := e.BuildPool(ctx, req)
	if err != nil {
		return nil, err
	}
	scored, err := e.ScoreTalents(ctx, pool, req)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("pool_size", len(pool)).
		Int("skills", len(req.SkillIDs)).
		Bool("windowed", req.HasWindow()).
		Msg("talent search scored")
	return scored, nil
}
