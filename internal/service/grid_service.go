package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PizzaHomicide/sedai/internal/aggregate"
	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/log"
)

// FallbackErrorMessage is shown when a failed query carries no message of its own
const FallbackErrorMessage = "获取数据失败，请检查 ID 是否正确。"

// State is the lifecycle state of the grid
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Query is one request for a user's grid
type Query struct {
	UserID    string
	StartYear int
}

// QueryID identifies a submitted query.  Later queries always have larger ids.
type QueryID uint64

// Snapshot is a point in time copy of the grid state.  Result and Profile are shared with the service but are never
// modified after they are published.
type Snapshot struct {
	ID         QueryID
	State      State
	Query      Query
	Profile    *domain.UserProfile
	Result     *aggregate.Result
	Err        error
	ErrMessage string
}

// GridService runs queries against Bangumi and owns the most recent result.  Completions of queries that have been
// superseded by a newer one are discarded.
type GridService struct {
	profiles    domain.ProfileRepository
	collections domain.CollectionRepository
	now         func() time.Time

	mu       sync.Mutex
	current  QueryID
	snapshot Snapshot
}

func NewGridService(profiles domain.ProfileRepository, collections domain.CollectionRepository) *GridService {
	return &GridService{
		profiles:    profiles,
		collections: collections,
		now:         time.Now,
	}
}

// CurrentYear is the last year shown on the grid
func (s *GridService) CurrentYear() int {
	return s.now().Year()
}

// Begin registers q as the current query and moves the grid to loading.  Any query begun earlier becomes stale.
func (s *GridService) Begin(q Query) QueryID {
	q = s.normalise(q)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current++
	s.snapshot = Snapshot{
		ID:    s.current,
		State: StateLoading,
		Query: q,
	}

	log.Debug("Query started", "query_id", s.current, "user_id", q.UserID, "start_year", q.StartYear)
	return s.current
}

// Execute fetches and aggregates the data for a query previously registered with Begin.  The outcome is only applied
// when id is still the current query.  The returned snapshot is the state visible once Execute finishes, which may
// belong to a newer query.
func (s *GridService) Execute(ctx context.Context, id QueryID, q Query) Snapshot {
	q = s.normalise(q)
	outcome := s.fetch(ctx, id, q)
	s.apply(outcome)
	return s.Snapshot()
}

// Run begins q and executes it straight away
func (s *GridService) Run(ctx context.Context, q Query) (QueryID, Snapshot) {
	id := s.Begin(q)
	return id, s.Execute(ctx, id, q)
}

// Snapshot returns the current grid state
func (s *GridService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// IsCurrent reports whether id is the most recently begun query
func (s *GridService) IsCurrent(id QueryID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id == s.current
}

func (s *GridService) fetch(ctx context.Context, id QueryID, q Query) Snapshot {
	failed := func(err error) Snapshot {
		return Snapshot{ID: id, State: StateFailed, Query: q, Err: err, ErrMessage: FailureMessage(err)}
	}

	logger := log.With("query_id", id, "user_id", q.UserID)

	profile, err := s.profiles.GetUser(ctx, q.UserID)
	if err != nil {
		logger.Warn("Failed to fetch profile", "error", err)
		return failed(err)
	}

	records, err := s.collections.GetWatchedAnime(ctx, q.UserID)
	if err != nil {
		logger.Warn("Failed to fetch collection", "error", err)
		return failed(fmt.Errorf("failed to fetch collection: %w", err))
	}

	result := aggregate.Group(records, q.StartYear, s.CurrentYear())
	return Snapshot{ID: id, State: StateReady, Query: q, Profile: profile, Result: result}
}

// apply publishes outcome if it belongs to the current query
func (s *GridService) apply(outcome Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if outcome.ID != s.current {
		log.Info("Discarding stale query result", "query_id", outcome.ID, "current", s.current, "user_id", outcome.Query.UserID)
		return
	}

	s.snapshot = outcome
	if outcome.State == StateReady {
		log.Info("Grid ready", "query_id", outcome.ID, "user_id", outcome.Query.UserID, "total", outcome.Result.Total)
	}
}

func (s *GridService) normalise(q Query) Query {
	q.StartYear = aggregate.ClampStartYear(q.StartYear, s.CurrentYear())
	return q
}

// FailureMessage is the user facing text for a failed query
func FailureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return FallbackErrorMessage
	}
	return err.Error()
}
