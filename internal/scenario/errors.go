package scenario

import "fmt"

// ResourceCounts are the running counters tracked during a search, surfaced
// in error messages so callers can see how close a run came to its limits.
type ResourceCounts struct {
	States       uint64
	Edges        uint64
	CacheEntries uint64
	CachedMoves  uint64
	RuntimeSteps uint64
}

// SearchErrorKind tags the structured error variants a solver can return.
type SearchErrorKind int

const (
	InvalidScenario SearchErrorKind = iota
	LimitExceeded
	AllocationFailed
	IoError
)

// SearchError is the structured error type every solver package returns.
// Exactly one of its fields is meaningful, selected by Kind.
type SearchError struct {
	Kind SearchErrorKind

	// InvalidScenario
	Reason string

	// LimitExceeded
	Stage    string
	Metric   string
	Limit    uint64
	Observed uint64
	Counts   ResourceCounts

	// AllocationFailed
	Structure string

	// Io
	Path string
	Err  error
}

func (e *SearchError) Error() string {
	switch e.Kind {
	case InvalidScenario:
		return fmt.Sprintf("invalid scenario: %s", e.Reason)
	case LimitExceeded:
		return fmt.Sprintf(
			"limit exceeded at %s: %s (limit=%d, observed=%d); counts(states=%d, edges=%d, cache_entries=%d, cached_moves=%d, runtime_steps=%d)",
			e.Stage, e.Metric, e.Limit, e.Observed,
			e.Counts.States, e.Counts.Edges, e.Counts.CacheEntries, e.Counts.CachedMoves, e.Counts.RuntimeSteps,
		)
	case AllocationFailed:
		return fmt.Sprintf(
			"allocation failed at %s for %s; counts(states=%d, edges=%d, cache_entries=%d, cached_moves=%d, runtime_steps=%d)",
			e.Stage, e.Structure,
			e.Counts.States, e.Counts.Edges, e.Counts.CacheEntries, e.Counts.CachedMoves, e.Counts.RuntimeSteps,
		)
	case IoError:
		return fmt.Sprintf("io error at %s for %s: %v", e.Stage, e.Path, e.Err)
	default:
		return "unknown search error"
	}
}

func (e *SearchError) Unwrap() error {
	if e.Kind == IoError {
		return e.Err
	}
	return nil
}

func NewInvalidScenario(reasonFmt string, args ...any) *SearchError {
	return &SearchError{Kind: InvalidScenario, Reason: fmt.Sprintf(reasonFmt, args...)}
}

func NewLimitExceeded(stage, metric string, limit, observed uint64, counts ResourceCounts) *SearchError {
	return &SearchError{Kind: LimitExceeded, Stage: stage, Metric: metric, Limit: limit, Observed: observed, Counts: counts}
}

func NewAllocationFailed(stage, structure string, counts ResourceCounts) *SearchError {
	return &SearchError{Kind: AllocationFailed, Stage: stage, Structure: structure, Counts: counts}
}

func NewIoError(stage, path string, err error) *SearchError {
	return &SearchError{Kind: IoError, Stage: stage, Path: path, Err: err}
}
