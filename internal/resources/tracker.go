// Package resources tracks the approximate memory/time budgets a solver run
// is allowed to consume, surfacing overruns as structured scenario.SearchError
// values instead of letting a combinatorial search OOM or spin forever.
package resources

import "github.com/herohde/ichess/internal/scenario"

// Tracker accumulates ResourceCounts against a Scenario's ResourceLimits.
// It carries no global state: one Tracker is created per solver run and
// discarded at the end, per the "scoped resources" design of this model.
type Tracker struct {
	limits scenario.ResourceLimits
	counts scenario.ResourceCounts
}

func New(limits scenario.ResourceLimits) *Tracker {
	return &Tracker{limits: limits}
}

func (t *Tracker) Counts() scenario.ResourceCounts {
	return t.counts
}

func (t *Tracker) BumpStates(stage string, delta uint64) error {
	return t.bump(stage, "states", delta, t.limits.MaxStates, &t.counts.States)
}

func (t *Tracker) BumpEdges(stage string, delta uint64) error {
	return t.bump(stage, "edges", delta, t.limits.MaxEdges, &t.counts.Edges)
}

func (t *Tracker) BumpCacheEntries(stage string, delta uint64) error {
	return t.bump(stage, "cache_entries", delta, t.limits.MaxCacheEntries, &t.counts.CacheEntries)
}

func (t *Tracker) DecCacheEntries(delta uint64) {
	t.counts.CacheEntries = satSub(t.counts.CacheEntries, delta)
}

func (t *Tracker) BumpCachedMoves(stage string, delta uint64) error {
	return t.bump(stage, "cached_moves", delta, t.limits.MaxCachedMoves, &t.counts.CachedMoves)
}

func (t *Tracker) DecCachedMoves(delta uint64) {
	t.counts.CachedMoves = satSub(t.counts.CachedMoves, delta)
}

func (t *Tracker) BumpSteps(stage string, delta uint64) error {
	return t.bump(stage, "runtime_steps", delta, t.limits.MaxRuntimeSteps, &t.counts.RuntimeSteps)
}

func (t *Tracker) bump(stage, metric string, delta, limit uint64, field *uint64) error {
	*field = satAdd(*field, delta)
	if *field > limit {
		return scenario.NewLimitExceeded(stage, metric, limit, *field, t.counts)
	}
	return nil
}

// Reserve checks, without allocating, whether growing structure to
// projectedTotal entries would exceed limit; Go slices and maps
// grow transparently and expose no fallible reservation API, so this is the
// idiomatic stand-in for the original's try_reserve guards: call it before a
// bulk append/insert and bail out with AllocationFailed instead of letting
// the runtime allocate unboundedly.
func (t *Tracker) Reserve(stage, structure string, projectedTotal, limit uint64) error {
	if projectedTotal > limit {
		return scenario.NewAllocationFailed(stage, structure, t.counts)
	}
	return nil
}

func satAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
