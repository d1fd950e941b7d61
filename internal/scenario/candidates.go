package scenario

// CandidateGenerationKind selects how a solver builds its candidate set.
type CandidateGenerationKind int

const (
	// InLinfBound enumerates all canonical placements within an L-infinity
	// bound in king-relative coordinates.
	InLinfBound CandidateGenerationKind = iota
	// InAbsoluteBox enumerates all canonical placements within an absolute
	// bounding box for both the king anchor and every piece. Requires
	// Scenario.TrackAbsKing.
	InAbsoluteBox
	// FromStates uses an explicitly supplied candidate list (file-backed or
	// geometry-backed scenarios).
	FromStates
	// ReachableFromStart explores states reachable from Scenario.Start via
	// BFS, bounded by MaxQueue.
	ReachableFromStart
)

// CandidateGeneration describes how to build the candidate set for a trap
// search. Exactly the fields relevant to Kind are meaningful.
type CandidateGeneration struct {
	Kind CandidateGenerationKind

	// InLinfBound / InAbsoluteBox
	Bound         int32
	AllowCaptures bool

	// FromStates
	States []State

	// ReachableFromStart
	MaxQueue int
}

// CacheMode selects a solver's move-caching policy.
type CacheMode int

const (
	// CacheNone performs no caching (lower memory, more recomputation).
	CacheNone CacheMode = iota
	// CacheBlackOnly caches only black moves.
	CacheBlackOnly
	// CacheBothBounded caches both black and white moves, bounded by
	// ResourceLimits.
	CacheBothBounded
)
