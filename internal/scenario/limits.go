package scenario

// ResourceLimits bounds memory/time consumption during a search. These are
// not exact byte limits, but correlate strongly with allocation size.
type ResourceLimits struct {
	MaxStates       uint64
	MaxEdges        uint64
	MaxCacheEntries uint64
	MaxCachedMoves  uint64
	MaxRuntimeSteps uint64
}

// DefaultResourceLimits mirrors the defaults used throughout the reference
// implementation this model is drawn from.
func DefaultResourceLimits() ResourceLimits {
	return ResourceLimits{
		MaxStates:       2_000_000,
		MaxEdges:        50_000_000,
		MaxCacheEntries: 250_000,
		MaxCachedMoves:  15_000_000,
		MaxRuntimeSteps: 200_000_000,
	}
}
