package solution

import "github.com/herohde/ichess/internal/scenario"

// NoMove marks a direction slot in a Transition as "no legal move".
const NoMove uint32 = 0xFFFFFFFF

// Transition is the fixed 8-direction move table for one black-to-move
// state, indexed by DirIndex/DeltaFromDirIndex.
type Transition struct {
	StateID uint32
	Next    [8]uint32
}

// StrategyEntry is one (white-to-move state id, chosen black-to-move state
// id) pair.
type StrategyEntry struct {
	WhiteID uint32
	BlackID uint32
}

// Data is the dense table half of an exported bundle, the direct image of
// data.bin.
type Data struct {
	States        []scenario.State
	TrapSetIDs    []uint32
	TempoSetIDs   []uint32
	Transitions   []Transition
	StrategyTrap  []StrategyEntry
	StrategyTempo []StrategyEntry
}

// Bundle is a freshly exported solution: the manifest plus its data.
type Bundle struct {
	Manifest Manifest
	Data     Data
}
