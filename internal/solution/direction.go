package solution

import "github.com/herohde/ichess/internal/core"

// directionLabels is the fixed key-layout the bundle format encodes king
// steps against: index i corresponds to directionDeltas[i] and is labelled
// directionLabels[i] for an interactive player (a QWEADZXC keypad around the
// resting hand).
var directionLabels = [8]byte{'q', 'w', 'e', 'a', 'd', 'z', 'x', 'c'}

var directionDeltas = [8]core.Coord{
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// DirectionLabels returns the fixed key-layout labels, index-aligned with
// DeltaFromDirIndex.
func DirectionLabels() [8]byte {
	return directionLabels
}

// DirIndex returns the fixed king-step index for delta, or false if delta is
// not a unit king step.
func DirIndex(delta core.Coord) (int, bool) {
	for i, d := range directionDeltas {
		if d == delta {
			return i, true
		}
	}
	return 0, false
}

// DirIndexFromKey maps an interactive player's keypress to a direction
// index.
func DirIndexFromKey(key byte) (int, bool) {
	for i, l := range directionLabels {
		if l == key {
			return i, true
		}
	}
	return 0, false
}

// DeltaFromDirIndex is the inverse of DirIndex.
func DeltaFromDirIndex(idx int) core.Coord {
	if idx < 0 || idx >= len(directionDeltas) {
		return core.Origin
	}
	return directionDeltas[idx]
}
