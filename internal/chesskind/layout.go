package chesskind

import "github.com/herohde/ichess/internal/core"

// PieceLayout is a fixed, predictable slot order: K, Q..., R..., B..., N...
// Identical-kind slots form contiguous runs, which is what lets a Position
// canonicalize itself by sorting within each run instead of tracking piece
// identity.
type PieceLayout struct {
	kinds          []PieceKind
	runs           []core.Run
	whiteKingIndex int // -1 if no white king slot
}

// NewPieceLayout builds a layout with an optional white king followed by the
// given counts of queens, rooks, bishops and knights, in that fixed order.
func NewPieceLayout(whiteKing bool, queens, rooks, bishops, knights int) PieceLayout {
	var kinds []PieceKind
	whiteKingIndex := -1
	if whiteKing {
		whiteKingIndex = 0
		kinds = append(kinds, King)
	}
	for i := 0; i < queens; i++ {
		kinds = append(kinds, Queen)
	}
	for i := 0; i < rooks; i++ {
		kinds = append(kinds, Rook)
	}
	for i := 0; i < bishops; i++ {
		kinds = append(kinds, Bishop)
	}
	for i := 0; i < knights; i++ {
		kinds = append(kinds, Knight)
	}

	return PieceLayout{
		kinds:          kinds,
		runs:           computeRuns(kinds),
		whiteKingIndex: whiteKingIndex,
	}
}

func (l PieceLayout) PieceCount() int {
	return len(l.kinds)
}

func (l PieceLayout) Kind(index int) PieceKind {
	return l.kinds[index]
}

func (l PieceLayout) Kinds() []PieceKind {
	return l.kinds
}

// IdenticalRuns returns the contiguous index ranges of interchangeable pieces.
func (l PieceLayout) IdenticalRuns() []core.Run {
	return l.runs
}

// WhiteKingIndex returns the slot index of the white king, if this layout has one.
func (l PieceLayout) WhiteKingIndex() (int, bool) {
	if l.whiteKingIndex < 0 {
		return 0, false
	}
	return l.whiteKingIndex, true
}

func computeRuns(kinds []PieceKind) []core.Run {
	if len(kinds) == 0 {
		return nil
	}

	var runs []core.Run
	start := 0
	for i := 1; i <= len(kinds); i++ {
		if i == len(kinds) || kinds[i] != kinds[start] {
			runs = append(runs, core.Run{Start: start, End: i})
			start = i
		}
	}
	return runs
}
