package chesskind_test

import (
	"testing"

	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestPieceLayout_IdenticalRuns(t *testing.T) {
	tests := []struct {
		name     string
		layout   chesskind.PieceLayout
		count    int
		runs     []core.Run
		kingSlot int
		hasKing  bool
	}{
		{
			name:     "king rooks bishops",
			layout:   chesskind.NewPieceLayout(true, 0, 3, 2, 0),
			count:    6,
			runs:     []core.Run{{Start: 0, End: 1}, {Start: 1, End: 4}, {Start: 4, End: 6}},
			kingSlot: 0,
			hasKing:  true,
		},
		{
			name:   "no white king, two queens",
			layout: chesskind.NewPieceLayout(false, 2, 0, 0, 0),
			count:  2,
			runs:   []core.Run{{Start: 0, End: 2}},
		},
		{
			name:   "empty layout",
			layout: chesskind.NewPieceLayout(false, 0, 0, 0, 0),
			count:  0,
			runs:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.count, tt.layout.PieceCount())
			assert.Equal(t, tt.runs, tt.layout.IdenticalRuns())

			idx, ok := tt.layout.WhiteKingIndex()
			assert.Equal(t, tt.hasKing, ok)
			if ok {
				assert.Equal(t, tt.kingSlot, idx)
			}
		})
	}
}
