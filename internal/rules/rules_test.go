package rules_test

import (
	"testing"

	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeRooks(t *testing.T, squares ...core.Coord) (rules.Rules, core.Position) {
	t.Helper()

	r, err := rules.New(chesskind.NewPieceLayout(false, 0, 3, 0, 0), 1)
	require.NoError(t, err)

	sq := make([]core.Square, len(squares))
	for i, c := range squares {
		sq[i] = core.SquareFromCoord(c)
	}
	pos := core.NewPosition(sq)
	pos.Canonicalize(r.Layout.IdenticalRuns())
	return r, pos
}

func TestIsLegalPosition(t *testing.T) {
	r, _ := threeRooks(t)

	tests := []struct {
		name string
		pos  core.Position
		want bool
	}{
		{"legal", core.NewPosition([]core.Square{
			core.SquareFromCoord(core.Coord{X: 2, Y: 2}),
			core.SquareFromCoord(core.Coord{X: -2, Y: 2}),
			core.SquareFromCoord(core.Coord{X: 2, Y: -2}),
		}), true},
		{"piece on origin", core.NewPosition([]core.Square{
			core.SquareFromCoord(core.Coord{X: 0, Y: 0}),
			core.NoneSquare,
			core.NoneSquare,
		}), false},
		{"duplicate squares", core.NewPosition([]core.Square{
			core.SquareFromCoord(core.Coord{X: 1, Y: 1}),
			core.SquareFromCoord(core.Coord{X: 1, Y: 1}),
			core.NoneSquare,
		}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IsLegalPosition(tt.pos))
		})
	}
}

func TestWhiteKingCannotBeAdjacentToOrigin(t *testing.T) {
	r, err := rules.New(chesskind.NewPieceLayout(true, 0, 0, 0, 0), 1)
	require.NoError(t, err)

	adjacent := core.NewPosition([]core.Square{core.SquareFromCoord(core.Coord{X: 1, Y: 0})})
	assert.False(t, r.IsLegalPosition(adjacent))

	faraway := core.NewPosition([]core.Square{core.SquareFromCoord(core.Coord{X: 3, Y: 3})})
	assert.True(t, r.IsLegalPosition(faraway))
}

func TestRookAttackIsBlockedByAnotherPiece(t *testing.T) {
	r, err := rules.New(chesskind.NewPieceLayout(false, 0, 2, 0, 0), 1)
	require.NoError(t, err)

	blocked := core.NewPosition([]core.Square{
		core.SquareFromCoord(core.Coord{X: 0, Y: 3}),
		core.SquareFromCoord(core.Coord{X: 0, Y: 1}),
	})
	assert.False(t, r.IsAttacked(core.Origin, blocked), "closer rook should block the farther one")

	unblocked := core.NewPosition([]core.Square{
		core.SquareFromCoord(core.Coord{X: 0, Y: 3}),
		core.SquareFromCoord(core.Coord{X: 3, Y: 3}),
	})
	assert.True(t, r.IsAttacked(core.Origin, unblocked))
}

func TestLegalWhiteMovesRespectsMoveBound(t *testing.T) {
	r, err := rules.New(chesskind.NewPieceLayout(false, 0, 1, 0, 0), 2)
	require.NoError(t, err)

	pos := core.NewPosition([]core.Square{core.SquareFromCoord(core.Coord{X: 5, Y: 5})})
	moves := r.LegalWhiteMoves(pos, false)

	for _, m := range moves {
		sq := m.Get(0)
		require.False(t, sq.IsNone())
		c := sq.Coord()
		// Moved at most move_bound squares along a rook direction from (5,5).
		dx, dy := absInt(c.X-5), absInt(c.Y-5)
		assert.True(t, (dx == 0 && dy <= 2) || (dy == 0 && dx <= 2))
	}
}

func TestLegalWhiteMovesIncludesPassWhenAllowed(t *testing.T) {
	r, err := rules.New(chesskind.NewPieceLayout(false, 0, 1, 0, 0), 1)
	require.NoError(t, err)

	pos := core.NewPosition([]core.Square{core.SquareFromCoord(core.Coord{X: 2, Y: 2})})

	withPass := r.LegalWhiteMoves(pos, true)
	withoutPass := r.LegalWhiteMoves(pos, false)
	assert.Equal(t, len(withoutPass)+1, len(withPass))
	assert.True(t, withPass[0].Get(0) == pos.Get(0))
}

func TestLegalBlackMovesRecentersAndCaptures(t *testing.T) {
	r, pos := threeRooks(t, core.Coord{X: 1, Y: 0}, core.Coord{X: -3, Y: 3}, core.Coord{X: 3, Y: -3})

	moves := r.LegalBlackMovesWithDelta(pos)
	for _, m := range moves {
		if m.Delta == (core.Coord{X: 1, Y: 0}) {
			// Black captures the rook on (1,0); the slot becomes NONE.
			found := false
			for _, sq := range m.Next.Squares() {
				found = found || sq.IsNone()
			}
			assert.True(t, found)
		}
	}
}

func TestTwoRooksCanNeverCheckmateOnAnUnboundedBoard(t *testing.T) {
	// With no board edge to hem the king in, two rooks alone never cover every
	// flight square, so none of these two-rook positions is a mate.
	r, err := rules.New(chesskind.NewPieceLayout(false, 0, 2, 0, 0), 1)
	require.NoError(t, err)

	for _, pos := range [][2]core.Coord{
		{{X: 0, Y: 2}, {X: 2, Y: 0}},
		{{X: 0, Y: 1}, {X: 0, Y: -1}},
		{{X: 3, Y: 0}, {X: -3, Y: 0}},
	} {
		p := core.NewPosition([]core.Square{core.SquareFromCoord(pos[0]), core.SquareFromCoord(pos[1])})
		if !r.IsLegalPosition(p) {
			continue
		}
		assert.False(t, r.IsCheckmate(p))
	}
}

func absInt(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
