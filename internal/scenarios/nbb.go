package scenarios

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/rules"
	"github.com/herohde/ichess/internal/scenario"
)

// DefaultNBBDataPath is where the data-backed NBB scenario looks for its
// trap file by default; callers can pass a different path to NBB20FromFile.
const DefaultNBBDataPath = "testdata/kNBB_20_3_2.5_23.txt"

// NBB20FromFile loads a precomputed B,B,N candidate set from a data file, an
// existence proof that two bishops plus a knight can trap a lone king under
// a bounded slider model. The file encodes absolute coordinates, so this
// scenario is anchored (TrackAbsKing=true).
//
// Move-bound conventions differ across the external tooling this file format
// originates from: one script uses an exclusive rider bound (step < bound),
// another an inclusive one (step <= bound). This scenario uses move_bound=22
// under this package's inclusive convention.
func NBB20FromFile(path string) (scenario.Scenario, error) {
	layout := chesskind.NewPieceLayout(false, 0, 0, 2, 1) // B, B, N
	r, err := rules.New(layout, 22)
	if err != nil {
		return scenario.Scenario{}, err
	}

	states, err := parseNBBTrapFile(path, layout, r)
	if err != nil {
		return scenario.Scenario{}, err
	}
	if len(states) == 0 {
		return scenario.Scenario{}, scenario.NewInvalidScenario("NBB trap file parsed to an empty set")
	}

	return scenario.Scenario{
		Name:         "nbb20_from_file",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: true,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  states[0],
		},
		Candidates: scenario.CandidateGeneration{
			Kind:   scenario.FromStates,
			States: states,
		},
		Domain:           AbsBoxDomain{All: true},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           nbbLimits(),
		CacheMode:        scenario.CacheBlackOnly,
		RemoveStalemates: true,
	}, nil
}

func nbbLimits() scenario.ResourceLimits {
	return scenario.ResourceLimits{
		MaxStates:       2_000_000,
		MaxEdges:        400_000_000,
		MaxCacheEntries: 250_000,
		MaxCachedMoves:  3_000_000,
		MaxRuntimeSteps: 500_000_000,
	}
}

func nbb7Limits() scenario.ResourceLimits {
	return scenario.ResourceLimits{
		MaxStates:       2_000_000,
		MaxEdges:        4_000_000_000,
		MaxCacheEntries: 250_000,
		MaxCachedMoves:  3_000_000,
		MaxRuntimeSteps: 4_000_000_000,
	}
}

// NBB7Generated reproduces the hand-tuned geometric generator from the
// original tooling verbatim: n=7, edge_size=3, knight_bound=2.5,
// move_bound=n+2. These constants have no documented closed-form
// derivation; they are parameters of this specific scenario, not part of
// the general core (see the Open Questions entry in DESIGN.md).
func NBB7Generated() scenario.Scenario {
	const (
		n           = 7
		edgeSize    = 3
		knightBound = 2.5
	)
	moveBound := int32(n + 2)

	layout := chesskind.NewPieceLayout(false, 0, 0, 2, 1) // B, B, N
	r, err := rules.New(layout, moveBound)
	if err != nil {
		panic(err)
	}

	states := generatePotentialNBBTraps(n, edgeSize, knightBound, layout, r)

	startPos := posFromCoords(layout, []core.Coord{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}})
	if !r.IsLegalPosition(startPos) {
		panic("scenarios: nbb7_generated internal start position is not legal")
	}

	return scenario.Scenario{
		Name:         "nbb7_generated",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: true,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, startPos),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:   scenario.FromStates,
			States: states,
		},
		Domain:           AbsBoxDomain{All: true},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           nbb7Limits(),
		CacheMode:        scenario.CacheBlackOnly,
		RemoveStalemates: true,
	}
}

func generatePotentialNBBTraps(n, edgeSize int32, knightBound float64, layout chesskind.PieceLayout, r rules.Rules) []scenario.State {
	if n < 1 || edgeSize < 0 || edgeSize > n {
		panic("scenarios: invalid nbb generator parameters")
	}

	var bishop1, bishop2 []core.Coord
	specialBishops := []core.Coord{
		{X: 1 - n, Y: 0}, {X: n - 1, Y: 0}, {X: 0, Y: 1 - n}, {X: 0, Y: n - 1},
	}

	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			if x+y == n+1 || x+y == -n-1 {
				bishop1 = append(bishop1, core.Coord{X: x, Y: y})
			}
			if x-y == n+1 || x-y == -n-1 {
				bishop2 = append(bishop2, core.Coord{X: x, Y: y})
			}
		}
	}
	bishop1 = append(bishop1, specialBishops...)
	bishop2 = append(bishop2, specialBishops...)

	type pair struct{ b1, b2 core.Coord }
	var allBishops, bishopsCorner []pair

	onBoundary := func(v int32) bool { return v == n || v == -n || v == n-1 || v == 1-n }
	onCorner := func(c core.Coord) bool { return c.X == n || c.X == -n || c.Y == n || c.Y == -n }

	for _, b1 := range bishop1 {
		b1Corner := onCorner(b1)
		for _, b2 := range bishop2 {
			if onBoundary(b1.X) || onBoundary(b1.Y) || onBoundary(b2.X) || onBoundary(b2.Y) {
				allBishops = append(allBishops, pair{b1, b2})
			}
			if b1Corner && onCorner(b2) {
				bishopsCorner = append(bishopsCorner, pair{b1, b2})
			}
		}
	}

	var knights []core.Coord
	kBound := n + 3
	for x := -kBound; x <= kBound; x++ {
		for y := -kBound; y <= kBound; y++ {
			c := core.Coord{X: x, Y: y}
			if l1Norm(c) <= kBound {
				knights = append(knights, c)
			}
		}
	}

	var edgeKings, centerKings []core.Coord
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			c := core.Coord{X: x, Y: y}
			l1 := l1Norm(c)
			switch {
			case n-edgeSize <= l1 && l1 <= n:
				edgeKings = append(edgeKings, c)
			case l1 < n-edgeSize:
				centerKings = append(centerKings, c)
			}
		}
	}

	var out []scenario.State
	seen := make(map[core.Position]struct{})

	pushState := func(absKing, knight, b1, b2 core.Coord) {
		squares := []core.Square{
			core.SquareFromCoord(b1.Sub(absKing)),
			core.SquareFromCoord(b2.Sub(absKing)),
			core.SquareFromCoord(knight.Sub(absKing)),
		}
		pos := core.NewPosition(squares)
		pos.Canonicalize(layout.IdenticalRuns())
		if !r.IsLegalPosition(pos) {
			return
		}
		if _, ok := seen[pos]; ok {
			return
		}
		seen[pos] = struct{}{}
		out = append(out, scenario.NewState(absKing, pos))
	}

	for _, k := range centerKings {
		for _, kn := range knights {
			if distKnightNorm(k, kn) < knightBound {
				for _, p := range bishopsCorner {
					pushState(k, kn, p.b1, p.b2)
				}
			}
		}
	}
	for _, k := range edgeKings {
		for _, kn := range knights {
			if distKnightNorm(k, kn) < knightBound {
				for _, p := range allBishops {
					pushState(k, kn, p.b1, p.b2)
				}
			}
		}
	}

	return out
}

func l1Norm(c core.Coord) int32 {
	return absInt32(c.X) + absInt32(c.Y)
}

func distKnightNorm(a, b core.Coord) float64 {
	return knightNorm(a.X-b.X, a.Y-b.Y)
}

// knightNorm is ported from the external trap-generation tooling: a custom
// metric used to bound candidate knight placements.
func knightNorm(dx, dy int32) float64 {
	r := math.Abs(float64(dx))
	s := math.Abs(float64(dy))
	mx, mn := math.Max(r, s), math.Min(r, s)
	if 2.0*mn < mx {
		return mx / 2.0
	}
	return (r + s) / 3.0
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// parseNBBTrapFile streams whitespace/comma-separated signed integers from
// path and groups them into 8-tuples: (king_x, king_y, knight_x, knight_y,
// bishop1_x, bishop1_y, bishop2_x, bishop2_y), converting each into a
// king-relative State.
func parseNBBTrapFile(path string, layout chesskind.PieceLayout, r rules.Rules) ([]scenario.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, scenario.NewIoError("nbb_read", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		// Treat commas as whitespace so "1,2" and "1 2" tokenize alike.
		for i, c := range data {
			if c == ',' {
				data[i] = ' '
			}
		}
		return bufio.ScanWords(data, atEOF)
	})
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []scenario.State
	var buf [8]int32
	n := 0

	for scanner.Scan() {
		token := scanner.Text()
		v, err := parseSignedInt(token)
		if err != nil {
			continue
		}
		buf[n] = v
		n++
		if n == 8 {
			kx, ky := buf[0], buf[1]
			nx, ny := buf[2], buf[3]
			b1x, b1y := buf[4], buf[5]
			b2x, b2y := buf[6], buf[7]

			absKing := core.Coord{X: kx, Y: ky}
			squares := []core.Square{
				core.SquareFromCoord(core.Coord{X: b1x - kx, Y: b1y - ky}),
				core.SquareFromCoord(core.Coord{X: b2x - kx, Y: b2y - ky}),
				core.SquareFromCoord(core.Coord{X: nx - kx, Y: ny - ky}),
			}
			pos := core.NewPosition(squares)
			pos.Canonicalize(layout.IdenticalRuns())

			if r.IsLegalPosition(pos) {
				out = append(out, scenario.NewState(absKing, pos))
			}
			n = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, scenario.NewIoError("nbb_read", path, err)
	}

	return out, nil
}

func parseSignedInt(token string) (int32, error) {
	v, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("nbb: not an integer token %q: %w", token, err)
	}
	return int32(v), nil
}
