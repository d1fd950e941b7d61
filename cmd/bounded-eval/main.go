// bounded-eval reads a JSON scenario spec, builds an absolute-box scenario
// from it, and prints universe/move/mate counts as JSON — primarily a
// parity/cross-check harness.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/seekerror/build"

	"github.com/herohde/ichess/internal/bounded"
	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/rules"
	"github.com/herohde/ichess/internal/scenario"
)

var version = build.NewVersion(0, 1, 0)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "bounded-eval %v\n\nUsage: bounded-eval <scenario.json>\n", version)
	}
}

type pieceCounts struct {
	WhiteKing bool `json:"white_king"`
	Queens    int  `json:"queens"`
	Rooks     int  `json:"rooks"`
	Bishops   int  `json:"bishops"`
	Knights   int  `json:"knights"`
}

type scenarioSpec struct {
	Bound            int32       `json:"bound"`
	MoveBound        int32       `json:"move_bound"`
	MoveBoundMode    string      `json:"move_bound_mode"`
	Pieces           pieceCounts `json:"pieces"`
	AllowCaptures    bool        `json:"allow_captures"`
	WhiteCanPass     bool        `json:"white_can_pass"`
	RemoveStalemates *bool       `json:"remove_stalemates"`
}

type inputFile struct {
	Scenario scenarioSpec `json:"scenario"`
}

func buildScenario(spec scenarioSpec) (scenario.Scenario, error) {
	if spec.Bound < 0 {
		return scenario.Scenario{}, fmt.Errorf("bound must be >= 0")
	}
	if spec.MoveBound < 1 {
		return scenario.Scenario{}, fmt.Errorf("move_bound must be >= 1")
	}

	layout := chesskind.NewPieceLayout(spec.Pieces.WhiteKing, spec.Pieces.Queens, spec.Pieces.Rooks, spec.Pieces.Bishops, spec.Pieces.Knights)

	effectiveMoveBound := spec.MoveBound
	switch spec.MoveBoundMode {
	case "", "inclusive":
		// effectiveMoveBound already correct
	case "exclusive":
		if spec.MoveBound < 2 {
			return scenario.Scenario{}, fmt.Errorf("move_bound_mode=exclusive requires move_bound >= 2")
		}
		effectiveMoveBound = spec.MoveBound - 1
	default:
		return scenario.Scenario{}, fmt.Errorf("move_bound_mode must be \"inclusive\" or \"exclusive\", got %q", spec.MoveBoundMode)
	}

	r, err := rules.New(layout, effectiveMoveBound)
	if err != nil {
		return scenario.Scenario{}, err
	}

	start := core.NewPosition(capturedSquares(layout.PieceCount()))
	start.Canonicalize(layout.IdenticalRuns())

	removeStalemates := true
	if spec.RemoveStalemates != nil {
		removeStalemates = *spec.RemoveStalemates
	}

	return scenario.Scenario{
		Name:         "bounded_eval",
		Rules:        r,
		WhiteCanPass: spec.WhiteCanPass,
		TrackAbsKing: true,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, start),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:          scenario.InAbsoluteBox,
			Bound:         spec.Bound,
			AllowCaptures: spec.AllowCaptures,
		},
		Domain:           boxDomain{bound: spec.Bound},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           scenario.DefaultResourceLimits(),
		CacheMode:        scenario.CacheBothBounded,
		RemoveStalemates: removeStalemates,
	}, nil
}

// boxDomain mirrors internal/scenarios.AbsBoxDomain; duplicated here (rather
// than imported) so this command depends only on the core scenario plumbing,
// not on the built-in scenario registry.
type boxDomain struct {
	bound int32
}

func (d boxDomain) Inside(s scenario.State) bool {
	if !s.AbsKing.InBox(d.bound) {
		return false
	}
	for _, sq := range s.Pos.Squares() {
		if sq.IsNone() {
			continue
		}
		if !s.AbsKing.Add(sq.Coord()).InBox(d.bound) {
			return false
		}
	}
	return true
}

// capturedSquares returns a position with every piece off the board, the
// same convention bounded-eval's universe enumeration starts from before
// placing pieces at each candidate square.
func capturedSquares(n int) []core.Square {
	out := make([]core.Square, n)
	for i := range out {
		out[i] = core.NoneSquare
	}
	return out
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	var input inputFile
	if err := json.Unmarshal(data, &input); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid JSON in %s: %v\n", path, err)
		os.Exit(2)
	}

	s, err := buildScenario(input.Scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid scenario spec: %v\n", err)
		os.Exit(2)
	}

	tracker := resources.New(s.Limits)
	counts, err := bounded.Compute(ctx, s, tracker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Evaluation failed: %v\n", err)
		os.Exit(1)
	}

	out := map[string]any{
		"scenario": input.Scenario,
		"counts":   counts,
	}
	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to serialize output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(enc))
}
