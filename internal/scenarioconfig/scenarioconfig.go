// Package scenarioconfig loads additional named scenarios from a TOML file,
// the way frankkopp-FrankyGo's config package loads engine options: a plain
// struct decoded with BurntSushi/toml. The scenarios come back in a map of
// their own, separate from the Go-coded built-ins in internal/scenarios;
// nothing in this repository merges the two.
package scenarioconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/rules"
	"github.com/herohde/ichess/internal/scenario"
)

// file is the TOML document shape: a flat table of named scenario entries.
type file struct {
	Scenario map[string]scenarioEntry `toml:"scenario"`
}

type scenarioEntry struct {
	Layout    layoutEntry `toml:"layout"`
	Start     startEntry  `toml:"start"`
	MoveBound int32       `toml:"move_bound"`

	Candidates       string `toml:"candidates"`
	Bound            int32  `toml:"bound"`
	AllowCaptures    bool   `toml:"allow_captures"`
	WhiteCanPass     bool   `toml:"white_can_pass"`
	TrackAbsKing     bool   `toml:"track_abs_king"`
	RemoveStalemates bool   `toml:"remove_stalemates"`
	CacheMode        string `toml:"cache_mode"`
}

type layoutEntry struct {
	WhiteKing bool `toml:"white_king"`
	Queens    int  `toml:"queens"`
	Rooks     int  `toml:"rooks"`
	Bishops   int  `toml:"bishops"`
	Knights   int  `toml:"knights"`
}

type startEntry struct {
	ToMove    string    `toml:"to_move"`
	AbsKing   [2]int32  `toml:"abs_king"`
	Positions [][2]int32 `toml:"pieces"`
}

// Load reads path and returns the named scenarios it defines. It never
// touches internal/scenarios' built-ins; callers merge the two name spaces
// themselves (and should reject collisions, since a config file is meant to
// add scenarios, not silently shadow a seed one).
func Load(path string) (map[string]scenario.Scenario, error) {
	var doc file
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, scenario.NewIoError("scenarioconfig_load", path, err)
	}

	out := make(map[string]scenario.Scenario, len(doc.Scenario))
	for name, entry := range doc.Scenario {
		s, err := build(name, entry)
		if err != nil {
			return nil, err
		}
		out[name] = s
	}
	return out, nil
}

func build(name string, e scenarioEntry) (scenario.Scenario, error) {
	layout := chesskind.NewPieceLayout(e.Layout.WhiteKing, e.Layout.Queens, e.Layout.Rooks, e.Layout.Bishops, e.Layout.Knights)

	moveBound := e.MoveBound
	if moveBound <= 0 {
		moveBound = 1
	}
	r, err := rules.New(layout, moveBound)
	if err != nil {
		return scenario.Scenario{}, scenario.NewInvalidScenario("scenario %q: %v", name, err)
	}

	if len(e.Start.Positions) != layout.PieceCount() {
		return scenario.Scenario{}, scenario.NewInvalidScenario("scenario %q: start.pieces has %d entries, layout has %d slots", name, len(e.Start.Positions), layout.PieceCount())
	}
	squares := make([]core.Square, len(e.Start.Positions))
	for i, xy := range e.Start.Positions {
		squares[i] = core.SquareFromCoord(core.NewCoord(xy[0], xy[1]))
	}
	pos := core.NewPosition(squares)
	pos.Canonicalize(layout.IdenticalRuns())

	toMove, err := parseSide(e.Start.ToMove)
	if err != nil {
		return scenario.Scenario{}, scenario.NewInvalidScenario("scenario %q: %v", name, err)
	}

	candidates, err := buildCandidates(name, e)
	if err != nil {
		return scenario.Scenario{}, err
	}

	cacheMode, err := parseCacheMode(e.CacheMode)
	if err != nil {
		return scenario.Scenario{}, scenario.NewInvalidScenario("scenario %q: %v", name, err)
	}

	var domain scenario.Domain = scenario.AllDomain{}
	if candidates.Kind == scenario.InAbsoluteBox {
		domain = boxDomain{bound: candidates.Bound}
	}

	return scenario.Scenario{
		Name:         name,
		Rules:        r,
		WhiteCanPass: e.WhiteCanPass,
		TrackAbsKing: e.TrackAbsKing,
		Start: scenario.StartState{
			ToMove: toMove,
			State:  scenario.NewState(core.NewCoord(e.Start.AbsKing[0], e.Start.AbsKing[1]), pos),
		},
		Candidates:       candidates,
		Domain:           domain,
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           scenario.DefaultResourceLimits(),
		CacheMode:        cacheMode,
		RemoveStalemates: e.RemoveStalemates,
	}, nil
}

// boxDomain mirrors internal/scenarios.AbsBoxDomain without importing that
// package (which would make internal/scenarioconfig depend on every
// Go-coded built-in for no reason beyond this one predicate).
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

func buildCandidates(name string, e scenarioEntry) (scenario.CandidateGeneration, error) {
	switch e.Candidates {
	case "", "in_linf_bound":
		return scenario.CandidateGeneration{
			Kind:          scenario.InLinfBound,
			Bound:         e.Bound,
			AllowCaptures: e.AllowCaptures,
		}, nil
	case "in_absolute_box":
		if !e.TrackAbsKing {
			return scenario.CandidateGeneration{}, scenario.NewInvalidScenario("scenario %q: candidates=in_absolute_box requires track_abs_king=true", name)
		}
		return scenario.CandidateGeneration{
			Kind:          scenario.InAbsoluteBox,
			Bound:         e.Bound,
			AllowCaptures: e.AllowCaptures,
		}, nil
	default:
		return scenario.CandidateGeneration{}, scenario.NewInvalidScenario("scenario %q: unknown candidates mode %q (want in_linf_bound or in_absolute_box)", name, e.Candidates)
	}
}

func parseSide(v string) (scenario.Side, error) {
	switch v {
	case "", "black":
		return scenario.Black, nil
	case "white":
		return scenario.White, nil
	default:
		return scenario.Black, fmt.Errorf("start.to_move must be \"black\" or \"white\", got %q", v)
	}
}

func parseCacheMode(v string) (scenario.CacheMode, error) {
	switch v {
	case "", "none":
		return scenario.CacheNone, nil
	case "black_only":
		return scenario.CacheBlackOnly, nil
	case "both_bounded":
		return scenario.CacheBothBounded, nil
	default:
		return scenario.CacheNone, fmt.Errorf("cache_mode must be none, black_only or both_bounded, got %q", v)
	}
}
