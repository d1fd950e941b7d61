// Package solution exports a solved scenario as a portable bundle (a
// manifest.json plus a dense binary blob) and loads it back for interactive
// replay, per spec.md §4.8/§6. Export recomputes the inescapable trap and its
// stay-in-trap strategy and, when ComputeTempo is set, the tempo trap and its
// tempo strategy; Load only deserialises — it never re-solves.
package solution

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/herohde/ichess/internal/buchi"
	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/rules"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/strategy"
	"github.com/herohde/ichess/internal/trap"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// ExportOptions customises Export beyond the scenario itself.
type ExportOptions struct {
	// Force overwrites an existing out_dir instead of failing.
	Force bool
	// ComputeTempo additionally solves and exports the Buchi tempo trap and
	// its strategy; if false, only the inescapable trap is exported.
	ComputeTempo bool
	// ViewBound overrides the manifest's recommended relative view bound.
	ViewBound lang.Optional[int32]
}

// Export solves s (trap, optionally tempo trap, and both strategies) and
// writes a bundle to outDir.
func Export(ctx context.Context, s scenario.Scenario, outDir string, opts ExportOptions, tracker *resources.Tracker) (*Bundle, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Start.ToMove != scenario.Black {
		return nil, scenario.NewInvalidScenario("solution export currently requires start.to_move == black")
	}

	if err := prepareOutputDir(outDir, opts.Force); err != nil {
		return nil, err
	}

	trapResult, err := trap.Compute(ctx, s, tracker)
	if err != nil {
		return nil, err
	}

	tempoTrap := map[core.Position]struct{}{}
	tempoStrategy := map[core.Position]core.Position{}
	if opts.ComputeTempo {
		tempoResult, strat, err := buchi.ComputeWithStrategy(ctx, s, trapResult.Trap, tracker)
		if err != nil {
			return nil, err
		}
		tempoTrap = tempoResult.Trap
		tempoStrategy = strat
	}

	trapStrategy, err := strategy.ExtractStayInTrap(ctx, s, trapResult.Trap, tracker)
	if err != nil {
		return nil, err
	}

	playStart, err := choosePlayStart(s, trapResult.Trap, tempoTrap)
	if err != nil {
		return nil, err
	}

	interner := newInterner()
	startID := interner.intern(playStart)

	trapSetIDs := make([]uint32, 0, len(trapResult.Trap))
	for p := range trapResult.Trap {
		trapSetIDs = append(trapSetIDs, interner.intern(scenario.State{Pos: p}))
	}

	transitions := make([]Transition, 0, len(trapResult.Trap))
	for b := range trapResult.Trap {
		bID := interner.mustID(scenario.State{Pos: b})
		var next [8]uint32
		for i := range next {
			next[i] = NoMove
		}

		for _, bm := range s.Rules.LegalBlackMovesWithDelta(b) {
			to := scenario.State{Pos: bm.Next}
			if s.Laws != nil && (!s.Laws.AllowBlackMove(scenario.State{Pos: b}, to, bm.Delta) || !s.Laws.AllowState(to)) {
				continue
			}
			dir, ok := DirIndex(bm.Delta)
			if !ok {
				continue
			}
			next[dir] = interner.intern(to)
		}

		transitions = append(transitions, Transition{StateID: bID, Next: next})
	}

	strategyTrap := make([]StrategyEntry, 0, len(trapStrategy))
	for w, b := range trapStrategy {
		strategyTrap = append(strategyTrap, StrategyEntry{
			WhiteID: interner.intern(scenario.State{Pos: w}),
			BlackID: interner.intern(scenario.State{Pos: b}),
		})
	}

	strategyTempo := make([]StrategyEntry, 0, len(tempoStrategy))
	for w, b := range tempoStrategy {
		strategyTempo = append(strategyTempo, StrategyEntry{
			WhiteID: interner.intern(scenario.State{Pos: w}),
			BlackID: interner.intern(scenario.State{Pos: b}),
		})
	}

	tempoSetIDs := make([]uint32, 0, len(tempoTrap))
	for p := range tempoTrap {
		tempoSetIDs = append(tempoSetIDs, interner.intern(scenario.State{Pos: p}))
	}

	recommendedBound := recommendedBoundFor(s, trapResult.Trap)
	if v, ok := opts.ViewBound.V(); ok {
		recommendedBound = v
	}

	manifest := Manifest{
		FormatVersion:   FormatVersion,
		CreatedUnixSecs: uint64(time.Now().Unix()),
		ScenarioName:    s.Name,
		Rules:           rulesManifestFromRules(s.Rules),
		Params: ParamsManifest{
			WhiteCanPass:     s.WhiteCanPass,
			TrackAbsKing:     s.TrackAbsKing,
			RemoveStalemates: s.RemoveStalemates,
		},
		Start: StartManifest{
			ToMove:  ManifestBlack,
			StateID: startID,
		},
		View: ViewManifest{
			DefaultMode:      ViewRelative,
			RecommendedBound: recommendedBound,
		},
		Counts: CountsManifest{
			States:        uint32(len(interner.states)),
			Trap:          uint32(len(trapSetIDs)),
			Tempo:         uint32(len(tempoSetIDs)),
			TrapStrategy:  uint32(len(strategyTrap)),
			TempoStrategy: uint32(len(strategyTempo)),
		},
		Files: FilesManifest{DataBin: dataFilename},
	}

	data := Data{
		States:        interner.states,
		TrapSetIDs:    trapSetIDs,
		TempoSetIDs:   tempoSetIDs,
		Transitions:   transitions,
		StrategyTrap:  strategyTrap,
		StrategyTempo: strategyTempo,
	}

	if err := writeManifest(filepath.Join(outDir, manifestFilename), manifest); err != nil {
		return nil, err
	}
	if err := writeData(filepath.Join(outDir, manifest.Files.DataBin), s.Rules.Layout.PieceCount(), data); err != nil {
		return nil, err
	}

	logw.Infof(ctx, "solution export: scenario=%s states=%d trap=%d tempo=%d", s.Name, len(interner.states), len(trapSetIDs), len(tempoSetIDs))

	return &Bundle{Manifest: manifest, Data: data}, nil
}

// LoadedSolution is a deserialised bundle plus the convenience indices an
// interactive player needs.
type LoadedSolution struct {
	Manifest      Manifest
	Rules         rules.Rules
	States        []scenario.State
	IDOf          map[scenario.State]uint32
	TrapIDs       map[uint32]struct{}
	TempoIDs      map[uint32]struct{}
	Transitions   [][8]uint32
	StrategyTrap  map[uint32]uint32
	StrategyTempo map[uint32]uint32
}

// Load reads a bundle previously written by Export, without re-solving
// anything.
func Load(bundleDir string) (*LoadedSolution, error) {
	manifest, err := readManifest(filepath.Join(bundleDir, manifestFilename))
	if err != nil {
		return nil, err
	}
	if manifest.FormatVersion != FormatVersion {
		return nil, scenario.NewInvalidScenario("unsupported solution format_version %d (expected %d)", manifest.FormatVersion, FormatVersion)
	}

	r, err := rulesFromManifest(manifest.Rules)
	if err != nil {
		return nil, err
	}

	data, err := readData(filepath.Join(bundleDir, manifest.Files.DataBin), r.Layout.PieceCount())
	if err != nil {
		return nil, err
	}

	idOf := make(map[scenario.State]uint32, len(data.States))
	for i, st := range data.States {
		idOf[st] = uint32(i)
	}

	trapIDs := make(map[uint32]struct{}, len(data.TrapSetIDs))
	for _, id := range data.TrapSetIDs {
		trapIDs[id] = struct{}{}
	}
	tempoIDs := make(map[uint32]struct{}, len(data.TempoSetIDs))
	for _, id := range data.TempoSetIDs {
		tempoIDs[id] = struct{}{}
	}

	transitions := make([][8]uint32, len(data.States))
	for i := range transitions {
		for d := range transitions[i] {
			transitions[i][d] = NoMove
		}
	}
	for _, tr := range data.Transitions {
		if int(tr.StateID) >= len(transitions) {
			return nil, scenario.NewInvalidScenario("transition references out-of-range state_id %d", tr.StateID)
		}
		transitions[tr.StateID] = tr.Next
	}

	strategyTrap := make(map[uint32]uint32, len(data.StrategyTrap))
	for _, e := range data.StrategyTrap {
		strategyTrap[e.WhiteID] = e.BlackID
	}
	strategyTempo := make(map[uint32]uint32, len(data.StrategyTempo))
	for _, e := range data.StrategyTempo {
		strategyTempo[e.WhiteID] = e.BlackID
	}

	return &LoadedSolution{
		Manifest:      manifest,
		Rules:         r,
		States:        data.States,
		IDOf:          idOf,
		TrapIDs:       trapIDs,
		TempoIDs:      tempoIDs,
		Transitions:   transitions,
		StrategyTrap:  strategyTrap,
		StrategyTempo: strategyTempo,
	}, nil
}

type interner struct {
	states []scenario.State
	idOf   map[scenario.State]uint32
}

func newInterner() *interner {
	return &interner{idOf: make(map[scenario.State]uint32)}
}

func (n *interner) intern(s scenario.State) uint32 {
	if id, ok := n.idOf[s]; ok {
		return id
	}
	id := uint32(len(n.states))
	n.states = append(n.states, s)
	n.idOf[s] = id
	return id
}

func (n *interner) mustID(s scenario.State) uint32 {
	return n.idOf[s]
}

func prepareOutputDir(outDir string, force bool) error {
	if _, err := os.Stat(outDir); err == nil {
		if !force {
			return scenario.NewIoError("solution_export_create_dir", outDir, os.ErrExist)
		}
		if err := os.RemoveAll(outDir); err != nil {
			return scenario.NewIoError("solution_export_remove_dir", outDir, err)
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return scenario.NewIoError("solution_export_create_dir", outDir, err)
	}
	return nil
}

func writeManifest(path string, manifest Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return scenario.NewIoError("solution_export_manifest_create", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return scenario.NewIoError("solution_export_manifest_serialize", path, err)
	}
	return nil
}

func readManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, scenario.NewIoError("solution_load_manifest_open", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, scenario.NewIoError("solution_load_manifest_parse", path, err)
	}
	return m, nil
}

func rulesManifestFromRules(r rules.Rules) RulesManifest {
	var queens, rooks, bishops, knights uint16
	for _, k := range r.Layout.Kinds() {
		switch k {
		case chesskind.King:
		case chesskind.Queen:
			queens++
		case chesskind.Rook:
			rooks++
		case chesskind.Bishop:
			bishops++
		case chesskind.Knight:
			knights++
		}
	}

	_, hasWhiteKing := r.Layout.WhiteKingIndex()
	return RulesManifest{
		WhiteKing: hasWhiteKing,
		Queens:    queens,
		Rooks:     rooks,
		Bishops:   bishops,
		Knights:   knights,
		MoveBound: r.MoveBound,
	}
}

func pieceCountFromManifest(rm RulesManifest) int {
	n := int(rm.Queens) + int(rm.Rooks) + int(rm.Bishops) + int(rm.Knights)
	if rm.WhiteKing {
		n++
	}
	return n
}

func rulesFromManifest(rm RulesManifest) (rules.Rules, error) {
	layout := chesskind.NewPieceLayout(rm.WhiteKing, int(rm.Queens), int(rm.Rooks), int(rm.Bishops), int(rm.Knights))
	want := pieceCountFromManifest(rm)
	if layout.PieceCount() != want {
		return rules.Rules{}, scenario.NewInvalidScenario("layout piece_count %d mismatches manifest %d", layout.PieceCount(), want)
	}
	return rules.New(layout, rm.MoveBound)
}

func recommendedBoundFor(s scenario.Scenario, trapSet map[core.Position]struct{}) int32 {
	if s.Candidates.Kind == scenario.InLinfBound {
		return s.Candidates.Bound
	}

	var maxNorm int32
	for p := range trapSet {
		for _, sq := range p.Squares() {
			if sq.IsNone() {
				continue
			}
			if n := sq.Coord().ChebyshevNorm(); n > maxNorm {
				maxNorm = n
			}
		}
	}
	if maxNorm < 2 {
		maxNorm = 2
	}
	return maxNorm
}

func choosePlayStart(s scenario.Scenario, trapSet, tempoSet map[core.Position]struct{}) (scenario.State, error) {
	if len(trapSet) == 0 {
		return scenario.State{}, scenario.NewInvalidScenario("cannot export: inescapable trap is empty")
	}

	if _, ok := trapSet[s.Start.State.Pos]; ok {
		if hasLegalBlackMove(s, s.Start.State.Pos) {
			return s.Start.State, nil
		}
	}

	primary := tempoSet
	if len(primary) == 0 {
		primary = trapSet
	}
	for p := range primary {
		if hasLegalBlackMove(s, p) {
			return scenario.State{Pos: p}, nil
		}
	}

	for p := range trapSet {
		return scenario.State{Pos: p}, nil
	}
	return scenario.State{}, scenario.NewInvalidScenario("cannot export: inescapable trap is empty")
}

func hasLegalBlackMove(s scenario.Scenario, p core.Position) bool {
	return len(s.Rules.LegalBlackMoves(p)) > 0
}
