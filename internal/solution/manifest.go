package solution

// FormatVersion is the bundle format version stamped into both manifest.json
// and data.bin; Load refuses to read a bundle with a mismatched version.
const FormatVersion uint32 = 1

const (
	manifestFilename = "manifest.json"
	dataFilename     = "data.bin"
)

// dataMagic is the fixed 8-byte header identifying a data.bin file.
var dataMagic = [8]byte{'I', 'C', 'H', 'S', 'O', 'L', '0', '1'}

// ViewMode is the bundle's recommended rendering frame for an interactive
// player.
type ViewMode string

const (
	ViewRelative ViewMode = "relative"
	ViewAbsolute ViewMode = "absolute"
)

// ManifestSide names whose turn it is, for the manifest's human-readable
// start descriptor.
type ManifestSide string

const (
	ManifestBlack ManifestSide = "black"
	ManifestWhite ManifestSide = "white"
)

// RulesManifest records the fixed material and move bound as plain counts,
// independent of any particular Go layout representation.
type RulesManifest struct {
	WhiteKing bool  `json:"white_king"`
	Queens    uint16 `json:"queens"`
	Rooks     uint16 `json:"rooks"`
	Bishops   uint16 `json:"bishops"`
	Knights   uint16 `json:"knights"`
	MoveBound int32  `json:"move_bound"`
}

// ParamsManifest records the scenario flags that change solver semantics.
type ParamsManifest struct {
	WhiteCanPass     bool `json:"white_can_pass"`
	TrackAbsKing     bool `json:"track_abs_king"`
	RemoveStalemates bool `json:"remove_stalemates"`
}

// ViewManifest tells an interactive player how to render the board by
// default.
type ViewManifest struct {
	DefaultMode      ViewMode `json:"default_mode"`
	RecommendedBound int32    `json:"recommended_bound"`
}

// CountsManifest is a quick-glance summary of the bundle's data tables.
type CountsManifest struct {
	States        uint32 `json:"states"`
	Trap          uint32 `json:"trap"`
	Tempo         uint32 `json:"tempo"`
	TrapStrategy  uint32 `json:"trap_strategy"`
	TempoStrategy uint32 `json:"tempo_strategy"`
}

// FilesManifest names the companion binary data file.
type FilesManifest struct {
	DataBin string `json:"data_bin"`
}

// StartManifest identifies the state a player should begin from.
type StartManifest struct {
	ToMove  ManifestSide `json:"to_move"`
	StateID uint32       `json:"state_id"`
}

// Manifest is the human-readable half of an exported bundle.
type Manifest struct {
	FormatVersion   uint32         `json:"format_version"`
	CreatedUnixSecs uint64         `json:"created_unix_secs"`
	ScenarioName    string         `json:"scenario_name"`
	Rules           RulesManifest  `json:"rules"`
	Params          ParamsManifest `json:"params"`
	Start           StartManifest  `json:"start"`
	View            ViewManifest   `json:"view"`
	Counts          CountsManifest `json:"counts"`
	Files           FilesManifest  `json:"files"`
}
