// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Episode Library - these keys describe where episode files live and how they are recognized.
const (
	LibraryDir       = "library.dir"
	LibraryExtension = "library.extension"
)

// Progress Ledger - these keys configure the persistence of watch progress and playback positions.
const (
	LedgerDir = "ledger.dir"
)

// Media Playback - these keys maintain the state and configuration for the external video player.
const (
	Player             = "player.default"
	PlayerHwdec        = "player.hwdec"
	PlayerProfile      = "player.profile"
	PlayerEndThreshold = "player.end_threshold"
	PlayerPollInterval = "player.poll_interval"
)

// Media Probing - these keys configure the external duration probe.
const (
	ProbeBinary = "probe.binary"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIShowPositions = "tui.show_positions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
