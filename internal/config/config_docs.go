package config

import "tools.zach/dev/scheduler/internal/paths"

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated config.default.yaml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps YAML field paths (dot-separated, e.g. "log.max_size_mb")
// to their [FieldDoc] entries.
var ConfigDocs = map[string]FieldDoc{
	"log_level": {
		Comment: "Minimum log severity. Required.\nOne of: trace, debug, info, warn, error, critical, off.\nAn unrecognized value aborts startup.\nSCHEDULER_LOG_LEVEL overrides this value at startup.",
		Alternatives: []string{
			"log_level: debug",
			"log_level: off",
		},
	},

	"log": {
		Comment: "Log destination and rotation.",
	},
	"log.file": {
		Comment: "Log file path. Leave unset to log to stderr.",
		Alternatives: []string{
			"file: " + paths.LogFile,
		},
	},
	"log.max_size_mb": {
		Comment: "Rotate the log file once it reaches this size (MB). Ignored for stderr.",
	},
	"log.max_backups": {
		Comment: "Number of rotated log files to keep.",
	},
}
