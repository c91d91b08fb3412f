// Package paths centralizes file and directory names used across the project.
package paths

import "path/filepath"

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Working directory layout.
const (
	ConfigDir         = "config"
	ConfigFile        = "default.yaml"
	DefaultConfigFile = "config.default.yaml"
	LogFile           = "scheduler.log"
	BinaryName        = "scheduler"
)

// EnvPrefix namespaces every environment variable the daemon reads.
const EnvPrefix = "SCHEDULER"

// ///////////////////////////////////////////////
// Layout
// ///////////////////////////////////////////////

// Layout provides path construction methods rooted at a working directory.
// The zero value is rooted at the current directory.
type Layout struct {
	Root string
}

// ConfigDir returns the full path to the config directory.
func (l Layout) ConfigDir() string { return filepath.Join(l.root(), ConfigDir) }

// Config returns the full path to the default config file.
func (l Layout) Config() string { return filepath.Join(l.root(), ConfigDir, ConfigFile) }

// DefaultConfig returns the path of the generated default config embedded
// into the binary.
func (l Layout) DefaultConfig() string { return filepath.Join(l.root(), DefaultConfigFile) }

func (l Layout) root() string {
	if l.Root == "" {
		return "."
	}
	return l.Root
}
