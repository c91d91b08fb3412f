// Package scheduler provides embedded assets for the scheduler daemon.
//
// The root package exists solely to embed [config.default.yaml] via
// [DefaultConfigYAML]. The init command writes this file to the config path
// so a fresh checkout has something to start from.
package scheduler

import _ "embed"

// DefaultConfigYAML holds the raw bytes of config.default.yaml, embedded at
// build time. It is regenerated by cmd/genconfig.
//
//go:embed config.default.yaml
var DefaultConfigYAML []byte
