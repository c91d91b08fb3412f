package config

import (
	"errors"
	"fmt"
)

// ErrMissingKey reports that a required key is absent from the config source.
var ErrMissingKey = errors.New("missing required key")

// LoadError reports that the configuration source could not be read or
// parsed, or lacks a required key.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValueError reports a key whose value parsed but is not acceptable.
type ValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Key, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }
