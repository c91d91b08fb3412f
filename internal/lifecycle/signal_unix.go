// Unix/Darwin termination signals.
//
// SIGINT is sent by an interactive Ctrl+C and SIGTERM by process managers
// (systemd, launchd) and container runtimes requesting a graceful stop.

//go:build !windows

package lifecycle

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminationSignals are the signals that clear the running flag.
var terminationSignals = []os.Signal{unix.SIGINT, unix.SIGTERM}
