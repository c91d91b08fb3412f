// Windows termination signals.
//
// Windows does not deliver SIGTERM. The Go runtime maps CTRL_C_EVENT,
// CTRL_BREAK_EVENT and console-close events to os.Interrupt.

//go:build windows

package lifecycle

import "os"

// terminationSignals are the signals that clear the running flag.
var terminationSignals = []os.Signal{os.Interrupt}
