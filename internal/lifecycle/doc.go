// Package lifecycle runs the daemon's cooperative start/run/shutdown cycle.
//
// A [Controller] owns a single running flag. [Controller.Initialize] loads
// the configuration and builds the logger, [Controller.InstallSignalHandlers]
// arranges for SIGINT and SIGTERM to clear the flag, and [Controller.Run]
// idles in fixed-interval sleeps until it observes the flag cleared:
//
//	STARTING -> RUNNING -> STOPPING -> STOPPED
//	    \
//	     -> FATAL (configuration could not be loaded)
//
// The flag only ever moves from true to false. A stop request is honoured
// after at most one pending sleep; repeated requests are no-ops.
package lifecycle
