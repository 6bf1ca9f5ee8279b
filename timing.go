// FILE: speechrules/prefs/timing.go
package prefs

import "time"

// Core timing constants for production use.
// These define the fundamental timing behavior of the watcher.
const (
	// File watching intervals (ordered by frequency)
	SpinWaitInterval    = 5 * time.Millisecond   // CPU-friendly busy-wait quantum
	MinPollInterval     = 100 * time.Millisecond // Hard floor for file stat polling
	ShutdownTimeout     = 100 * time.Millisecond // Graceful watcher termination window
	DefaultDebounce     = 500 * time.Millisecond // File change coalescence period
	DefaultPollInterval = 2 * time.Second        // Standard resource monitoring frequency
)

// Derived timing relationships for internal use.
const (
	// shutdownPollCycles defines how many spin-wait cycles comprise a shutdown timeout
	shutdownPollCycles = ShutdownTimeout / SpinWaitInterval // = 20 cycles
)
