// Package monitoring holds shared observability plumbing for the overlay
// runtime and playback loop. The pure engine never logs.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by hosts that route diagnostics elsewhere (or silenced in
// tests with a no-op).
var Logf func(format string, v ...interface{}) = log.Printf

// Discard silences Logf. Returns a restore function for deferred use.
func Discard() (restore func()) {
	prev := Logf
	Logf = func(string, ...interface{}) {}
	return func() { Logf = prev }
}
