package tfcache

// nsPerSecond is the scale factor between the wire/CLI time format (integer
// POSIX seconds, spec.md §6.3) and the nanosecond timestamps used
// internally by every other component.
const nsPerSecond = 1_000_000_000

// SecondsToNanos converts an integer POSIX-seconds timestamp, as accepted at
// the CLI boundary, to the nanosecond timestamp every internal operation
// expects.
func SecondsToNanos(sec int64) int64 { return sec * nsPerSecond }

// NanosToSeconds truncates an internal nanosecond timestamp down to integer
// POSIX seconds for the wire/CLI boundary.
func NanosToSeconds(ns int64) int64 { return ns / nsPerSecond }
