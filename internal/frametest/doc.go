// Package frametest builds synthetic frame graphs for tests: chains, stars,
// and forked trees of core.Frames with timestamped samples already
// inserted, so pathsearch and façade tests don't each hand-roll a registry.
package frametest
