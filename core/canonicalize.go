package core

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// canonicalCacheSize bounds the memoization cache below; frame-ID spaces in
// practice are small (hundreds of named links), so this comfortably avoids
// ever evicting a live entry while still bounding worst-case memory if a
// caller feeds it garbage.
const canonicalCacheSize = 4096

// Canonicalizer turns raw frame-ID strings into canonical form: a leading
// "/", with an optional configured prefix inserted before non-absolute IDs.
// Results are memoized in a bounded LRU cache since the same handful of
// frame IDs are resolved on every lookup.
//
// A Canonicalizer is safe for concurrent use; the underlying cache is
// internally synchronized.
type Canonicalizer struct {
	prefix string
	cache  *lru.Cache
}

// NewCanonicalizer builds a Canonicalizer that inserts prefix before any
// frame ID that doesn't already begin with "/". Per spec.md §9's open
// question, prefix should be empty unless configuration says otherwise —
// this constructor never supplies a non-empty default on its own.
func NewCanonicalizer(prefix string) *Canonicalizer {
	// lru.New only errors for a non-positive size, which canonicalCacheSize
	// never is, so the error is unreachable and safely ignored.
	cache, _ := lru.New(canonicalCacheSize)
	return &Canonicalizer{prefix: prefix, cache: cache}
}

// Canonicalize returns raw unchanged if it already begins with "/";
// otherwise it returns "/" + prefix + raw (prefix may be empty), recording
// whether the fallback was necessary so callers can emit a diagnostic.
// Returns ErrEmptyFrameID for the empty string.
func (c *Canonicalizer) Canonicalize(raw string) (id string, wasRaw bool, err error) {
	if raw == "" {
		return "", false, ErrEmptyFrameID
	}
	if cached, ok := c.cache.Get(raw); ok {
		entry := cached.(canonicalEntry)
		return entry.id, entry.wasRaw, nil
	}

	if strings.HasPrefix(raw, "/") {
		c.cache.Add(raw, canonicalEntry{id: raw, wasRaw: false})
		return raw, false, nil
	}

	id = "/" + c.prefix + raw
	c.cache.Add(raw, canonicalEntry{id: id, wasRaw: true})
	return id, true, nil
}

type canonicalEntry struct {
	id     string
	wasRaw bool
}
