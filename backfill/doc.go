// Package backfill loads historical TransformStorage samples on demand from
// an external document store into a core.FrameRegistry, when a query needs
// a time that has already scrolled out of a TimeCache's retention window.
//
// The store is modeled after a MongoDB-shaped document collection: callers
// supply a Store (find, with a bson.M filter, sort, and limit) rather than a
// concrete driver, so the policy here is testable against a fake. Each
// document holds every edge sampled in one recorded cycle, so a single
// query can yield multiple TransformStorage samples. Malformed records are
// recovered locally, logged, and skipped; connectivity and timeout
// failures are surfaced to the caller after a bounded retry.
package backfill
