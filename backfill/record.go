package backfill

import (
	"errors"
	"math"
	"time"

	"github.com/katalvlaran/tfcache/core"
	"github.com/katalvlaran/tfcache/internal/logging"
)

// Sentinel errors for record validation. They are recovered locally by
// toSamples, which logs the reason and counts the record as skipped; they
// never escape Backfill.
var (
	ErrMalformedRecord  = errors.New("backfill: malformed tf record")
	ErrEmptyFrameInDoc  = errors.New("backfill: parent or child frame ID is empty")
	ErrSelfTransformDoc = errors.New("backfill: parent and child frame ID are identical")
)

// vectorDoc is the bson shape of a Vector3.
type vectorDoc struct {
	X float64 `bson:"x"`
	Y float64 `bson:"y"`
	Z float64 `bson:"z"`
}

// quaternionDoc is the bson shape of a Quaternion.
type quaternionDoc struct {
	X float64 `bson:"x"`
	Y float64 `bson:"y"`
	Z float64 `bson:"z"`
	W float64 `bson:"w"`
}

// headerDoc is the "header" object every tf record carries: the parent
// frame ID and the wall-clock stamp the sample was published with.
type headerDoc struct {
	FrameID string   `bson:"frame_id"`
	Stamp   stampDoc `bson:"stamp"`
}

// stampDoc is a Mongo extended-JSON date, decoded from its "$date"
// ISO-8601 string rather than a native bson datetime: the document store
// preserves nanosecond precision in the textual form, which bson.DateTime
// (millisecond resolution) would truncate.
type stampDoc struct {
	Date string `bson:"$date"`
}

// transformFieldDoc is the nested "transform" object holding the rigid
// transform itself.
type transformFieldDoc struct {
	Translation vectorDoc     `bson:"translation"`
	Rotation    quaternionDoc `bson:"rotation"`
}

// tfRecordDoc is one element of a tfDocument's "transforms" array: a single
// parent→child sample.
type tfRecordDoc struct {
	Header       headerDoc         `bson:"header"`
	ChildFrameID string            `bson:"child_frame_id"`
	Transform    transformFieldDoc `bson:"transform"`
}

// tfDocument is one document in the tf collection: a single recorded
// cycle, holding every edge sampled at that instant. Recorded is the
// document's own wall-clock stamp, distinct from (and usually close to)
// each member record's header.stamp.
type tfDocument struct {
	Recorded   stampDoc      `bson:"__recorded"`
	Transforms []tfRecordDoc `bson:"transforms"`
}

// toSamples resolves every record in d against reg, skipping (and logging)
// any that fail validation. A record's failure does not affect its
// siblings: each array element is resolved independently. skipped counts
// records rejected before a TransformStorage could even be built, so
// callers can fold it into Result.Skipped alongside Insert failures.
func (d tfDocument) toSamples(reg *core.FrameRegistry, log logging.Logger) (samples []core.TransformStorage, skipped int) {
	samples = make([]core.TransformStorage, 0, len(d.Transforms))
	for _, rec := range d.Transforms {
		sample, err := rec.toSample(reg, log)
		if err != nil {
			log.Debug("backfill: skipping malformed tf record",
				logging.Err(err),
				logging.String("parent", rec.Header.FrameID),
				logging.String("child", rec.ChildFrameID),
			)
			skipped++
			continue
		}
		samples = append(samples, sample)
	}

	return samples, skipped
}

// toSample converts one decoded tf record into a TransformStorage, resolving
// (and creating, on first reference) the parent and child frames in reg via
// its canonicalizer. It validates the record before resolving any frame:
// callers must not let a malformed record create a spurious Frame. Every
// canonicalization that required adding the registry's frame prefix is
// logged, matching the diagnostic the façade emits for query-time lookups.
func (r tfRecordDoc) toSample(reg *core.FrameRegistry, log logging.Logger) (core.TransformStorage, error) {
	parentRaw := r.Header.FrameID
	childRaw := r.ChildFrameID
	if parentRaw == "" || childRaw == "" {
		return core.TransformStorage{}, ErrEmptyFrameInDoc
	}

	parentID, parentWasRaw, err := reg.Canonicalize(parentRaw)
	if err != nil {
		return core.TransformStorage{}, ErrMalformedRecord
	}
	childID, childWasRaw, err := reg.Canonicalize(childRaw)
	if err != nil {
		return core.TransformStorage{}, ErrMalformedRecord
	}
	if parentID == childID {
		return core.TransformStorage{}, ErrSelfTransformDoc
	}
	if parentWasRaw {
		log.Info("backfill: canonicalized frame ID", logging.String("raw", parentRaw), logging.String("canonical", parentID))
	}
	if childWasRaw {
		log.Info("backfill: canonicalized frame ID", logging.String("raw", childRaw), logging.String("canonical", childID))
	}

	rot := core.Quaternion{X: r.Transform.Rotation.X, Y: r.Transform.Rotation.Y, Z: r.Transform.Rotation.Z, W: r.Transform.Rotation.W}
	if err := rot.Validate(); err != nil {
		return core.TransformStorage{}, ErrMalformedRecord
	}
	if !finiteVector(r.Transform.Translation) {
		return core.TransformStorage{}, ErrMalformedRecord
	}

	ts, err := parseStampNS(r.Header.Stamp.Date)
	if err != nil {
		return core.TransformStorage{}, ErrMalformedRecord
	}

	parent := reg.ResolveOrInsert(parentID)
	child := reg.ResolveOrInsert(childID)

	return core.TransformStorage{
		Parent:      parent,
		Child:       child,
		Translation: core.Vector3{X: r.Transform.Translation.X, Y: r.Transform.Translation.Y, Z: r.Transform.Translation.Z},
		Rotation:    rot,
		TimestampNS: ts,
	}, nil
}

// parseStampNS parses an ISO-8601 "$date" string into a nanosecond
// timestamp. RFC3339Nano is tried first since it's what the store actually
// writes; the other layouts cover a hand-edited or third-party-exported
// document.
func parseStampNS(s string) (int64, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixNano(), nil
		}
	}

	return 0, ErrMalformedRecord
}

func finiteVector(v vectorDoc) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
