package tfcache

import (
	"context"
	"errors"

	"github.com/katalvlaran/tfcache/backfill"
	"github.com/katalvlaran/tfcache/core"
	"github.com/katalvlaran/tfcache/internal/config"
	"github.com/katalvlaran/tfcache/internal/logging"
	"github.com/katalvlaran/tfcache/internal/metrics"
	"github.com/katalvlaran/tfcache/pathsearch"
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Core at construction time.
type Option func(*Core)

// WithLogger installs a structured logger; the default is logging.NopLogger.
func WithLogger(l logging.Logger) Option {
	return func(c *Core) { c.log = l }
}

// WithMetrics installs a Prometheus recorder; the default is a Recorder
// registered against a private prometheus.Registry (see NewCore).
func WithMetrics(m *metrics.Recorder) Option {
	return func(c *Core) { c.metrics = m }
}

// Core is the tfcache façade: it orchestrates a FrameRegistry, on-demand
// Backfill, and bidirectional PathSearch behind lookup_transform,
// transform_point, and transform_pose (spec.md §2's "TransformCore",
// §4.5's composition pipeline).
//
// A Core is safe for concurrent use; its FrameRegistry and the caches it
// owns provide the actual synchronization (spec.md §5). Per spec.md §9's
// "process-wide singleton → context object" note, Core is an explicit value
// rather than a package-level global — callers wanting a shared instance
// hold one themselves.
type Core struct {
	reg     *core.FrameRegistry
	store   backfill.Store
	cfg     config.Config
	log     logging.Logger
	metrics *metrics.Recorder
}

// NewCore builds a Core backed by store for on-demand Backfill, tuned by
// cfg's retention/prefix/window/timeout knobs. store may be nil when the
// caller never expects a cache miss to trigger backfill, e.g. an entirely
// pre-seeded registry in tests.
//
// The FrameRegistry itself is constructed here, from cfg.Retention (the Δ
// every TimeCache keeps) and cfg.FramePrefix (applied to a raw frame ID
// lacking a leading "/") — callers who need to seed or inspect it directly
// (tests, CLI tools) reach it via Registry().
//
// The default metrics Recorder is registered against a private
// prometheus.Registry, not prometheus.DefaultRegisterer: multiple Cores
// (e.g. one per test) must not collide trying to register the same
// collector names globally. Callers who want metrics exposed process-wide
// pass WithMetrics(metrics.NewRecorder()) explicitly.
func NewCore(store backfill.Store, cfg config.Config, opts ...Option) *Core {
	c := &Core{
		reg:     core.NewFrameRegistry(cfg.Retention.Nanoseconds(), cfg.FramePrefix),
		store:   store,
		cfg:     cfg,
		log:     logging.NopLogger{},
		metrics: metrics.NewRecorderWith(prometheus.NewRegistry()),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Registry returns the FrameRegistry Core constructed from cfg, so callers
// can seed it directly (tests) or inspect it (tooling) without Core
// exposing every FrameRegistry method itself.
func (c *Core) Registry() *core.FrameRegistry { return c.reg }

// LookupTransform returns the rigid transform mapping points expressed in
// source into target, evaluated at t (spec.md §4.5, §6.3).
func (c *Core) LookupTransform(ctx context.Context, target, source string, t int64) (StampedTransform, error) {
	targetID, targetWasRaw, err := c.reg.Canonicalize(target)
	if err != nil {
		return StampedTransform{}, newError(KindNotConnected, target, source, err)
	}
	sourceID, sourceWasRaw, err := c.reg.Canonicalize(source)
	if err != nil {
		return StampedTransform{}, newError(KindNotConnected, target, source, err)
	}
	if targetWasRaw {
		c.log.Info("canonicalized frame ID", logging.String("raw", target), logging.String("canonical", targetID))
	}
	if sourceWasRaw {
		c.log.Info("canonicalized frame ID", logging.String("raw", source), logging.String("canonical", sourceID))
	}

	// Identity short-circuit (spec.md §4.5): no registry lookup needed, and
	// this holds even for a frame never otherwise referenced.
	if targetID == sourceID {
		return StampedTransform{
			Rotation:    core.IdentityQuaternion,
			TimestampNS: t,
			TargetFrame: targetID,
			SourceFrame: sourceID,
		}, nil
	}

	targetHandle := c.reg.ResolveOrInsert(targetID)
	sourceHandle := c.reg.ResolveOrInsert(sourceID)

	if err := c.ensureAvailable(ctx, targetID, targetHandle, t); err != nil {
		return StampedTransform{}, err
	}
	if err := c.ensureAvailable(ctx, sourceID, sourceHandle, t); err != nil {
		return StampedTransform{}, err
	}

	result, err := pathsearch.Search(c.reg, sourceHandle, targetHandle, t)
	if err != nil {
		c.metrics.ObserveLookupError(KindNotConnected.String())
		return StampedTransform{}, newError(KindNotConnected, targetID, sourceID, err)
	}
	c.metrics.ObserveSearchCost(result.Cost)

	return c.compose(sourceHandle, result, t, targetID, sourceID), nil
}

// LookupTransformDualTime computes target_T_source bridged through a fixed
// frame observed at two different times: A = lookup(fixed, source,
// tSource), B = lookup(target, fixed, tTarget), result = B ∘ A (spec.md
// §4.5's dual-time variant). If either sub-lookup fails, the whole call
// fails with that sub-lookup's error.
func (c *Core) LookupTransformDualTime(ctx context.Context, target string, tTarget int64, source string, tSource int64, fixed string) (StampedTransform, error) {
	a, err := c.LookupTransform(ctx, fixed, source, tSource)
	if err != nil {
		return StampedTransform{}, err
	}
	b, err := c.LookupTransform(ctx, target, fixed, tTarget)
	if err != nil {
		return StampedTransform{}, err
	}

	// Parent/Child handles are irrelevant to the arithmetic Compose performs
	// here (StampedTransform only carries canonical frame *names*); the
	// output's TargetFrame/SourceFrame are set explicitly below instead of
	// trusting whatever zero-value handles these carry.
	aTS := core.TransformStorage{Translation: a.Translation, Rotation: a.Rotation, TimestampNS: tSource}
	bTS := core.TransformStorage{Translation: b.Translation, Rotation: b.Rotation, TimestampNS: tTarget}
	r := aTS.Compose(bTS)

	return StampedTransform{
		Translation: r.Translation,
		Rotation:    r.Rotation,
		TimestampNS: tTarget,
		TargetFrame: b.TargetFrame,
		SourceFrame: a.SourceFrame,
	}, nil
}

// TransformPoint applies LookupTransform(target, in.Frame, in.TimestampNS)
// to in.Point, stamping the result with target and in's timestamp.
func (c *Core) TransformPoint(ctx context.Context, target string, in PointStamped) (PointStamped, error) {
	t, err := c.LookupTransform(ctx, target, in.Frame, in.TimestampNS)
	if err != nil {
		return PointStamped{}, err
	}

	out := t.Rotation.Rotate(vectorOf(in.Point)).Add(t.Translation)

	return PointStamped{Point: point3Of(out), Frame: t.TargetFrame, TimestampNS: in.TimestampNS}, nil
}

// TransformPointDualTime is TransformPoint's dual-time variant, bridging
// through fixed at (in.TimestampNS, tTarget).
func (c *Core) TransformPointDualTime(ctx context.Context, target string, tTarget int64, in PointStamped, fixed string) (PointStamped, error) {
	t, err := c.LookupTransformDualTime(ctx, target, tTarget, in.Frame, in.TimestampNS, fixed)
	if err != nil {
		return PointStamped{}, err
	}

	out := t.Rotation.Rotate(vectorOf(in.Point)).Add(t.Translation)

	return PointStamped{Point: point3Of(out), Frame: t.TargetFrame, TimestampNS: tTarget}, nil
}

// TransformPose applies LookupTransform(target, in.Frame, in.TimestampNS) to
// both the position and orientation of in.Pose. The input orientation is
// validated before any lookup is attempted.
func (c *Core) TransformPose(ctx context.Context, target string, in PoseStamped) (PoseStamped, error) {
	if err := in.Pose.Orientation.Validate(); err != nil {
		c.metrics.ObserveLookupError(KindInvalidQuaternion.String())
		return PoseStamped{}, newError(KindInvalidQuaternion, target, in.Frame, err)
	}

	t, err := c.LookupTransform(ctx, target, in.Frame, in.TimestampNS)
	if err != nil {
		return PoseStamped{}, err
	}

	return PoseStamped{Pose: applyPose(t, in.Pose), Frame: t.TargetFrame, TimestampNS: in.TimestampNS}, nil
}

// TransformPoseDualTime is TransformPose's dual-time variant, bridging
// through fixed at (in.TimestampNS, tTarget).
func (c *Core) TransformPoseDualTime(ctx context.Context, target string, tTarget int64, in PoseStamped, fixed string) (PoseStamped, error) {
	if err := in.Pose.Orientation.Validate(); err != nil {
		c.metrics.ObserveLookupError(KindInvalidQuaternion.String())
		return PoseStamped{}, newError(KindInvalidQuaternion, target, in.Frame, err)
	}

	t, err := c.LookupTransformDualTime(ctx, target, tTarget, in.Frame, in.TimestampNS, fixed)
	if err != nil {
		return PoseStamped{}, err
	}

	return PoseStamped{Pose: applyPose(t, in.Pose), Frame: t.TargetFrame, TimestampNS: tTarget}, nil
}

func applyPose(t StampedTransform, p Pose) Pose {
	outPos := t.Rotation.Rotate(vectorOf(p.Position)).Add(t.Translation)
	outRot := t.Rotation.Mul(p.Orientation)

	return Pose{Position: point3Of(outPos), Orientation: outRot}
}

func vectorOf(p Point3) core.Vector3 { return core.Vector3{X: p.X, Y: p.Y, Z: p.Z} }

func point3Of(v core.Vector3) Point3 { return Point3{X: v.X, Y: v.Y, Z: v.Z} }

// compose folds a PathSearch result into a single rigid transform per
// spec.md §4.5: starting from the identity at source, each inverse-leg
// entry (source-nearest first) is composed in directly, then each
// forward-leg entry (meet-nearest first) is composed in inverted. The
// result's timestamp is always t, overriding whatever boundary-clamped
// timestamp an individual edge sample carried.
func (c *Core) compose(sourceHandle core.FrameHandle, result *pathsearch.Result, t int64, targetID, sourceID string) StampedTransform {
	r := core.TransformStorage{
		Rotation:    core.IdentityQuaternion,
		TimestampNS: t,
		Parent:      sourceHandle,
		Child:       sourceHandle,
	}
	for _, entry := range result.Inverse {
		r = r.Compose(entry)
	}
	for _, entry := range result.Forward {
		r = r.Compose(entry.Inverse())
	}

	return StampedTransform{
		Translation: r.Translation,
		Rotation:    r.Rotation,
		TimestampNS: t,
		TargetFrame: targetID,
		SourceFrame: sourceID,
	}
}

// ensureAvailable consults frameID's TimeCaches for t; if none is in range,
// it runs Backfill under the configured store timeout. Per spec.md §4.8,
// Timeout is surfaced as a query failure; StoreUnavailable and NoData
// degrade the lookup to whatever in-memory data already exists, leaving
// PathSearch to fail with NotConnected/NoData on its own if that's
// insufficient.
func (c *Core) ensureAvailable(ctx context.Context, frameID string, handle core.FrameHandle, t int64) error {
	if frame, ok := c.reg.Get(handle); ok && frame.AnyInBufferRange(t) {
		c.metrics.ObserveCacheHit()
		return nil
	}
	c.metrics.ObserveCacheMiss()

	if c.store == nil {
		return nil
	}

	bctx, cancel := context.WithTimeout(ctx, c.cfg.StoreTimeout)
	defer cancel()

	res, err := backfill.Backfill(bctx, c.store, c.reg, frameID, t,
		backfill.WithWindow(c.cfg.BackfillWindow),
		backfill.WithMaxElapsed(c.cfg.MaxElapsedRetry),
		backfill.WithLogger(c.log),
	)
	c.metrics.ObserveBackfill(res.Inserted, res.Skipped)

	switch {
	case errors.Is(err, backfill.ErrTimeout):
		c.metrics.ObserveLookupError(KindTimeout.String())
		return newError(KindTimeout, frameID, "", err)
	case errors.Is(err, backfill.ErrStoreUnavailable):
		c.log.Error("backfill: store unavailable, degrading to in-memory data", err, logging.String("frame", frameID))
		return nil
	case errors.Is(err, backfill.ErrNoData):
		c.log.Debug("backfill: no documents found in window", logging.String("frame", frameID), logging.Int64("t", t))
		return nil
	case err != nil:
		c.log.Error("backfill: unexpected error", err, logging.String("frame", frameID))
		return nil
	}

	return nil
}
