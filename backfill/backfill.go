package backfill

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/katalvlaran/tfcache/core"
	"github.com/katalvlaran/tfcache/internal/logging"
	"go.mongodb.org/mongo-driver/bson"
)

// Sentinel errors surfaced to query callers; see tfcache.ErrorKind for how
// the root façade maps these onto its own error taxonomy.
var (
	ErrStoreUnavailable = errors.New("backfill: document store unavailable")
	ErrTimeout          = errors.New("backfill: document store query timed out")
	ErrNoData           = errors.New("backfill: no documents found in window")
)

const (
	// DefaultWindow is how far behind t a backfill query searches, per
	// spec.md §6's "t-W to t+lookahead" policy; both ends of the
	// __recorded range are inclusive.
	DefaultWindow = 5 * time.Second

	// defaultLookahead tolerates documents recorded slightly after t, to
	// cover clock skew between the publisher and the query.
	defaultLookahead = 1 * time.Second

	// defaultBatchLimit bounds a single Find call; Backfill stops after its
	// first batch regardless of whether more history exists.
	defaultBatchLimit = 256

	defaultMaxElapsed = 2 * time.Second
)

// Option configures a Backfill call.
type Option func(*options)

type options struct {
	window     time.Duration
	lookahead  time.Duration
	batchLimit int64
	maxElapsed time.Duration
	log        logging.Logger
}

func defaultOptions() options {
	return options{
		window:     DefaultWindow,
		lookahead:  defaultLookahead,
		batchLimit: defaultBatchLimit,
		maxElapsed: defaultMaxElapsed,
		log:        logging.NopLogger{},
	}
}

// WithWindow overrides the default lookback window.
func WithWindow(w time.Duration) Option {
	return func(o *options) { o.window = w }
}

// WithBatchLimit overrides the default single-batch document cap.
func WithBatchLimit(n int64) Option {
	return func(o *options) { o.batchLimit = n }
}

// WithMaxElapsed overrides the retry budget given to transient store
// errors before StoreUnavailable/Timeout is surfaced.
func WithMaxElapsed(d time.Duration) Option {
	return func(o *options) { o.maxElapsed = d }
}

// WithLogger installs a structured logger for per-record diagnostics
// (malformed-record skips, frame-ID canonicalization fallbacks). The
// default is logging.NopLogger, matching every other component's default.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// Result summarizes one Backfill call.
type Result struct {
	// Inserted is the number of records that validated and were inserted.
	Inserted int

	// Skipped is the number of records rejected by validation or by the
	// registry's Insert (e.g. older than the retention window). These are
	// never fatal: a rejected record does not abort the batch.
	Skipped int
}

// Backfill queries store for tf documents recorded near t whose transforms
// array contains an edge for frameID (already canonicalized by the
// caller), inserting every valid record into reg, and stops after the
// first batch. Transient store errors are retried with exponential backoff
// up to maxElapsed before being wrapped as ErrStoreUnavailable or
// ErrTimeout.
func Backfill(ctx context.Context, store Store, reg *core.FrameRegistry, frameID string, t int64, opts ...Option) (Result, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	lo := time.Unix(0, t-cfg.window.Nanoseconds()).UTC()
	hi := time.Unix(0, t+cfg.lookahead.Nanoseconds()).UTC()
	filter := bson.M{
		"__recorded": bson.M{"$gte": lo, "$lte": hi},
		"transforms": bson.M{"$elemMatch": bson.M{"child_frame_id": frameID}},
	}

	var docs []tfDocument
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = cfg.maxElapsed
	b := backoff.WithContext(eb, ctx)
	operation := func() error {
		found, err := fetchBatch(ctx, store, filter, cfg.batchLimit)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(ErrTimeout)
			}
			return err // retried
		}
		docs = found
		return nil
	}

	if err := backoff.Retry(operation, b); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return Result{}, errors.Unwrap(perm)
		}

		return Result{}, ErrStoreUnavailable
	}

	if len(docs) == 0 {
		return Result{}, ErrNoData
	}

	var res Result
	for _, doc := range docs {
		samples, skipped := doc.toSamples(reg, cfg.log)
		res.Skipped += skipped
		for _, sample := range samples {
			if err := reg.Insert(sample); err != nil {
				res.Skipped++
				continue
			}
			res.Inserted++
		}
	}

	return res, nil
}

func fetchBatch(ctx context.Context, store Store, filter bson.M, limit int64) ([]tfDocument, error) {
	cur, err := store.Find(ctx, filter, WithSortDescendingRecordedAt(), WithLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []tfDocument
	for cur.Next(ctx) {
		var d tfDocument
		if err := cur.Decode(&d); err != nil {
			// A single corrupt wire record fails the whole batch decode in
			// the real driver; surface it as a retryable store error rather
			// than silently truncating the batch.
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
