package backfill

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Store is the document-store dependency backfill needs. A production
// implementation wraps a *mongo.Collection's Find method; tests supply a
// fake that satisfies the same shape.
type Store interface {
	Find(ctx context.Context, filter bson.M, opts ...FindOption) (Cursor, error)
}

// Cursor iterates a Store query's result set, mirroring mongo.Cursor's
// surface narrowly enough to avoid depending on the live driver's cursor
// internals in tests.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(v interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// FindOption configures a Store.Find call.
type FindOption func(*findOptions)

type findOptions struct {
	sortDescendingRecordedAt bool
	limit                    int64
}

// WithSortDescendingRecordedAt orders results newest-recorded-first.
func WithSortDescendingRecordedAt() FindOption {
	return func(o *findOptions) { o.sortDescendingRecordedAt = true }
}

// WithLimit caps the number of documents a Find call returns.
func WithLimit(n int64) FindOption {
	return func(o *findOptions) { o.limit = n }
}

// ResolveFindOptions applies opts over the zero value, for Store
// implementations translating FindOption into their own driver's options.
func ResolveFindOptions(opts ...FindOption) (sortDescendingRecordedAt bool, limit int64) {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o.sortDescendingRecordedAt, o.limit
}
