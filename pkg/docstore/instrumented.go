package docstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hasan75/tourism-htt-server/pkg/metrics"
)

// Instrumented decorates a Store with per-operation latency metrics.
type Instrumented struct {
	Store
}

// WithMetrics wraps s so every call is observed in metrics.StoreOpDuration.
func WithMetrics(s Store) *Instrumented {
	return &Instrumented{Store: s}
}

func (i *Instrumented) InsertOne(ctx context.Context, collection string, doc bson.M) (res *InsertResult, err error) {
	defer func(start time.Time) { metrics.ObserveStoreOp("insert", collection, err, start) }(time.Now())
	return i.Store.InsertOne(ctx, collection, doc)
}

func (i *Instrumented) FindOne(ctx context.Context, collection string, filter bson.M) (doc bson.M, err error) {
	defer func(start time.Time) { metrics.ObserveStoreOp("find_one", collection, err, start) }(time.Now())
	return i.Store.FindOne(ctx, collection, filter)
}

func (i *Instrumented) Find(ctx context.Context, collection string, filter bson.M, page Page) (docs []bson.M, err error) {
	defer func(start time.Time) { metrics.ObserveStoreOp("find", collection, err, start) }(time.Now())
	return i.Store.Find(ctx, collection, filter, page)
}

func (i *Instrumented) Count(ctx context.Context, collection string, filter bson.M) (n int64, err error) {
	defer func(start time.Time) { metrics.ObserveStoreOp("count", collection, err, start) }(time.Now())
	return i.Store.Count(ctx, collection, filter)
}

func (i *Instrumented) UpdateOne(ctx context.Context, collection string, filter, update bson.M) (res *UpdateResult, err error) {
	defer func(start time.Time) { metrics.ObserveStoreOp("update", collection, err, start) }(time.Now())
	return i.Store.UpdateOne(ctx, collection, filter, update)
}

func (i *Instrumented) DeleteOne(ctx context.Context, collection string, filter bson.M) (res *DeleteResult, err error) {
	defer func(start time.Time) { metrics.ObserveStoreOp("delete", collection, err, start) }(time.Now())
	return i.Store.DeleteOne(ctx, collection, filter)
}
