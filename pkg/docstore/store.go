// Package docstore is the document-store client used by every repository.
//
// Documents are schema-less bson.M values grouped into named collections.
// The Store interface mirrors the handful of operations the gateway needs and
// returns acknowledged results shaped the way the store driver reports them,
// so handlers can echo them to callers unchanged:
//
//	res, err := store.InsertOne(ctx, "products", doc)
//	// → {"acknowledged":true,"insertedId":"65f1c0..."}
//
// Two implementations exist: Mongo (production) and Memory (local runs and
// tests). Both honour the same filter and update subset.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the key under which every document carries its identifier.
const IDField = "_id"

// ErrInvalidID is returned when an identifier is not a 24-char hex ObjectID.
var ErrInvalidID = errors.New("docstore: invalid document id")

// Store is the set of single-call operations the gateway performs.
//
// Filters are equality matches on top-level fields. Updates support the
// "$set" operator only.
type Store interface {
	InsertOne(ctx context.Context, collection string, doc bson.M) (*InsertResult, error)
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error)
	Find(ctx context.Context, collection string, filter bson.M, page Page) ([]bson.M, error)
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
	UpdateOne(ctx context.Context, collection string, filter, update bson.M) (*UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (*DeleteResult, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Page is a skip/limit window. The zero value means "everything".
type Page struct {
	Skip  int64
	Limit int64
}

// InsertResult acknowledges a single insert.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult acknowledges a single update.
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// DeleteResult acknowledges a single delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// ParseID converts a hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// ByID builds the filter that selects one document by its hex identifier.
func ByID(hex string) (bson.M, error) {
	id, err := ParseID(hex)
	if err != nil {
		return nil, err
	}
	return bson.M{IDField: id}, nil
}

// Set wraps fields in a "$set" update document.
func Set(fields bson.M) bson.M {
	return bson.M{"$set": fields}
}
