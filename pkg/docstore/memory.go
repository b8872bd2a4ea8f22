package docstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicateID is returned by Memory when an insert reuses an existing _id.
var ErrDuplicateID = errors.New("docstore: duplicate _id")

// Memory is an in-process Store. Documents keep insertion order, which is the
// "natural order" listings and pagination observe.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]bson.M)}
}

func (m *Memory) InsertOne(_ context.Context, collection string, doc bson.M) (*InsertResult, error) {
	stored := cloneDoc(doc)
	if _, ok := stored[IDField]; !ok {
		stored[IDField] = primitive.NewObjectID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.collections[collection] {
		if valuesEqual(existing[IDField], stored[IDField]) {
			return nil, fmt.Errorf("docstore: insert %s: %w", collection, ErrDuplicateID)
		}
	}
	m.collections[collection] = append(m.collections[collection], stored)

	return &InsertResult{Acknowledged: true, InsertedID: stored[IDField]}, nil
}

func (m *Memory) FindOne(_ context.Context, collection string, filter bson.M) (bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			return cloneDoc(doc), nil
		}
	}
	return nil, nil
}

func (m *Memory) Find(_ context.Context, collection string, filter bson.M, page Page) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]bson.M, 0)
	var skipped int64
	for _, doc := range m.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		if skipped < page.Skip {
			skipped++
			continue
		}
		if page.Limit > 0 && int64(len(docs)) >= page.Limit {
			break
		}
		docs = append(docs, cloneDoc(doc))
	}
	return docs, nil
}

func (m *Memory) Count(_ context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

// UpdateOne applies a "$set" update to the first matching document. As with
// the real store, re-setting identical values matches without modifying.
func (m *Memory) UpdateOne(_ context.Context, collection string, filter, update bson.M) (*UpdateResult, error) {
	fields, err := setFields(update)
	if err != nil {
		return nil, fmt.Errorf("docstore: update %s: %w", collection, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	res := &UpdateResult{Acknowledged: true}
	for _, doc := range m.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		res.MatchedCount = 1

		if id, ok := fields[IDField]; ok && !valuesEqual(id, doc[IDField]) {
			return nil, fmt.Errorf("docstore: update %s: field _id is immutable", collection)
		}

		changed := false
		for k, v := range fields {
			if old, ok := doc[k]; ok && valuesEqual(old, v) {
				continue
			}
			doc[k] = cloneValue(v)
			changed = true
		}
		if changed {
			res.ModifiedCount = 1
		}
		break
	}
	return res, nil
}

func (m *Memory) DeleteOne(_ context.Context, collection string, filter bson.M) (*DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.collections[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			m.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return &DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &DeleteResult{Acknowledged: true}, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close(context.Context) error { return nil }

func setFields(update bson.M) (bson.M, error) {
	if len(update) == 0 {
		return nil, errors.New("update document is empty")
	}
	for op := range update {
		if op != "$set" {
			return nil, fmt.Errorf("unsupported update operator %q", op)
		}
	}
	switch set := update["$set"].(type) {
	case bson.M:
		return set, nil
	case map[string]interface{}:
		return bson.M(set), nil
	default:
		return nil, fmt.Errorf("$set expects a document, got %T", set)
	}
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok {
			if want == nil {
				continue
			}
			return false
		}
		if !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	return reflect.DeepEqual(normalize(a), normalize(b))
}

// normalize folds the numeric and document types JSON and BSON decoding may
// produce so that equal values compare equal.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case map[string]interface{}:
		return normalize(bson.M(t))
	case bson.M:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case primitive.A:
		return normalize([]interface{}(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}

func cloneDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		return cloneDoc(t)
	case map[string]interface{}:
		return cloneDoc(bson.M(t))
	case primitive.A:
		return primitive.A(cloneSlice(t))
	case []interface{}:
		return cloneSlice(t)
	default:
		return v
	}
}

func cloneSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, e := range s {
		out[i] = cloneValue(e)
	}
	return out
}
