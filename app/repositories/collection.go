// Package repositories maps each logical collection onto single store calls.
// Every method performs exactly one store operation (listing products also
// counts) and returns the store's result unchanged.
package repositories

import (
	"context"

	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

// collection is the shared insert/list/get/update/delete surface.
type collection struct {
	store docstore.Store
	name  string
}

func (c collection) insert(ctx context.Context, doc models.Document) (*docstore.InsertResult, error) {
	return c.store.InsertOne(ctx, c.name, doc)
}

func (c collection) all(ctx context.Context) ([]models.Document, error) {
	return c.store.Find(ctx, c.name, models.Document{}, docstore.Page{})
}

// get returns the document with the given hex id, or nil.
func (c collection) get(ctx context.Context, id string) (models.Document, error) {
	filter, err := docstore.ByID(id)
	if err != nil {
		return nil, err
	}
	return c.store.FindOne(ctx, c.name, filter)
}

func (c collection) setByID(ctx context.Context, id string, fields models.Document) (*docstore.UpdateResult, error) {
	filter, err := docstore.ByID(id)
	if err != nil {
		return nil, err
	}
	return c.store.UpdateOne(ctx, c.name, filter, docstore.Set(fields))
}

func (c collection) deleteByID(ctx context.Context, id string) (*docstore.DeleteResult, error) {
	filter, err := docstore.ByID(id)
	if err != nil {
		return nil, err
	}
	return c.store.DeleteOne(ctx, c.name, filter)
}
