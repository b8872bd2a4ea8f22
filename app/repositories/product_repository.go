package repositories

import (
	"context"

	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

// ProductRepository handles the products (tour services) collection.
type ProductRepository struct {
	c collection
}

func NewProductRepository(store docstore.Store) *ProductRepository {
	return &ProductRepository{c: collection{store: store, name: models.Products}}
}

// List returns the catalog window selected by page (the zero Page means the
// whole catalog) together with the unfiltered collection size.
func (r *ProductRepository) List(ctx context.Context, page docstore.Page) (*models.ProductPage, error) {
	products, err := r.c.store.Find(ctx, r.c.name, models.Document{}, page)
	if err != nil {
		return nil, err
	}
	count, err := r.c.store.Count(ctx, r.c.name, models.Document{})
	if err != nil {
		return nil, err
	}
	return &models.ProductPage{Count: count, Products: products}, nil
}

// Get returns the product with the given id, or nil.
func (r *ProductRepository) Get(ctx context.Context, id string) (models.Document, error) {
	return r.c.get(ctx, id)
}

func (r *ProductRepository) Create(ctx context.Context, product models.Document) (*docstore.InsertResult, error) {
	return r.c.insert(ctx, product)
}

// Update merges fields onto the product. Fields absent from the body are
// left untouched; the identifier itself is never rewritten.
func (r *ProductRepository) Update(ctx context.Context, id string, fields models.Document) (*docstore.UpdateResult, error) {
	delete(fields, models.FieldID)
	return r.c.setByID(ctx, id, fields)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (*docstore.DeleteResult, error) {
	return r.c.deleteByID(ctx, id)
}
