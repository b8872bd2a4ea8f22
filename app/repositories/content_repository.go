package repositories

import (
	"context"

	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

// ContentRepository serves the append-and-list collections (reviews, blogs).
type ContentRepository struct {
	c collection
}

func NewReviewRepository(store docstore.Store) *ContentRepository {
	return &ContentRepository{c: collection{store: store, name: models.Reviews}}
}

func NewBlogRepository(store docstore.Store) *ContentRepository {
	return &ContentRepository{c: collection{store: store, name: models.Blogs}}
}

func (r *ContentRepository) Add(ctx context.Context, doc models.Document) (*docstore.InsertResult, error) {
	return r.c.insert(ctx, doc)
}

func (r *ContentRepository) All(ctx context.Context) ([]models.Document, error) {
	return r.c.all(ctx)
}
