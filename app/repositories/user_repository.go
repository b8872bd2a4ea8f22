package repositories

import (
	"context"

	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

// UserRepository handles the users collection.
type UserRepository struct {
	c collection
}

func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{c: collection{store: store, name: models.Users}}
}

// Create inserts the document as given. Emails are not checked for
// duplicates.
func (r *UserRepository) Create(ctx context.Context, user models.Document) (*docstore.InsertResult, error) {
	return r.c.insert(ctx, user)
}

func (r *UserRepository) All(ctx context.Context) ([]models.Document, error) {
	return r.c.all(ctx)
}

// FindByEmail returns the first user with that email, or nil.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.Document, error) {
	return r.c.store.FindOne(ctx, r.c.name, models.Document{models.FieldEmail: email})
}

// PromoteAdmin sets role=admin on the first user with that email. Running it
// twice leaves the same state; the second call reports modifiedCount 0.
func (r *UserRepository) PromoteAdmin(ctx context.Context, email string) (*docstore.UpdateResult, error) {
	return r.c.store.UpdateOne(ctx, r.c.name,
		models.Document{models.FieldEmail: email},
		docstore.Set(models.Document{models.FieldRole: models.RoleAdmin}),
	)
}
