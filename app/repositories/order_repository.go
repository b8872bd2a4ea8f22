package repositories

import (
	"context"

	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

// OrderRepository handles the orders collection.
type OrderRepository struct {
	c collection
}

func NewOrderRepository(store docstore.Store) *OrderRepository {
	return &OrderRepository{c: collection{store: store, name: models.Orders}}
}

// Place inserts a new order. Whatever the caller sent, the order starts as
// Pending and gets a store-assigned id.
func (r *OrderRepository) Place(ctx context.Context, order models.Document) (*docstore.InsertResult, error) {
	models.StripIDs(order)
	order[models.FieldStatus] = models.OrderStatusPending
	return r.c.insert(ctx, order)
}

// List returns the orders placed by email, or every order when email is "".
func (r *OrderRepository) List(ctx context.Context, email string) ([]models.Document, error) {
	filter := models.Document{}
	if email != "" {
		filter[models.FieldEmail] = email
	}
	return r.c.store.Find(ctx, r.c.name, filter, docstore.Page{})
}

func (r *OrderRepository) Get(ctx context.Context, id string) (models.Document, error) {
	return r.c.get(ctx, id)
}

// AttachPayment embeds the payment sub-document as sent. It does not check
// that the payment actually succeeded.
func (r *OrderRepository) AttachPayment(ctx context.Context, id string, payment models.Document) (*docstore.UpdateResult, error) {
	return r.c.setByID(ctx, id, models.Document{models.FieldPayment: payment})
}

// UpdateStatus sets any status string and returns only the modified count.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	res, err := r.c.setByID(ctx, id, models.Document{models.FieldStatus: status})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (*docstore.DeleteResult, error) {
	return r.c.deleteByID(ctx, id)
}
