package controllers

import (
	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/app/repositories"
	"github.com/hasan75/tourism-htt-server/pkg/ctx"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

type OrderController struct {
	orders *repositories.OrderRepository
}

func NewOrderController(store docstore.Store) *OrderController {
	return &OrderController{orders: repositories.NewOrderRepository(store)}
}

// Place handles POST /placeorder.
func (o *OrderController) Place(c *ctx.Context) {
	doc, err := c.Document()
	if err != nil {
		c.Fail(err)
		return
	}
	res, err := o.orders.Place(c.Context(), doc)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}

// Index handles GET /orders with an optional ?email filter.
func (o *OrderController) Index(c *ctx.Context) {
	orders, err := o.orders.List(c.Context(), c.Query("email"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(orders)
}

// Show handles GET /orders/{id}.
func (o *OrderController) Show(c *ctx.Context) {
	id, err := c.Param("id")
	if err != nil {
		c.Fail(err)
		return
	}
	order, err := o.orders.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(order)
}

// AttachPayment handles PUT /orders/{id}; the body becomes order.payment.
func (o *OrderController) AttachPayment(c *ctx.Context) {
	doc, err := c.Document()
	if err != nil {
		c.Fail(err)
		return
	}
	id, err := c.Param("id")
	if err != nil {
		c.Fail(err)
		return
	}
	res, err := o.orders.AttachPayment(c.Context(), id, doc)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}

// UpdateStatus handles PUT /updateOrderStatus and answers with the bare
// modified count.
func (o *OrderController) UpdateStatus(c *ctx.Context) {
	var in models.OrderStatusUpdate
	if !c.BindJSON(&in) {
		return
	}
	n, err := o.orders.UpdateStatus(c.Context(), in.ID, in.Status)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(n)
}

// Destroy handles DELETE /placeorder/{id}.
func (o *OrderController) Destroy(c *ctx.Context) {
	id, err := c.Param("id")
	if err != nil {
		c.Fail(err)
		return
	}
	res, err := o.orders.Delete(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}
