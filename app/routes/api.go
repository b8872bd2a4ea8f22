package routes

import (
	"github.com/hasan75/tourism-htt-server/app/controllers"
	"github.com/hasan75/tourism-htt-server/pkg/app"
	"github.com/hasan75/tourism-htt-server/pkg/ctx"
	"github.com/hasan75/tourism-htt-server/pkg/router"
)

// RegisterAPI binds the storefront and admin-panel routes. Every route is
// public.
func RegisterAPI(r *router.Router, deps app.Deps) {
	home := controllers.NewHomeController()
	users := controllers.NewUserController(deps.Store)
	products := controllers.NewProductController(deps.Store)
	orders := controllers.NewOrderController(deps.Store)
	reviews := controllers.NewReviewController(deps.Store)
	blogs := controllers.NewBlogController(deps.Store)
	payments := controllers.NewPaymentController(deps.Payments)

	r.Get("/", "home", ctx.Wrap(home.Index))

	r.Post("/users", "users.store", ctx.Wrap(users.Store))
	r.Get("/users", "users.index", ctx.Wrap(users.Index))
	r.Get("/admin/{email}", "users.admin", ctx.Wrap(users.Admin))
	r.Put("/addAdmin", "users.promote", ctx.Wrap(users.Promote))

	r.Get("/products", "products.index", ctx.Wrap(products.Index))
	r.Post("/addProduct", "products.store", ctx.Wrap(products.Store))
	r.Put("/updateProduct", "products.update", ctx.Wrap(products.Update))
	r.Delete("/deleteProduct/{id}", "products.destroy", ctx.Wrap(products.Destroy))

	// One lookup, three entry points: catalog detail, pre-order view and
	// the admin edit form.
	showProduct := ctx.Wrap(products.Show)
	r.Get("/products/{id}", "products.show", showProduct)
	r.Get("/placeorder/{id}", "products.show.order", showProduct)
	r.Get("/updateOne/{id}", "products.show.edit", showProduct)

	r.Post("/placeorder", "orders.place", ctx.Wrap(orders.Place))
	r.Delete("/placeorder/{id}", "orders.destroy", ctx.Wrap(orders.Destroy))
	r.Get("/orders", "orders.index", ctx.Wrap(orders.Index))
	r.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show))
	r.Put("/orders/{id}", "orders.payment", ctx.Wrap(orders.AttachPayment))
	r.Put("/updateOrderStatus", "orders.status", ctx.Wrap(orders.UpdateStatus))

	r.Post("/addReview", "reviews.store", ctx.Wrap(reviews.Store))
	r.Get("/reviews", "reviews.index", ctx.Wrap(reviews.Index))

	r.Post("/addBlog", "blogs.store", ctx.Wrap(blogs.Store))
	r.Get("/blogs", "blogs.index", ctx.Wrap(blogs.Index))

	r.Post("/create-payment-intent", "payments.intent", ctx.Wrap(payments.CreateIntent))
}
