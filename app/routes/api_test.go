package routes_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hasan75/tourism-htt-server/app/controllers"
	"github.com/hasan75/tourism-htt-server/app/routes"
	"github.com/hasan75/tourism-htt-server/pkg/app"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
	"github.com/hasan75/tourism-htt-server/pkg/payment"
	"github.com/hasan75/tourism-htt-server/pkg/testkit"
)

func newClient(t *testing.T, p payment.Processor) *testkit.Client {
	t.Helper()
	if p == nil {
		p = &payment.Mock{Currency: "usd"}
	}
	a := app.New().
		Routes(routes.RegisterAPI).
		WithDeps(app.Deps{Store: docstore.NewMemory(), Payments: p})
	return testkit.New(t, a.Handler())
}

func insertedID(t *testing.T, res *testkit.Response) string {
	t.Helper()
	doc := res.Doc()
	assert.Equal(t, true, doc["acknowledged"])
	id, ok := doc["insertedId"].(string)
	require.True(t, ok, "insertedId missing: %s", res.Body())
	return id
}

func TestHome(t *testing.T) {
	res := newClient(t, nil).Get("/").AssertStatus(http.StatusOK)
	assert.Equal(t, controllers.LivenessMessage, res.Body())
}

func TestPlaceOrderLifecycle(t *testing.T) {
	c := newClient(t, nil)

	placed := c.Post("/placeorder", map[string]any{"email": "a@b.com", "item": "tour1"}).
		AssertStatus(http.StatusOK)
	id := insertedID(t, placed)

	orders := c.Get("/orders?email=a@b.com").AssertStatus(http.StatusOK).Docs()
	require.Len(t, orders, 1)
	assert.Equal(t, "Pending", orders[0]["status"])
	assert.Equal(t, "a@b.com", orders[0]["email"])
	assert.Equal(t, "tour1", orders[0]["item"])
	assert.Equal(t, id, orders[0]["_id"])

	c.Put("/updateOrderStatus", map[string]any{"id": id, "status": "Confirmed"}).
		AssertStatus(http.StatusOK).
		AssertJSON(`1`)

	order := c.Get("/orders/" + id).AssertStatus(http.StatusOK).Doc()
	assert.Equal(t, "Confirmed", order["status"])
}

func TestPlaceOrderIgnoresClientStatusAndID(t *testing.T) {
	c := newClient(t, nil)

	id := insertedID(t, c.Post("/placeorder", map[string]any{
		"email":  "a@b.com",
		"status": "Shipped",
		"id":     "mine",
		"_id":    "64b7f0c2a1b2c3d4e5f60718",
	}))
	assert.NotEqual(t, "64b7f0c2a1b2c3d4e5f60718", id)

	order := c.Get("/orders/" + id).Doc()
	assert.Equal(t, "Pending", order["status"])
	assert.NotContains(t, order, "id")
}

func TestOrderStatusIsFreeForm(t *testing.T) {
	c := newClient(t, nil)
	id := insertedID(t, c.Post("/placeorder", map[string]any{"email": "a@b.com"}))

	c.Put("/updateOrderStatus", map[string]any{"id": id, "status": "Banana"}).AssertJSON(`1`)
	assert.Equal(t, "Banana", c.Get("/orders/" + id).Doc()["status"])

	// Same value again: matched but not modified.
	c.Put("/updateOrderStatus", map[string]any{"id": id, "status": "Banana"}).AssertJSON(`0`)
}

func TestOrderStatusValidation(t *testing.T) {
	c := newClient(t, nil)

	res := c.Put("/updateOrderStatus", map[string]any{"status": "Confirmed"}).
		AssertStatus(http.StatusUnprocessableEntity)
	assert.Contains(t, res.Body(), `"id":"id is required"`)

	c.Put("/updateOrderStatus", map[string]any{"id": "nope", "status": "Confirmed"}).
		AssertStatus(http.StatusBadRequest)
}

func TestAttachPaymentAndListAll(t *testing.T) {
	c := newClient(t, nil)
	id := insertedID(t, c.Post("/placeorder", map[string]any{"email": "a@b.com"}))
	insertedID(t, c.Post("/placeorder", map[string]any{"email": "c@d.com"}))

	c.Put("/orders/"+id, map[string]any{"transactionId": "pi_1", "last4": "4242"}).
		AssertStatus(http.StatusOK).
		AssertJSON(`{"acknowledged":true,"matchedCount":1,"modifiedCount":1,"upsertedCount":0,"upsertedId":null}`)

	order := c.Get("/orders/" + id).Doc()
	assert.Equal(t, map[string]interface{}{"transactionId": "pi_1", "last4": "4242"}, order["payment"])

	assert.Len(t, c.Get("/orders").Docs(), 2)
}

func TestDeleteOrder(t *testing.T) {
	c := newClient(t, nil)
	id := insertedID(t, c.Post("/placeorder", map[string]any{"email": "a@b.com"}))

	c.Delete("/placeorder/" + id).AssertJSON(`{"acknowledged":true,"deletedCount":1}`)
	c.Delete("/placeorder/" + id).AssertStatus(http.StatusOK).AssertJSON(`{"acknowledged":true,"deletedCount":0}`)
	c.Delete("/placeorder/not-an-id").AssertStatus(http.StatusBadRequest)
}

func TestProductRoundTripAndAliases(t *testing.T) {
	c := newClient(t, nil)
	id := insertedID(t, c.Post("/addProduct", map[string]any{"name": "Sajek Valley", "price": 120}))

	for _, path := range []string{"/products/", "/placeorder/", "/updateOne/"} {
		p := c.Get(path + id).AssertStatus(http.StatusOK).Doc()
		assert.Equal(t, map[string]interface{}{"_id": id, "name": "Sajek Valley", "price": float64(120)}, p, path)
	}
}

func TestProductUpdateMergesAndDelete(t *testing.T) {
	c := newClient(t, nil)
	id := insertedID(t, c.Post("/addProduct", map[string]any{"name": "Ratargul", "price": 45}))

	c.Put("/updateProduct?id="+id, map[string]any{"_id": id, "price": 50}).
		AssertStatus(http.StatusOK).
		AssertJSON(`{"acknowledged":true,"matchedCount":1,"modifiedCount":1,"upsertedCount":0,"upsertedId":null}`)

	p := c.Get("/products/" + id).Doc()
	assert.Equal(t, "Ratargul", p["name"])
	assert.Equal(t, float64(50), p["price"])

	c.Put("/updateProduct", map[string]any{"price": 1}).AssertStatus(http.StatusBadRequest)

	c.Delete("/deleteProduct/" + id).AssertJSON(`{"acknowledged":true,"deletedCount":1}`)
	c.Get("/products/" + id).AssertStatus(http.StatusOK).AssertJSON(`null`)
}

func TestProductListing(t *testing.T) {
	c := newClient(t, nil)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		insertedID(t, c.Post("/addProduct", map[string]any{"name": name}))
	}

	var all struct {
		Count    int64            `json:"count"`
		Products []map[string]any `json:"products"`
	}
	c.Get("/products").AssertStatus(http.StatusOK).Decode(&all)
	assert.Equal(t, int64(5), all.Count)
	assert.Len(t, all.Products, 5)

	var first struct {
		Count    int64            `json:"count"`
		Products []map[string]any `json:"products"`
	}
	c.Get("/products?page=0&size=2").AssertStatus(http.StatusOK).Decode(&first)
	assert.Equal(t, all.Count, first.Count)
	require.Len(t, first.Products, 2)
	assert.Equal(t, all.Products[:2], first.Products)

	var second struct {
		Products []map[string]any `json:"products"`
	}
	c.Get("/products?page=2&size=2").Decode(&second)
	require.Len(t, second.Products, 1)
	assert.Equal(t, "e", second.Products[0]["name"])

	c.Get("/products?page=1").AssertStatus(http.StatusBadRequest)
	c.Get("/products?page=1&size=abc").AssertStatus(http.StatusBadRequest)
	c.Get("/products?page=-1&size=2").AssertStatus(http.StatusBadRequest)
	c.Get("/products?page=4611686018427387904&size=4").AssertStatus(http.StatusBadRequest)

	var far struct {
		Count    int64            `json:"count"`
		Products []map[string]any `json:"products"`
	}
	c.Get("/products?page=1000&size=1000").AssertStatus(http.StatusOK).Decode(&far)
	assert.Equal(t, int64(5), far.Count)
	assert.Empty(t, far.Products)
}

func TestUsersAndAdmin(t *testing.T) {
	c := newClient(t, nil)
	insertedID(t, c.Post("/users", map[string]any{"email": "x@y.com", "displayName": "X"}))

	c.Get("/admin/nobody@y.com").AssertStatus(http.StatusOK).AssertJSON(`null`)

	c.Put("/addAdmin", map[string]any{"email": "x@y.com"}).
		AssertJSON(`{"acknowledged":true,"matchedCount":1,"modifiedCount":1,"upsertedCount":0,"upsertedId":null}`)
	c.Put("/addAdmin", map[string]any{"email": "x@y.com"}).
		AssertJSON(`{"acknowledged":true,"matchedCount":1,"modifiedCount":0,"upsertedCount":0,"upsertedId":null}`)

	admin := c.Get("/admin/x@y.com").Doc()
	assert.Equal(t, "admin", admin["role"])

	users := c.Get("/users").Docs()
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0]["role"])

	c.Put("/addAdmin", map[string]any{}).AssertStatus(http.StatusUnprocessableEntity)
}

func TestAdminLookupDecodesEscapedEmail(t *testing.T) {
	c := newClient(t, nil)
	insertedID(t, c.Post("/users", map[string]any{"email": "a+b@y.com"}))
	c.Put("/addAdmin", map[string]any{"email": "a+b@y.com"}).AssertStatus(http.StatusOK)

	for _, path := range []string{"/admin/a+b@y.com", "/admin/a%2Bb%40y.com"} {
		user := c.Get(path).AssertStatus(http.StatusOK).Doc()
		assert.Equal(t, "a+b@y.com", user["email"], path)
		assert.Equal(t, "admin", user["role"], path)
	}
}

func TestReviewsAndBlogs(t *testing.T) {
	c := newClient(t, nil)
	insertedID(t, c.Post("/addReview", map[string]any{"name": "Rafi", "rating": 5}))
	insertedID(t, c.Post("/addBlog", map[string]any{"title": "Monsoon"}))
	insertedID(t, c.Post("/addBlog", map[string]any{"title": "Winter"}))

	assert.Len(t, c.Get("/reviews").Docs(), 1)
	blogs := c.Get("/blogs").Docs()
	require.Len(t, blogs, 2)
	assert.Equal(t, "Monsoon", blogs[0]["title"])
}

func TestBodyMustBeObject(t *testing.T) {
	c := newClient(t, nil)
	c.Post("/addReview", `[1,2]`).AssertStatus(http.StatusBadRequest)
	c.Post("/placeorder", `{bad`).AssertStatus(http.StatusBadRequest)
}

func TestCreatePaymentIntent(t *testing.T) {
	p := new(testkit.Processor)
	p.On("CreateIntent", mock.Anything, int64(1999)).
		Return(&payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret_x", Amount: 1999, Currency: "usd"}, nil).
		Once()
	c := newClient(t, p)

	c.Post("/create-payment-intent", map[string]any{"thePrice": 19.99}).
		AssertStatus(http.StatusOK).
		AssertJSON(`{"clientSecret":"pi_1_secret_x"}`)
	p.AssertExpectations(t)
}

func TestCreatePaymentIntentFailures(t *testing.T) {
	p := new(testkit.Processor)
	p.On("CreateIntent", mock.Anything, mock.Anything).
		Return(nil, errors.Join(payment.ErrProcessor, errors.New("api_key_invalid")))
	c := newClient(t, p)

	res := c.Post("/create-payment-intent", map[string]any{"thePrice": "42.50"}).
		AssertStatus(http.StatusBadGateway)
	assert.NotContains(t, res.Body(), "api_key_invalid")
	p.AssertCalled(t, "CreateIntent", mock.Anything, int64(4250))

	c.Post("/create-payment-intent", map[string]any{}).AssertStatus(http.StatusUnprocessableEntity)
	c.Post("/create-payment-intent", map[string]any{"thePrice": -3}).AssertStatus(http.StatusUnprocessableEntity)
}

func TestUnknownRoute(t *testing.T) {
	c := newClient(t, nil)
	c.Get("/nope").AssertStatus(http.StatusNotFound).AssertJSON(`{"status":404,"message":"Not found"}`)
	c.Delete("/orders").AssertStatus(http.StatusMethodNotAllowed)
}
