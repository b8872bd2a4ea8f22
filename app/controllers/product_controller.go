package controllers

import (
	"fmt"
	"math"

	"github.com/hasan75/tourism-htt-server/app/repositories"
	"github.com/hasan75/tourism-htt-server/pkg/ctx"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(store docstore.Store) *ProductController {
	return &ProductController{products: repositories.NewProductRepository(store)}
}

// Index handles GET /products. Without ?page the whole catalog is returned;
// with it, ?size is required and the window starts at page*size.
func (p *ProductController) Index(c *ctx.Context) {
	var page docstore.Page
	if c.HasQuery("page") {
		n, err := c.QueryInt64("page")
		if err != nil {
			c.Fail(err)
			return
		}
		size, err := c.QueryInt64("size")
		if err != nil {
			c.Fail(err)
			return
		}
		if size > 0 && n > math.MaxInt64/size {
			c.Fail(fmt.Errorf("%w: page %d of size %d is out of range", ctx.ErrQuery, n, size))
			return
		}
		page = docstore.Page{Skip: n * size, Limit: size}
	}

	out, err := p.products.List(c.Context(), page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(out)
}

// Show handles GET /products/{id} and its aliases.
func (p *ProductController) Show(c *ctx.Context) {
	id, err := c.Param("id")
	if err != nil {
		c.Fail(err)
		return
	}
	product, err := p.products.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(product)
}

// Store handles POST /addProduct.
func (p *ProductController) Store(c *ctx.Context) {
	doc, err := c.Document()
	if err != nil {
		c.Fail(err)
		return
	}
	res, err := p.products.Create(c.Context(), doc)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}

// Update handles PUT /updateProduct?id=.
func (p *ProductController) Update(c *ctx.Context) {
	doc, err := c.Document()
	if err != nil {
		c.Fail(err)
		return
	}
	res, err := p.products.Update(c.Context(), c.Query("id"), doc)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}

// Destroy handles DELETE /deleteProduct/{id}.
func (p *ProductController) Destroy(c *ctx.Context) {
	id, err := c.Param("id")
	if err != nil {
		c.Fail(err)
		return
	}
	res, err := p.products.Delete(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}
