package controllers

import (
	"github.com/hasan75/tourism-htt-server/app/repositories"
	"github.com/hasan75/tourism-htt-server/pkg/ctx"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

// ContentController serves reviews and blogs: add and list, nothing else.
type ContentController struct {
	content *repositories.ContentRepository
}

func NewReviewController(store docstore.Store) *ContentController {
	return &ContentController{content: repositories.NewReviewRepository(store)}
}

func NewBlogController(store docstore.Store) *ContentController {
	return &ContentController{content: repositories.NewBlogRepository(store)}
}

func (cc *ContentController) Store(c *ctx.Context) {
	doc, err := c.Document()
	if err != nil {
		c.Fail(err)
		return
	}
	res, err := cc.content.Add(c.Context(), doc)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}

func (cc *ContentController) Index(c *ctx.Context) {
	docs, err := cc.content.All(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(docs)
}
