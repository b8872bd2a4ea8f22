package controllers

import (
	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/app/repositories"
	"github.com/hasan75/tourism-htt-server/pkg/ctx"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
)

type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(store docstore.Store) *UserController {
	return &UserController{users: repositories.NewUserRepository(store)}
}

// Store handles POST /users.
func (u *UserController) Store(c *ctx.Context) {
	doc, err := c.Document()
	if err != nil {
		c.Fail(err)
		return
	}
	res, err := u.users.Create(c.Context(), doc)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}

// Index handles GET /users.
func (u *UserController) Index(c *ctx.Context) {
	users, err := u.users.All(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(users)
}

// Admin handles GET /admin/{email}. Clients check the returned document's
// role themselves; an unknown email answers null.
func (u *UserController) Admin(c *ctx.Context) {
	email, err := c.Param("email")
	if err != nil {
		c.Fail(err)
		return
	}
	user, err := u.users.FindByEmail(c.Context(), email)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(user)
}

// Promote handles PUT /addAdmin.
func (u *UserController) Promote(c *ctx.Context) {
	var in models.PromoteAdmin
	if !c.BindJSON(&in) {
		return
	}
	res, err := u.users.PromoteAdmin(c.Context(), in.Email)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(res)
}
