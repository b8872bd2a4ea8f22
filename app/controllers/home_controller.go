package controllers

import (
	"net/http"

	"github.com/hasan75/tourism-htt-server/pkg/ctx"
)

// LivenessMessage is the body of GET /.
const LivenessMessage = "Hit the trail Server Running"

type HomeController struct{}

func NewHomeController() *HomeController {
	return &HomeController{}
}

func (h *HomeController) Index(c *ctx.Context) {
	c.String(http.StatusOK, LivenessMessage)
}
