package controllers

import (
	"github.com/hasan75/tourism-htt-server/app/models"
	"github.com/hasan75/tourism-htt-server/app/services"
	"github.com/hasan75/tourism-htt-server/pkg/ctx"
	"github.com/hasan75/tourism-htt-server/pkg/payment"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController(p payment.Processor) *PaymentController {
	return &PaymentController{service: services.NewPaymentService(p)}
}

// CreateIntent handles POST /create-payment-intent.
func (p *PaymentController) CreateIntent(c *ctx.Context) {
	var in models.PaymentIntentRequest
	if !c.BindJSON(&in) {
		return
	}
	secret, err := p.service.CreateIntent(c.Context(), float64(in.ThePrice))
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(models.PaymentIntentResponse{ClientSecret: secret})
}
