package services

import (
	"context"

	"github.com/hasan75/tourism-htt-server/pkg/logger"
	"github.com/hasan75/tourism-htt-server/pkg/metrics"
	"github.com/hasan75/tourism-htt-server/pkg/payment"
)

// PaymentService turns a storefront price into a processor payment intent.
type PaymentService struct {
	processor payment.Processor
}

func NewPaymentService(p payment.Processor) *PaymentService {
	return &PaymentService{processor: p}
}

// CreateIntent requests a card intent for price (major units) and returns
// only its client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount, err := payment.ToMinorUnits(price)
	if err != nil {
		return "", err
	}

	intent, err := s.processor.CreateIntent(ctx, amount)
	metrics.RecordPaymentIntent(err)
	if err != nil {
		return "", err
	}

	logger.WithCtx(ctx).Info("payment intent created", "intent_id", intent.ID, "amount", intent.Amount, "currency", intent.Currency)
	return intent.ClientSecret, nil
}
