package testkit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hasan75/tourism-htt-server/pkg/payment"
)

// Processor is a testify-backed payment.Processor for tests that need to
// script processor answers or assert on the amounts requested.
//
//	p := new(testkit.Processor)
//	p.On("CreateIntent", mock.Anything, int64(1999)).Return(&payment.Intent{ClientSecret: "s"}, nil)
type Processor struct {
	mock.Mock
}

func (p *Processor) CreateIntent(ctx context.Context, amount int64) (*payment.Intent, error) {
	args := p.Called(ctx, amount)
	intent, _ := args.Get(0).(*payment.Intent)
	return intent, args.Error(1)
}
