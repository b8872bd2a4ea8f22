// Package payment creates card payment intents with an external processor.
package payment

import (
	"context"
	"errors"
	"math"
)

// ErrProcessor wraps every failure reported by the processor.
var ErrProcessor = errors.New("payment: processor error")

// ErrInvalidAmount is returned for amounts the processor would never accept.
var ErrInvalidAmount = errors.New("payment: amount must be positive")

// Intent is the part of a processor payment intent the gateway cares about.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Processor creates payment intents for an amount in minor currency units.
type Processor interface {
	CreateIntent(ctx context.Context, amount int64) (*Intent, error)
}

// ToMinorUnits converts a decimal price into cents. It assumes a currency
// with two decimal places; zero-decimal currencies are not supported.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	amount := int64(math.Round(price * 100))
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}
