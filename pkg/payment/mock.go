package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Mock is an offline Processor for local runs (PAYMENT_MOCK=true) and tests.
// It never contacts the network and records every intent it creates.
type Mock struct {
	Currency string
	// Err, when set, is returned (wrapped in ErrProcessor) by every call.
	Err error

	mu      sync.Mutex
	intents []Intent
}

func (m *Mock) CreateIntent(_ context.Context, amount int64) (*Intent, error) {
	if m.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessor, m.Err)
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	id := "pi_mock_" + uuid.NewString()[:8]
	intent := Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString()[:12],
		Amount:       amount,
		Currency:     m.Currency,
	}

	m.mu.Lock()
	m.intents = append(m.intents, intent)
	m.mu.Unlock()

	return &intent, nil
}

// Intents returns a copy of every intent created so far.
func (m *Mock) Intents() []Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Intent(nil), m.intents...)
}
