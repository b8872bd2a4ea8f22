package payment_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasan75/tourism-htt-server/pkg/payment"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{price: 1, want: 100},
		{price: 19.99, want: 1999},
		{price: 0.29, want: 29},
		{price: 1250.5, want: 125050},
	}
	for _, tc := range cases {
		got, err := payment.ToMinorUnits(tc.price)
		require.NoError(t, err, "price %v", tc.price)
		assert.Equal(t, tc.want, got, "price %v", tc.price)
	}
}

func TestToMinorUnitsRejects(t *testing.T) {
	for _, price := range []float64{0, -5, 0.001, math.NaN(), math.Inf(1)} {
		_, err := payment.ToMinorUnits(price)
		assert.True(t, errors.Is(err, payment.ErrInvalidAmount), "price %v", price)
	}
}

func TestMockCreatesIntent(t *testing.T) {
	m := &payment.Mock{Currency: "usd"}

	intent, err := m.CreateIntent(context.Background(), 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), intent.Amount)
	assert.Equal(t, "usd", intent.Currency)
	assert.True(t, strings.HasPrefix(intent.ClientSecret, intent.ID+"_secret_"))
	assert.Len(t, m.Intents(), 1)
}

func TestMockError(t *testing.T) {
	m := &payment.Mock{Err: errors.New("card declined")}

	_, err := m.CreateIntent(context.Background(), 100)
	assert.True(t, errors.Is(err, payment.ErrProcessor))
	assert.Empty(t, m.Intents())
}
