package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is a decimal amount in major currency units. Storefront clients send
// it either as a JSON number or as a numeric string.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*p = Price(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("price must be a number, got %s", b)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("price must be a number, got %q", s)
	}
	*p = Price(n)
	return nil
}

// PaymentIntentRequest is the body of POST /create-payment-intent.
type PaymentIntentRequest struct {
	ThePrice Price `json:"thePrice" validate:"gt=0"`
}

// PaymentIntentResponse carries only the client secret back to the browser.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
