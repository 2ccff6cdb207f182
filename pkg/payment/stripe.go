package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrInvalidAmount is returned for prices that do not convert to a positive charge
var ErrInvalidAmount = errors.New("payment amount must be positive")

// Processor creates charge intents with an external payment provider
type Processor interface {
	CreateChargeIntent(ctx context.Context, amountMinorUnits int64, currency string, methods []string) (string, error)
}

// StripeProcessor implements Processor with the Stripe PaymentIntents API
type StripeProcessor struct {
	api *client.API
}

// NewStripeProcessor creates a StripeProcessor for the given secret key
func NewStripeProcessor(secretKey string) *StripeProcessor {
	return &StripeProcessor{api: client.New(secretKey, nil)}
}

// CreateChargeIntent creates a PaymentIntent and returns its client secret
func (p *StripeProcessor) CreateChargeIntent(ctx context.Context, amountMinorUnits int64, currency string, methods []string) (string, error) {
	if amountMinorUnits <= 0 {
		return "", ErrInvalidAmount
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinorUnits),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice(methods),
	}
	params.Context = ctx

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

// ToMinorUnits converts a decimal price into integer cents
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
