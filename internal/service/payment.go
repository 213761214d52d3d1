package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

type stripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway builds the production payment gateway.
func NewStripeGateway(secretKey, currency string) PaymentGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	if currency == "" {
		currency = "usd"
	}
	return &stripeGateway{api: api, currency: currency}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, donorEmail string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String(uuid.NewString()),
		},
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(g.currency),
		ReceiptEmail: stripe.String(donorEmail),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

func (g *stripeGateway) IntentStatus(ctx context.Context, id string) (bool, int64, error) {
	pi, err := g.api.PaymentIntents.Get(id, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return false, 0, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, pi.Amount, nil
}
