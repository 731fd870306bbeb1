package stripe

import (
	"context"
	"errors"
	"fmt"

	"bistro-boss/internal/bistro/domain/repository"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// intentCreator is satisfied by the paymentintent client of stripe-go.
type intentCreator interface {
	New(params *stripego.PaymentIntentParams) (*stripego.PaymentIntent, error)
}

// Gateway creates Stripe payment intents.
type Gateway struct {
	intents intentCreator
}

// NewGateway creates a gateway authenticated with secretKey.
func NewGateway(secretKey string) (*Gateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key cannot be empty")
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Gateway{intents: sc.PaymentIntents}, nil
}

func (g *Gateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string, methods []string) (string, error) {
	params := &stripego.PaymentIntentParams{
		Amount:             stripego.Int64(amount),
		Currency:           stripego.String(currency),
		PaymentMethodTypes: stripego.StringSlice(methods),
	}
	params.Context = ctx

	intent, err := g.intents.New(params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) {
			return "", fmt.Errorf("stripe rejected payment intent (%s): %w", stripeErr.Code, err)
		}
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

var _ repository.PaymentGateway = (*Gateway)(nil)
