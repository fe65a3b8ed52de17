package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// intentAPI is the subset of the Stripe payment intent client in use.
type intentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway creates and reads Stripe PaymentIntents.
type StripeGateway struct {
	intents        intentAPI
	publishableKey string
	logger         zerolog.Logger
}

// NewStripeGateway creates a gateway using secretKey for API calls.
func NewStripeGateway(secretKey, publishableKey string, logger zerolog.Logger) *StripeGateway {
	return &StripeGateway{
		intents: paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
		publishableKey: publishableKey,
		logger:         logger.With().Str("component", "stripe-gateway").Logger(),
	}
}

func (g *StripeGateway) PublishableKey() string {
	return g.publishableKey
}

func (g *StripeGateway) CreateIntent(ctx context.Context, params IntentParams) (*Intent, error) {
	amount := ToMinorUnits(params.Amount)
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %s", params.Amount)
	}

	p := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	p.Context = ctx
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}

	pi, err := g.intents.New(p)
	if err != nil {
		g.logger.Error().Err(err).Int64("amount", amount).Str("currency", params.Currency).Msg("failed to create payment intent")
		return nil, remoteError(err)
	}

	g.logger.Info().Str("payment_intent", pi.ID).Int64("amount", amount).Msg("payment intent created")
	return toIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	p := &stripe.PaymentIntentParams{}
	p.Context = ctx

	pi, err := g.intents.Get(id, p)
	if err != nil {
		g.logger.Error().Err(err).Str("payment_intent", id).Msg("failed to fetch payment intent")
		return nil, remoteError(err)
	}

	return toIntent(pi), nil
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       IntentStatus(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}

func remoteError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return &RemoteError{Message: stripeErr.Msg, Err: err}
	}
	return fmt.Errorf("failed to reach payment processor: %w", err)
}
