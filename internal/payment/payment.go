package payment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// IntentStatus is the processor-side state of a payment.
type IntentStatus string

const (
	StatusSucceeded             IntentStatus = "succeeded"
	StatusProcessing            IntentStatus = "processing"
	StatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	StatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	StatusRequiresAction        IntentStatus = "requires_action"
	StatusCanceled              IntentStatus = "canceled"
)

// Intent is a payment the shopper confirms on the client with ClientSecret.
type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	Amount       int64 // minor units
	Currency     string
}

// IntentParams describes a payment to collect.
type IntentParams struct {
	Amount   decimal.Decimal
	Currency string
	Metadata map[string]string
}

// Gateway talks to the payment processor.
type Gateway interface {
	// CreateIntent starts a payment for params.Amount.
	CreateIntent(ctx context.Context, params IntentParams) (*Intent, error)

	// GetIntent fetches the current state of a payment.
	GetIntent(ctx context.Context, id string) (*Intent, error)

	// PublishableKey is the key the client uses to confirm payments.
	PublishableKey() string
}

// RemoteError carries the processor's own message for a failed call.
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return "payment processor: " + e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ToMinorUnits converts a whole-currency amount to the processor's smallest unit.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// NormaliseCurrency lower-cases an ISO currency code, defaulting to fallback.
func NormaliseCurrency(currency, fallback string) string {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		return strings.ToLower(fallback)
	}
	return currency
}
