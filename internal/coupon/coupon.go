package coupon

import (
	"context"

	"github.com/shopspring/decimal"
)

// Type is the kind of discount a coupon grants.
type Type string

const (
	// TypeFixed takes a flat amount off the order.
	TypeFixed Type = "fixed"
	// TypePercentage takes a percentage of the subtotal off the order.
	TypePercentage Type = "percentage"
)

// Coupon is a static discount rule keyed by code.
type Coupon struct {
	Code        string `json:"code" yaml:"code"`
	Type        Type   `json:"type" yaml:"type"`
	Value       int64  `json:"value" yaml:"value"`
	MinOrder    int64  `json:"minOrder" yaml:"minOrder"`
	Description string `json:"description" yaml:"description"`
}

// Eligible reports whether subtotal reaches the coupon's minimum order value.
func (c Coupon) Eligible(subtotal int64) bool {
	return subtotal >= c.MinOrder
}

// Discount returns the amount the coupon takes off subtotal.
// Percentage discounts are always computed against the raw subtotal.
func (c Coupon) Discount(subtotal int64) decimal.Decimal {
	switch c.Type {
	case TypeFixed:
		return decimal.NewFromInt(c.Value)
	case TypePercentage:
		return decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(c.Value)).
			Div(decimal.NewFromInt(100))
	default:
		return decimal.Zero
	}
}

// Loader defines the interface for loading coupon table files.
type Loader interface {
	// Load reads a coupon table file (YAML, optionally gzipped) and returns the parsed table.
	Load(ctx context.Context, filePath string) (*Table, error)
}
