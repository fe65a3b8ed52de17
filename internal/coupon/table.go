package coupon

import (
	"fmt"
	"strings"
)

// Table is an immutable set of coupons indexed by upper-cased code.
type Table struct {
	coupons []Coupon
	byCode  map[string]int
}

// NewTable validates coupons and builds a table from them.
func NewTable(coupons []Coupon) (*Table, error) {
	t := &Table{
		coupons: make([]Coupon, 0, len(coupons)),
		byCode:  make(map[string]int, len(coupons)),
	}

	for i, c := range coupons {
		c.Code = normaliseCode(c.Code)
		if err := validateCoupon(c); err != nil {
			return nil, fmt.Errorf("coupon %d: %w", i, err)
		}
		if _, exists := t.byCode[c.Code]; exists {
			return nil, fmt.Errorf("coupon %d: duplicate code %s", i, c.Code)
		}
		t.byCode[c.Code] = len(t.coupons)
		t.coupons = append(t.coupons, c)
	}

	return t, nil
}

// DefaultTable returns the built-in coupon table.
func DefaultTable() *Table {
	t, err := NewTable([]Coupon{
		{
			Code:        "SAVE100",
			Type:        TypeFixed,
			Value:       100,
			MinOrder:    500,
			Description: "₹100 OFF on orders above ₹500",
		},
		{
			Code:        "FESTIVE25",
			Type:        TypePercentage,
			Value:       25,
			MinOrder:    1000,
			Description: "25% OFF on orders above ₹1000",
		},
		{
			Code:        "FIRST50",
			Type:        TypePercentage,
			Value:       50,
			MinOrder:    999,
			Description: "50% OFF on orders above ₹999",
		},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup finds a coupon by code, ignoring case and surrounding whitespace.
func (t *Table) Lookup(code string) (Coupon, bool) {
	i, ok := t.byCode[normaliseCode(code)]
	if !ok {
		return Coupon{}, false
	}
	return t.coupons[i], true
}

// All returns the coupons in table order.
func (t *Table) All() []Coupon {
	out := make([]Coupon, len(t.coupons))
	copy(out, t.coupons)
	return out
}

// Size returns the number of coupons in the table.
func (t *Table) Size() int {
	return len(t.coupons)
}

func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateCoupon(c Coupon) error {
	if c.Code == "" {
		return fmt.Errorf("code is required")
	}

	if c.Value <= 0 {
		return fmt.Errorf("%s: value must be positive", c.Code)
	}

	if c.MinOrder < 0 {
		return fmt.Errorf("%s: minimum order cannot be negative", c.Code)
	}

	switch c.Type {
	case TypeFixed:
		// A fixed discount never exceeds the subtotal it was granted on.
		if c.Value > c.MinOrder {
			return fmt.Errorf("%s: fixed discount %d exceeds minimum order %d", c.Code, c.Value, c.MinOrder)
		}
	case TypePercentage:
		if c.Value > 100 {
			return fmt.Errorf("%s: percentage cannot exceed 100", c.Code)
		}
	default:
		return fmt.Errorf("%s: invalid type %q (must be fixed or percentage)", c.Code, c.Type)
	}

	return nil
}
