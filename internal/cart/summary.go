package cart

import (
	"shopfront/internal/coupon"

	"github.com/shopspring/decimal"
)

// Summary is the priced view of a cart returned to clients.
type Summary struct {
	Items                []Line          `json:"items"`
	ItemCount            int             `json:"itemCount"`
	Subtotal             int64           `json:"subtotal"`
	AppliedCoupon        *coupon.Coupon  `json:"appliedCoupon,omitempty"`
	Discount             decimal.Decimal `json:"discount"`
	DeliveryFee          int64           `json:"deliveryFee"`
	AmountToFreeDelivery int64           `json:"amountToFreeDelivery"`
	FinalTotal           decimal.Decimal `json:"finalTotal"`
}

// Summary prices the cart.
func (l *Ledger) Summary() Summary {
	subtotal := l.TotalPrice()

	s := Summary{
		Items:       l.Lines(),
		ItemCount:   l.ItemCount(),
		Subtotal:    subtotal,
		Discount:    l.discount,
		DeliveryFee: DeliveryFee(subtotal),
		FinalTotal:  FinalTotal(subtotal, l.discount),
	}

	if c, ok := l.AppliedCoupon(); ok {
		s.AppliedCoupon = &c
	}

	if subtotal < FreeDeliveryThreshold {
		s.AmountToFreeDelivery = FreeDeliveryThreshold - subtotal
	}

	return s
}
