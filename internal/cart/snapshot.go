package cart

import (
	"shopfront/internal/coupon"

	"github.com/shopspring/decimal"
)

// Snapshot is the serialisable form of a Ledger.
type Snapshot struct {
	Lines    []Line          `json:"lines"`
	Coupon   *coupon.Coupon  `json:"coupon,omitempty"`
	Discount decimal.Decimal `json:"discount"`
}

// Snapshot captures the ledger state.
func (l *Ledger) Snapshot() Snapshot {
	s := Snapshot{Lines: l.Lines(), Discount: l.discount}
	if c, ok := l.AppliedCoupon(); ok {
		s.Coupon = &c
	}
	return s
}

// Restore rebuilds a ledger from a snapshot. Lines with a non-positive
// quantity are dropped.
func Restore(s Snapshot) *Ledger {
	l := NewLedger()
	for _, line := range s.Lines {
		if line.Quantity <= 0 {
			continue
		}
		if existing, ok := l.lines[line.Product.ID]; ok {
			existing.Quantity += line.Quantity
			continue
		}
		copied := line
		l.lines[line.Product.ID] = &copied
		l.order = append(l.order, line.Product.ID)
	}

	if s.Coupon != nil {
		c := *s.Coupon
		l.coupon = &c
		l.discount = s.Discount
	}

	return l
}
