package cart

import (
	"fmt"

	"shopfront/internal/coupon"
	"shopfront/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// FreeDeliveryThreshold is the subtotal above which delivery is free.
	FreeDeliveryThreshold int64 = 500
	// StandardDeliveryFee is charged on orders at or below the threshold.
	StandardDeliveryFee int64 = 99
)

// Line is one product in the cart and how many units of it were added.
type Line struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// CouponResult reports the outcome of applying a coupon code.
// A rejected code is a normal result, not an error.
type CouponResult struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Discount decimal.Decimal `json:"discount"`
}

// Ledger holds the lines of one shopper's cart and the coupon applied to it.
// The zero value is an empty cart. A Ledger is not safe for concurrent use;
// callers serialise access through the session store.
type Ledger struct {
	order    []string
	lines    map[string]*Line
	coupon   *coupon.Coupon
	discount decimal.Decimal
}

// NewLedger returns an empty cart.
func NewLedger() *Ledger {
	return &Ledger{lines: make(map[string]*Line)}
}

// Add puts one more unit of product in the cart.
// Stock is not checked here.
func (l *Ledger) Add(product model.Product) {
	if l.lines == nil {
		l.lines = make(map[string]*Line)
	}

	if line, ok := l.lines[product.ID]; ok {
		line.Product = product
		line.Quantity++
		return
	}

	l.lines[product.ID] = &Line{Product: product, Quantity: 1}
	l.order = append(l.order, product.ID)
}

// Remove takes exactly one unit of productID out of the cart.
// It reports false and changes nothing when the product is not in the cart.
func (l *Ledger) Remove(productID string) bool {
	line, ok := l.lines[productID]
	if !ok {
		return false
	}

	line.Quantity--
	if line.Quantity > 0 {
		return true
	}

	l.drop(productID)
	return true
}

// Deduct takes the quantities in ordered out of the cart. Units added after
// ordered was read stay in the cart. A line holding no more than the ordered
// quantity is removed.
func (l *Ledger) Deduct(ordered []Line) {
	for _, o := range ordered {
		line, ok := l.lines[o.Product.ID]
		if !ok {
			continue
		}
		if line.Quantity > o.Quantity {
			line.Quantity -= o.Quantity
			continue
		}
		l.drop(o.Product.ID)
	}
}

func (l *Ledger) drop(productID string) {
	delete(l.lines, productID)
	for i, id := range l.order {
		if id == productID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Lines returns the cart lines in the order products were first added.
func (l *Ledger) Lines() []Line {
	out := make([]Line, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.lines[id])
	}
	return out
}

// Quantity returns how many units of productID are in the cart.
func (l *Ledger) Quantity(productID string) int {
	if line, ok := l.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// ItemCount returns the total number of units across all lines.
func (l *Ledger) ItemCount() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// IsEmpty reports whether the cart holds no units.
func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

// TotalPrice is the sum of price times quantity over all lines.
func (l *Ledger) TotalPrice() int64 {
	var total int64
	for _, line := range l.lines {
		total += line.Product.Price * int64(line.Quantity)
	}
	return total
}

// ApplyCoupon looks code up in table and, when the current subtotal is
// eligible, makes it the active coupon. It replaces any earlier coupon.
// On failure the previously applied coupon and discount are kept.
func (l *Ledger) ApplyCoupon(table *coupon.Table, code string) CouponResult {
	c, ok := table.Lookup(code)
	if !ok {
		return CouponResult{Success: false, Message: "Invalid coupon code", Discount: decimal.Zero}
	}

	subtotal := l.TotalPrice()
	if !c.Eligible(subtotal) {
		return CouponResult{
			Success:  false,
			Message:  fmt.Sprintf("Minimum order of ₹%d required", c.MinOrder),
			Discount: decimal.Zero,
		}
	}

	discount := c.Discount(subtotal)
	l.coupon = &c
	l.discount = discount

	return CouponResult{
		Success:  true,
		Message:  fmt.Sprintf("Coupon applied! You saved ₹%s", discount.Floor().String()),
		Discount: discount,
	}
}

// RemoveCoupon clears the active coupon and its discount.
func (l *Ledger) RemoveCoupon() {
	l.coupon = nil
	l.discount = decimal.Zero
}

// AppliedCoupon returns the active coupon, if any.
func (l *Ledger) AppliedCoupon() (coupon.Coupon, bool) {
	if l.coupon == nil {
		return coupon.Coupon{}, false
	}
	return *l.coupon, true
}

// Discount returns the discount recorded when the active coupon was applied.
// It is not recomputed when lines change afterwards.
func (l *Ledger) Discount() decimal.Decimal {
	return l.discount
}

// Clear empties the cart and drops the applied coupon.
func (l *Ledger) Clear() {
	l.order = nil
	l.lines = make(map[string]*Line)
	l.RemoveCoupon()
}

// DeliveryFee returns the delivery charge for subtotal.
func DeliveryFee(subtotal int64) int64 {
	if subtotal > FreeDeliveryThreshold {
		return 0
	}
	return StandardDeliveryFee
}

// FinalTotal returns subtotal minus discount plus delivery, floored at zero.
func FinalTotal(subtotal int64, discount decimal.Decimal) decimal.Decimal {
	total := decimal.NewFromInt(subtotal).
		Sub(discount).
		Add(decimal.NewFromInt(DeliveryFee(subtotal)))
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
