package wishlist

import (
	"fmt"

	"shopfront/internal/cart"
	"shopfront/internal/model"
)

// DuplicateNotice is shown when a product is already saved.
const DuplicateNotice = "Item already in wishlist!"

// Wishlist is an ordered set of saved products with at most one entry per product id.
type Wishlist struct {
	items []model.Product
}

// New returns an empty wishlist.
func New() *Wishlist {
	return &Wishlist{items: []model.Product{}}
}

// Add saves product unless it is already present. It reports whether the
// product was added along with a notice for the shopper.
func (w *Wishlist) Add(product model.Product) (bool, string) {
	if w.Contains(product.ID) {
		return false, DuplicateNotice
	}
	w.items = append(w.items, product)
	return true, fmt.Sprintf("%s added to wishlist!", product.Name)
}

// Remove drops the product with productID. It reports whether anything was removed.
func (w *Wishlist) Remove(productID string) bool {
	for i, p := range w.items {
		if p.ID == productID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether productID is saved.
func (w *Wishlist) Contains(productID string) bool {
	_, ok := w.find(productID)
	return ok
}

// Items returns the saved products in the order they were added.
func (w *Wishlist) Items() []model.Product {
	out := make([]model.Product, len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of saved products.
func (w *Wishlist) Len() int {
	return len(w.items)
}

// MoveToCart adds one unit of the saved product to ledger and removes it
// from the wishlist. It reports false when productID is not saved.
func (w *Wishlist) MoveToCart(productID string, ledger *cart.Ledger) bool {
	product, ok := w.find(productID)
	if !ok {
		return false
	}
	ledger.Add(product)
	w.Remove(productID)
	return true
}

// Restore rebuilds a wishlist from saved products, keeping the first entry per id.
func Restore(items []model.Product) *Wishlist {
	w := New()
	for _, p := range items {
		w.Add(p)
	}
	return w
}

func (w *Wishlist) find(productID string) (model.Product, bool) {
	for _, p := range w.items {
		if p.ID == productID {
			return p, true
		}
	}
	return model.Product{}, false
}
