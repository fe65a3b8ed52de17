package router

import (
	"net/http"

	"shopfront/internal/handler"
	"shopfront/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Review   *handler.ReviewHandler
	Payment  *handler.PaymentHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/export", h.Product.Export)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.HandleFunc("GET /api/categories", h.Product.Categories)
	mux.HandleFunc("GET /api/price-ranges", h.Product.PriceRanges)

	mux.HandleFunc("GET /api/coupons", h.Cart.Coupons)
	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("POST /api/cart/items", h.Cart.AddItem)
	mux.HandleFunc("DELETE /api/cart/items/{productId}", h.Cart.RemoveItem)
	mux.HandleFunc("POST /api/cart/coupon", h.Cart.ApplyCoupon)
	mux.HandleFunc("DELETE /api/cart/coupon", h.Cart.RemoveCoupon)

	mux.HandleFunc("GET /api/wishlist", h.Wishlist.Get)
	mux.HandleFunc("POST /api/wishlist/items", h.Wishlist.AddItem)
	mux.HandleFunc("DELETE /api/wishlist/items/{productId}", h.Wishlist.RemoveItem)
	mux.HandleFunc("POST /api/wishlist/items/{productId}/move-to-cart", h.Wishlist.MoveToCart)

	mux.HandleFunc("GET /api/reviews/product/{productId}", h.Review.ListByProduct)
	mux.HandleFunc("POST /api/reviews", h.Review.Create)
	mux.HandleFunc("PUT /api/reviews/{id}/helpful", h.Review.ToggleHelpful)
	mux.HandleFunc("PUT /api/reviews/{id}", h.Review.Update)
	mux.HandleFunc("DELETE /api/reviews/{id}", h.Review.Delete)

	mux.HandleFunc("POST /api/payments/create-order", h.Payment.CreateOrder)
	mux.HandleFunc("POST /api/payments/verify-payment", h.Payment.VerifyPayment)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
