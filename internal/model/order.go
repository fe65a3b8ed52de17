package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the payment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a checkout attempt recorded against a payment intent.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderID         string          `json:"orderId" db:"order_id"`
	PaymentID       *string         `json:"paymentId,omitempty" db:"payment_id"`
	UserID          string          `json:"userId" db:"user_id"`
	UserName        string          `json:"userName" db:"user_name"`
	UserEmail       string          `json:"userEmail" db:"user_email"`
	Items           []OrderItem     `json:"items" db:"-"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Currency        string          `json:"currency" db:"currency"`
	CouponCode      *string         `json:"couponCode,omitempty" db:"coupon_code"`
	ShippingAddress ShippingAddress `json:"shippingAddress" db:"shipping_address"`
	Status          OrderStatus     `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     int64     `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
}

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode"`
	Phone    string `json:"phone"`
}

// CreateOrderRequest is the payload for starting checkout of the session cart.
type CreateOrderRequest struct {
	UserID          string          `json:"userId"`
	UserName        string          `json:"userName"`
	UserEmail       string          `json:"userEmail"`
	Currency        string          `json:"currency"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// CreateOrderResponse carries what the client needs to confirm the payment.
type CreateOrderResponse struct {
	Success        bool            `json:"success"`
	OrderID        string          `json:"orderId"`
	ClientSecret   string          `json:"clientSecret"`
	PublishableKey string          `json:"publishableKey"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
}

// VerifyPaymentRequest confirms a payment intent for an order.
type VerifyPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	OrderID         string `json:"orderId"`
}
