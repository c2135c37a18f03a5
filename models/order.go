package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by seller
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the item
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          string        `gorm:"not null;index" json:"userId"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress Address       `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	TotalAmount     float64       `json:"totalAmount"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"paymentStatus"`
	PaymentMethod   string        `json:"paymentMethod"` // e.g. "card", "pix", "cod"
	CreatedAt       time.Time     `json:"createdAt"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	OrderID     uint    `gorm:"index" json:"-"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Flavor      string  `json:"flavor,omitempty"`
	Size        string  `json:"size,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

// CheckoutRequest is the body of POST /api/Cart/checkout.
type CheckoutRequest struct {
	PaymentMethod   string  `json:"paymentMethod" binding:"required"`
	ShippingAddress Address `json:"shippingAddress"`
}

// NewOrderFromCart snapshots the cart lines into a pending order.
func NewOrderFromCart(userID string, cart Cart, req CheckoutRequest, now time.Time) Order {
	order := Order{
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     cart.TotalAmount,
		Status:          OrderStatusPending,
		PaymentStatus:   PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Flavor:      item.Flavor,
			Size:        item.Size,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return order
}
