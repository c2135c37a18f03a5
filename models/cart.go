package models

import (
	"math"
	"time"
)

// Cart is both the persisted backend cart and the JSON body every /api/Cart call answers with.
type Cart struct {
	CartID      uint       `gorm:"primaryKey" json:"-"`
	OwnerID     string     `gorm:"uniqueIndex" json:"-"`                                       // user id or anonymous session id, ONE cart per owner
	Items       []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // Cascade delete items if cart is deleted
	TotalAmount float64    `gorm:"-" json:"totalAmount"`
	TotalItems  int        `gorm:"-" json:"totalItems"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// CartItem is one cart line. ProductID is the line identity: flavor and size
// of a second add overwrite the existing line instead of appending a new one.
type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	CartID       uint      `gorm:"index" json:"-"` // Faster queries
	ProductID    string    `gorm:"index" json:"productId"`
	Quantity     int       `json:"quantity"`
	Flavor       string    `json:"flavor,omitempty"`
	Size         string    `json:"size,omitempty"`
	ProductName  string    `json:"productName"`
	ProductImage string    `json:"productImage"`
	UnitPrice    float64   `json:"unitPrice"`
	TotalPrice   float64   `json:"totalPrice"`
	AddedAt      time.Time `json:"-"`
}

// EmptyCart is the zero-item placeholder the client falls back to.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}

// Recalculate refreshes line totals and the cart aggregates from the items.
func (c *Cart) Recalculate() {
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	var amount float64
	var count int
	for i := range c.Items {
		c.Items[i].TotalPrice = roundCents(c.Items[i].UnitPrice * float64(c.Items[i].Quantity))
		amount += c.Items[i].TotalPrice
		count += c.Items[i].Quantity
	}
	c.TotalAmount = roundCents(amount)
	c.TotalItems = count
}

// Find returns the index of the line for productID, or -1.
func (c *Cart) Find(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
