// Package database persists carts, catalog products and orders for the
// storefront backend. Carts are keyed by owner: a user id or an anonymous
// session id.
package database

import (
	"context"
	"errors"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
)

var ErrNotFound = errors.New("database: not found")

type Store interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
	// GetCart returns an empty cart when the owner has none.
	GetCart(ctx context.Context, ownerID string) (models.Cart, error)
	// UpsertItem adds the line or overwrites the existing line for the same product.
	UpsertItem(ctx context.Context, ownerID string, item models.CartItem) (models.Cart, error)
	SetQuantity(ctx context.Context, ownerID, productID string, quantity int) (models.Cart, error)
	RemoveItem(ctx context.Context, ownerID, productID string) (models.Cart, error)
	ClearCart(ctx context.Context, ownerID string) (models.Cart, error)
	// MergeCarts moves every line of fromOwner into toOwner, summing quantities
	// of shared products, and deletes the source cart.
	MergeCarts(ctx context.Context, fromOwner, toOwner string) (models.Cart, error)
	// CreateOrder stores the order and empties the user's cart.
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}

// DefaultCatalog seeds a fresh store.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{ID: "whey-900", Name: "Whey Protein 900g", Image: "/images/whey-900.png", Price: 149.90, Stock: 50,
			Flavors: []string{"chocolate", "vanilla", "strawberry"}, Sizes: []string{"900g"}},
		{ID: "creatine-300", Name: "Creatina Monohidratada 300g", Image: "/images/creatine-300.png", Price: 89.90, Stock: 80,
			Sizes: []string{"150g", "300g"}},
		{ID: "bcaa-120", Name: "BCAA 120 caps", Image: "/images/bcaa-120.png", Price: 59.90, Stock: 30},
		{ID: "shaker", Name: "Coqueteleira 600ml", Image: "/images/shaker.png", Price: 24.50, Stock: 100},
	}
}
