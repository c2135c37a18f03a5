package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
	carts    map[string]*models.Cart
	orders   []models.Order
	nextCart uint
	nextItem uint
	nextOrd  uint
	now      func() time.Time
}

func NewMemoryStore(catalog []models.Product) *MemoryStore {
	s := &MemoryStore{
		products: make(map[string]models.Product),
		carts:    make(map[string]*models.Cart),
		now:      time.Now,
	}
	for _, p := range catalog {
		s.products[p.ID] = p
	}
	return s
}

func (s *MemoryStore) GetProduct(_ context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) GetCart(_ context.Context, ownerID string) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(ownerID), nil
}

func (s *MemoryStore) UpsertItem(_ context.Context, ownerID string, item models.CartItem) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(ownerID)
	item.CartID = cart.CartID
	item.AddedAt = s.now()
	if i := cart.Find(item.ProductID); i >= 0 {
		item.ID = cart.Items[i].ID
		cart.Items[i] = item
	} else {
		s.nextItem++
		item.ID = s.nextItem
		cart.Items = append(cart.Items, item)
	}
	cart.UpdatedAt = item.AddedAt
	return s.snapshot(ownerID), nil
}

func (s *MemoryStore) SetQuantity(_ context.Context, ownerID, productID string, quantity int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[ownerID]
	if !ok {
		return models.Cart{}, ErrNotFound
	}
	i := cart.Find(productID)
	if i < 0 {
		return models.Cart{}, ErrNotFound
	}
	cart.Items[i].Quantity = quantity
	cart.Items[i].AddedAt = s.now()
	cart.UpdatedAt = cart.Items[i].AddedAt
	return s.snapshot(ownerID), nil
}

func (s *MemoryStore) RemoveItem(_ context.Context, ownerID, productID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[ownerID]
	if !ok {
		return models.Cart{}, ErrNotFound
	}
	i := cart.Find(productID)
	if i < 0 {
		return models.Cart{}, ErrNotFound
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.UpdatedAt = s.now()
	return s.snapshot(ownerID), nil
}

func (s *MemoryStore) ClearCart(_ context.Context, ownerID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[ownerID]; ok {
		cart.Items = nil
		cart.UpdatedAt = s.now()
	}
	return s.snapshot(ownerID), nil
}

func (s *MemoryStore) MergeCarts(_ context.Context, fromOwner, toOwner string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.carts[fromOwner]
	if !ok || fromOwner == toOwner {
		return s.snapshot(toOwner), nil
	}
	to := s.cartFor(toOwner)
	now := s.now()
	for _, item := range from.Items {
		if i := to.Find(item.ProductID); i >= 0 {
			to.Items[i].Quantity += item.Quantity
			to.Items[i].AddedAt = now
			continue
		}
		s.nextItem++
		item.ID = s.nextItem
		item.CartID = to.CartID
		item.AddedAt = now
		to.Items = append(to.Items, item)
	}
	to.UpdatedAt = now
	delete(s.carts, fromOwner)
	return s.snapshot(toOwner), nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOrd++
	order.ID = s.nextOrd
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now()
	}
	s.orders = append(s.orders, order)
	if cart, ok := s.carts[order.UserID]; ok {
		cart.Items = nil
	}
	return order, nil
}

func (s *MemoryStore) ListOrders(_ context.Context, userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range s.orders {
		if userID == "" || o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

// cartFor must be called with s.mu held for writing.
func (s *MemoryStore) cartFor(ownerID string) *models.Cart {
	cart, ok := s.carts[ownerID]
	if !ok {
		s.nextCart++
		now := s.now()
		cart = &models.Cart{CartID: s.nextCart, OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
		s.carts[ownerID] = cart
	}
	return cart
}

// snapshot must be called with s.mu held.
func (s *MemoryStore) snapshot(ownerID string) models.Cart {
	cart, ok := s.carts[ownerID]
	if !ok {
		out := models.EmptyCart()
		out.OwnerID = ownerID
		return out
	}
	out := *cart
	out.Items = append([]models.CartItem(nil), cart.Items...)
	out.Recalculate()
	return out
}
