package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewGormStore(db)
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SeedProducts inserts catalog entries that do not exist yet.
func (s *GormStore) SeedProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (s *GormStore) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return models.Product{}, notFound(err)
	}
	return product, nil
}

func (s *GormStore) GetCart(ctx context.Context, ownerID string) (models.Cart, error) {
	return loadCart(s.db.WithContext(ctx), ownerID)
}

func (s *GormStore) UpsertItem(ctx context.Context, ownerID string, item models.CartItem) (models.Cart, error) {
	var out models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := firstOrCreateCart(tx, ownerID)
		if err != nil {
			return err
		}

		var existing models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.CartID, item.ProductID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item.ID = 0
		case err != nil:
			return err
		default:
			item.ID = existing.ID
		}
		item.CartID = cart.CartID
		item.AddedAt = time.Now()
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		out, err = loadCart(tx, ownerID)
		return err
	})
	return out, err
}

func (s *GormStore) SetQuantity(ctx context.Context, ownerID, productID string, quantity int) (models.Cart, error) {
	var out models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("owner_id = ?", ownerID).First(&cart).Error; err != nil {
			return notFound(err)
		}
		result := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
			Updates(map[string]any{"quantity": quantity, "added_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		var err error
		out, err = loadCart(tx, ownerID)
		return err
	})
	return out, err
}

func (s *GormStore) RemoveItem(ctx context.Context, ownerID, productID string) (models.Cart, error) {
	var out models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("owner_id = ?", ownerID).First(&cart).Error; err != nil {
			return notFound(err)
		}
		result := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		var err error
		out, err = loadCart(tx, ownerID)
		return err
	})
	return out, err
}

func (s *GormStore) ClearCart(ctx context.Context, ownerID string) (models.Cart, error) {
	db := s.db.WithContext(ctx)
	var cart models.Cart
	err := db.Where("owner_id = ?", ownerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loadCart(db, ownerID)
	}
	if err != nil {
		return models.Cart{}, err
	}
	if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
		return models.Cart{}, err
	}
	return loadCart(db, ownerID)
}

func (s *GormStore) MergeCarts(ctx context.Context, fromOwner, toOwner string) (models.Cart, error) {
	var out models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var from models.Cart
		err := tx.Preload("Items").Where("owner_id = ?", fromOwner).First(&from).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || fromOwner == toOwner {
			out, err = loadCart(tx, toOwner)
			return err
		}
		if err != nil {
			return err
		}

		to, err := firstOrCreateCart(tx, toOwner)
		if err != nil {
			return err
		}

		for _, item := range from.Items {
			var existing models.CartItem
			lookupErr := tx.Where("cart_id = ? AND product_id = ?", to.CartID, item.ProductID).First(&existing).Error
			switch {
			case lookupErr == nil:
				existing.Quantity += item.Quantity
				existing.AddedAt = time.Now()
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(lookupErr, gorm.ErrRecordNotFound):
				item.ID = 0
				item.CartID = to.CartID
				item.AddedAt = time.Now()
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			default:
				return lookupErr
			}
		}

		if err := tx.Where("cart_id = ?", from.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&from).Error; err != nil {
			return err
		}
		out, err = loadCart(tx, toOwner)
		return err
	})
	return out, err
}

func (s *GormStore) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		var cart models.Cart
		err := tx.Where("owner_id = ?", order.UserID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	return order, err
}

func (s *GormStore) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	q := s.db.WithContext(ctx).Preload("Items").Order("id DESC")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	orders := []models.Order{}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func firstOrCreateCart(tx *gorm.DB, ownerID string) (models.Cart, error) {
	var cart models.Cart
	err := tx.Where("owner_id = ?", ownerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{OwnerID: ownerID}
		err = tx.Create(&cart).Error
	}
	return cart, err
}

func loadCart(db *gorm.DB, ownerID string) (models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("owner_id = ?", ownerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.EmptyCart()
		cart.OwnerID = ownerID
		return cart, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	cart.Recalculate()
	return cart, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
