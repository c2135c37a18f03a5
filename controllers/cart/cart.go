package cartControllers

import (
	"errors"
	"net/http"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/database"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/middleware"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /api/Cart
func GetCart(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := store.GetCart(c.Request.Context(), c.GetString(middleware.KeyOwnerID))
		if err != nil {
			internalError(c, logger, "Failed to fetch cart", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /api/Cart/items
func AddItem(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.AddItemRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			businessError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		// Fetch product from catalog
		product, err := store.GetProduct(c.Request.Context(), input.ProductID)
		if errors.Is(err, database.ErrNotFound) {
			businessError(c, http.StatusBadRequest, "Product does not exist", "unknown product "+input.ProductID)
			return
		}
		if err != nil {
			internalError(c, logger, "Failed to validate product", err)
			return
		}
		if !models.OffersVariant(product.Flavors, input.Flavor) {
			businessError(c, http.StatusBadRequest, "Flavor not available", "flavor "+input.Flavor+" is not offered")
			return
		}
		if !models.OffersVariant(product.Sizes, input.Size) {
			businessError(c, http.StatusBadRequest, "Size not available", "size "+input.Size+" is not offered")
			return
		}
		if input.Quantity > product.Stock {
			businessError(c, http.StatusConflict, "Insufficient stock", "only "+itoa(product.Stock)+" left")
			return
		}

		cart, err := store.UpsertItem(c.Request.Context(), c.GetString(middleware.KeyOwnerID), models.CartItem{
			ProductID:    product.ID,
			Quantity:     input.Quantity,
			Flavor:       input.Flavor,
			Size:         input.Size,
			ProductName:  product.Name,
			ProductImage: product.Image,
			UnitPrice:    product.Price,
		})
		if err != nil {
			internalError(c, logger, "Failed to add item to cart", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// PUT /api/Cart/items/:product_id
func UpdateItem(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.UpdateItemRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			businessError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}
		productID := c.Param("product_id")

		product, err := store.GetProduct(c.Request.Context(), productID)
		if err == nil && input.Quantity > product.Stock {
			businessError(c, http.StatusConflict, "Insufficient stock", "only "+itoa(product.Stock)+" left")
			return
		}

		cart, err := store.SetQuantity(c.Request.Context(), c.GetString(middleware.KeyOwnerID), productID, input.Quantity)
		if errors.Is(err, database.ErrNotFound) {
			businessError(c, http.StatusNotFound, "Cart item not found", "product "+productID+" is not in the cart")
			return
		}
		if err != nil {
			internalError(c, logger, "Failed to update cart item", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /api/Cart/items/:product_id
func RemoveItem(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("product_id")
		cart, err := store.RemoveItem(c.Request.Context(), c.GetString(middleware.KeyOwnerID), productID)
		if errors.Is(err, database.ErrNotFound) {
			businessError(c, http.StatusNotFound, "Cart item not found", "product "+productID+" is not in the cart")
			return
		}
		if err != nil {
			internalError(c, logger, "Failed to delete item", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /api/Cart
func ClearCart(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := store.ClearCart(c.Request.Context(), c.GetString(middleware.KeyOwnerID))
		if err != nil {
			internalError(c, logger, "Failed to clear cart", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// GET /admin/carts/:owner_id
func GetAdminCart(store database.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.Param("owner_id")
		cart, err := store.GetCart(c.Request.Context(), ownerID)
		if err != nil {
			internalError(c, logger, "Failed to fetch cart", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func businessError(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, models.ErrorResponse{Message: message, Errors: errs})
}

func internalError(c *gin.Context, logger *zap.Logger, message string, err error) {
	logger.Error("❌ "+message, zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
