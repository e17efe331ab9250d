package server

import (
	"errors"
	"math"
	"net/http"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Server) getCart(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	items, err := s.store.ListCartDetails(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error("Get cart error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get cart items")
		return
	}

	var totalAmount float64
	out := make([]gin.H, len(items))
	for i := range items {
		item := &items[i]
		totalAmount += item.EffectivePrice() * float64(item.Quantity)
		out[i] = gin.H{
			"id":            item.ID,
			"productId":     item.ProductID,
			"quantity":      item.Quantity,
			"addedAt":       item.AddedAt,
			"name":          item.Name,
			"price":         item.Price,
			"discountPrice": item.DiscountPrice,
			"stock":         item.Stock,
			"images":        models.DecodeImages(item.Images),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"cartItems":   out,
		"totalAmount": math.Round(totalAmount*100) / 100,
		"itemCount":   len(out),
	})
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) addToCart(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		fail(c, http.StatusBadRequest, "Product ID is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := s.store.ProductExists(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Product not found")
			return
		}
		s.logger.Error("Add to cart error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	if product.Stock < req.Quantity {
		fail(c, http.StatusBadRequest, "Insufficient stock")
		return
	}

	_, err = s.store.GetCartItem(c.Request.Context(), userID, req.ProductID)
	switch {
	case err == nil:
		err = s.store.IncrementCartItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	case errors.Is(err, repository.ErrNotFound):
		err = s.store.AddCartItem(c.Request.Context(), &models.CartItem{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
	}
	if err != nil {
		s.logger.Error("Add to cart error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	s.logger.Info("Item added to cart",
		zap.String("user_id", userID),
		zap.String("product_id", req.ProductID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item added to cart successfully",
	})
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateCartItem(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	productID := c.Param("productId")

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
		fail(c, http.StatusBadRequest, "Valid quantity is required")
		return
	}

	err := s.store.UpdateCartQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Cart item not found")
			return
		}
		s.logger.Error("Update cart item error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart item updated successfully",
	})
}

func (s *Server) removeFromCart(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	productID := c.Param("productId")

	err := s.store.RemoveCartItem(c.Request.Context(), userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Cart item not found")
			return
		}
		s.logger.Error("Remove from cart error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to remove item from cart")
		return
	}

	s.logger.Info("Item removed from cart",
		zap.String("user_id", userID),
		zap.String("product_id", productID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item removed from cart successfully",
	})
}

func (s *Server) clearCart(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	if err := s.store.ClearCart(c.Request.Context(), userID); err != nil {
		s.logger.Error("Clear cart error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	s.logger.Info("Cart cleared", zap.String("user_id", userID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared successfully",
	})
}
