package server

import (
	"errors"
	"net/http"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Server) getWishlist(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	items, err := s.store.ListWishlist(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error("Get wishlist error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get wishlist items")
		return
	}

	out := make([]gin.H, len(items))
	for i := range items {
		item := &items[i]
		out[i] = gin.H{
			"id":            item.ID,
			"productId":     item.ProductID,
			"addedAt":       item.AddedAt,
			"name":          item.Name,
			"price":         item.Price,
			"discountPrice": item.DiscountPrice,
			"rating":        item.Rating,
			"reviewCount":   item.ReviewCount,
			"images":        models.DecodeImages(item.Images),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"wishlistItems": out,
		"itemCount":     len(out),
	})
}

type addToWishlistRequest struct {
	ProductID string `json:"productId"`
}

func (s *Server) addToWishlist(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	var req addToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		fail(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	if _, err := s.store.ProductExists(c.Request.Context(), req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Product not found")
			return
		}
		s.logger.Error("Add to wishlist error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to add item to wishlist")
		return
	}

	exists, err := s.store.InWishlist(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		s.logger.Error("Add to wishlist error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to add item to wishlist")
		return
	}
	if exists {
		fail(c, http.StatusBadRequest, "Item already in wishlist")
		return
	}

	err = s.store.AddWishlistItem(c.Request.Context(), &models.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: req.ProductID,
	})
	if err != nil {
		s.logger.Error("Add to wishlist error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to add item to wishlist")
		return
	}

	s.logger.Info("Item added to wishlist",
		zap.String("user_id", userID),
		zap.String("product_id", req.ProductID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item added to wishlist successfully",
	})
}

func (s *Server) removeFromWishlist(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	productID := c.Param("productId")

	err := s.store.RemoveWishlistItem(c.Request.Context(), userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Wishlist item not found")
			return
		}
		s.logger.Error("Remove from wishlist error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to remove item from wishlist")
		return
	}

	s.logger.Info("Item removed from wishlist",
		zap.String("user_id", userID),
		zap.String("product_id", productID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item removed from wishlist successfully",
	})
}

func (s *Server) checkWishlistStatus(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	productID := c.Param("productId")

	exists, err := s.store.InWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		s.logger.Error("Check wishlist status error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to check wishlist status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"inWishlist": exists,
	})
}
