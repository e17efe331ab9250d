package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func productJSON(p *models.ProductWithCategory) gin.H {
	return gin.H{
		"id":            p.ID,
		"name":          p.Name,
		"description":   p.Description,
		"price":         p.Price,
		"discountPrice": p.DiscountPrice,
		"stock":         p.Stock,
		"categoryId":    p.CategoryID,
		"categoryName":  p.CategoryName,
		"images":        p.ImageList(),
		"rating":        p.Rating,
		"reviewCount":   p.ReviewCount,
		"createdAt":     p.CreatedAt,
	}
}

func productListJSON(products []models.ProductWithCategory) []gin.H {
	out := make([]gin.H, len(products))
	for i := range products {
		out[i] = productJSON(&products[i])
	}
	return out
}

func (s *Server) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	filter := repository.ProductFilter{
		Page:      page,
		Limit:     limit,
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "DESC"),
	}

	products, err := s.store.ListProducts(c.Request.Context(), filter)
	if err != nil {
		s.logger.Error("Get products error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": productListJSON(products),
		"pagination": gin.H{
			"page":  filter.Page,
			"limit": filter.Limit,
		},
	})
}

func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")

	if cached, err := s.cache.GetProductCache(c.Request.Context(), id); err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "product": productJSON(cached)})
		return
	}

	product, err := s.store.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Product not found")
			return
		}
		s.logger.Error("Get product error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get product")
		return
	}

	s.cache.CacheProduct(c.Request.Context(), product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": productJSON(product),
	})
}

func (s *Server) listFeaturedProducts(c *gin.Context) {
	products, err := s.store.ListFeaturedProducts(c.Request.Context())
	if err != nil {
		s.logger.Error("Get featured products error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get featured products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": productListJSON(products),
	})
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.store.ListCategories(c.Request.Context())
	if err != nil {
		s.logger.Error("Get categories error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}
