package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/example/storefront/pkg/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createOrderRequest struct {
	AddressID     string `json:"addressId"`
	PaymentMethod string `json:"paymentMethod"`
}

func (s *Server) createOrder(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AddressID == "" {
		fail(c, http.StatusBadRequest, "Address ID is required")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "razorpay"
	}

	result, err := s.checkout.PlaceOrder(c.Request.Context(), userID, req.AddressID, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			fail(c, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, service.ErrAddressNotFound):
			fail(c, http.StatusNotFound, "Address not found")
		default:
			s.logger.Error("Create order error", zap.Error(err))
			fail(c, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Order created successfully",
		"orderId":     result.OrderID,
		"totalAmount": result.TotalAmount,
	})
}

func orderItemsJSON(items []models.OrderItemDetail) []gin.H {
	out := make([]gin.H, len(items))
	for i := range items {
		item := &items[i]
		out[i] = gin.H{
			"id":        item.ID,
			"orderId":   item.OrderID,
			"productId": item.ProductID,
			"quantity":  item.Quantity,
			"price":     item.Price,
			"name":      item.Name,
			"images":    models.DecodeImages(item.Images),
		}
	}
	return out
}

func (s *Server) listOrders(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, err := s.store.ListOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		s.logger.Error("Get orders error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get orders")
		return
	}

	out := make([]gin.H, len(orders))
	for i := range orders {
		order := &orders[i]
		items, err := s.store.ListOrderItems(c.Request.Context(), order.ID)
		if err != nil {
			s.logger.Error("Get orders error", zap.Error(err))
			fail(c, http.StatusInternalServerError, "Failed to get orders")
			return
		}
		out[i] = gin.H{
			"id":           order.ID,
			"addressId":    order.AddressID,
			"totalAmount":  order.TotalAmount,
			"status":       order.Status,
			"paymentId":    order.PaymentID,
			"orderDate":    order.OrderDate,
			"fullName":     order.FullName,
			"addressLine1": order.AddressLine1,
			"city":         order.City,
			"state":        order.State,
			"items":        orderItemsJSON(items),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  out,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
		},
	})
}

func (s *Server) getOrder(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	orderID := c.Param("id")

	order, err := s.store.GetOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Order not found")
			return
		}
		s.logger.Error("Get order error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get order")
		return
	}

	items, err := s.store.ListOrderItems(c.Request.Context(), order.ID)
	if err != nil {
		s.logger.Error("Get order error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"id":           order.ID,
			"addressId":    order.AddressID,
			"totalAmount":  order.TotalAmount,
			"status":       order.Status,
			"paymentId":    order.PaymentID,
			"orderDate":    order.OrderDate,
			"fullName":     order.FullName,
			"addressLine1": order.AddressLine1,
			"addressLine2": order.AddressLine2,
			"city":         order.City,
			"state":        order.State,
			"zipCode":      order.ZipCode,
			"items":        orderItemsJSON(items),
		},
	})
}
