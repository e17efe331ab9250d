package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/example/storefront/pkg/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCheckoutStore is just enough of repository.CheckoutRunner to drive the
// order handler; the transactional behavior itself is covered by the service
// tests.
type stubCheckoutStore struct {
	addresses map[string]string
	lines     []models.CartLine
	orders    []models.Order
	items     []models.OrderItem
}

func (s *stubCheckoutStore) WithinTx(_ context.Context, fn func(tx repository.CheckoutStore) error) error {
	return fn(s)
}

func (s *stubCheckoutStore) AddressBelongsToUser(_ context.Context, addressID, userID string) (bool, error) {
	return s.addresses[addressID] == userID, nil
}

func (s *stubCheckoutStore) ListCartLines(_ context.Context, _ string) ([]models.CartLine, error) {
	return s.lines, nil
}

func (s *stubCheckoutStore) CreateOrder(_ context.Context, order *models.Order) error {
	s.orders = append(s.orders, *order)
	return nil
}

func (s *stubCheckoutStore) CreateOrderItems(_ context.Context, items []models.OrderItem) error {
	s.items = append(s.items, items...)
	return nil
}

func (s *stubCheckoutStore) ClearCart(_ context.Context, _ string) error {
	s.lines = nil
	return nil
}

type nopAuditor struct{}

func (nopAuditor) CreateAuditLog(_ context.Context, _ *repository.AuditLog) error {
	return nil
}

func newOrderTestServer(store *stubCheckoutStore) *Server {
	logger := zap.NewNop()
	checkout := service.NewCheckoutService(store, nopAuditor{}, logger)
	return NewServer(&config.Config{}, logger, nil, nil, checkout, nil)
}

func performCreateOrder(t *testing.T, srv *Server, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(ctxUserID, userID)
	srv.createOrder(c)
	return w
}

func TestCreateOrder_Success(t *testing.T) {
	price := 80.0
	store := &stubCheckoutStore{
		addresses: map[string]string{"addr-1": "user-1"},
		lines: []models.CartLine{
			{ProductID: "prod-1", Quantity: 2, Price: 100, DiscountPrice: &price},
			{ProductID: "prod-2", Quantity: 1, Price: 50},
		},
	}
	srv := newOrderTestServer(store)

	w := performCreateOrder(t, srv, "user-1", `{"addressId":"addr-1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success     bool    `json:"success"`
		OrderID     string  `json:"orderId"`
		TotalAmount float64 `json:"totalAmount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, 210.0, resp.TotalAmount)
	assert.Empty(t, store.lines)
}

func TestCreateOrder_MissingAddressID(t *testing.T) {
	srv := newOrderTestServer(&stubCheckoutStore{})

	w := performCreateOrder(t, srv, "user-1", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Address ID is required")
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	store := &stubCheckoutStore{
		addresses: map[string]string{"addr-1": "user-1"},
	}
	srv := newOrderTestServer(store)

	w := performCreateOrder(t, srv, "user-1", `{"addressId":"addr-1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
	assert.Empty(t, store.orders)
}

func TestCreateOrder_UnknownAddress(t *testing.T) {
	store := &stubCheckoutStore{
		addresses: map[string]string{"addr-1": "someone-else"},
		lines: []models.CartLine{
			{ProductID: "prod-1", Quantity: 1, Price: 10},
		},
	}
	srv := newOrderTestServer(store)

	w := performCreateOrder(t, srv, "user-1", `{"addressId":"addr-1"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Address not found")
	assert.Empty(t, store.orders)
	assert.Len(t, store.lines, 1)
}
