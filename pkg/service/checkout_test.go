package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCheckoutStore implements repository.CheckoutRunner in memory. WithinTx
// runs the callback against a staged copy and only publishes the staged state
// when the callback succeeds, mirroring a real transaction's rollback.
type fakeCheckoutStore struct {
	addresses map[string]string // addressID -> owner userID
	lines     []models.CartLine
	orders    []models.Order
	items     []models.OrderItem

	failCreateOrder bool
	failCreateItems bool
	failClearCart   bool
}

func (f *fakeCheckoutStore) clone() *fakeCheckoutStore {
	staged := &fakeCheckoutStore{
		addresses:       f.addresses,
		failCreateOrder: f.failCreateOrder,
		failCreateItems: f.failCreateItems,
		failClearCart:   f.failClearCart,
	}
	staged.lines = append([]models.CartLine(nil), f.lines...)
	staged.orders = append([]models.Order(nil), f.orders...)
	staged.items = append([]models.OrderItem(nil), f.items...)
	return staged
}

func (f *fakeCheckoutStore) WithinTx(_ context.Context, fn func(tx repository.CheckoutStore) error) error {
	staged := f.clone()
	if err := fn(staged); err != nil {
		return err
	}
	f.lines = staged.lines
	f.orders = staged.orders
	f.items = staged.items
	return nil
}

func (f *fakeCheckoutStore) AddressBelongsToUser(_ context.Context, addressID, userID string) (bool, error) {
	return f.addresses[addressID] == userID, nil
}

func (f *fakeCheckoutStore) ListCartLines(_ context.Context, _ string) ([]models.CartLine, error) {
	return append([]models.CartLine(nil), f.lines...), nil
}

func (f *fakeCheckoutStore) CreateOrder(_ context.Context, order *models.Order) error {
	if f.failCreateOrder {
		return errors.New("insert failed")
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeCheckoutStore) CreateOrderItems(_ context.Context, items []models.OrderItem) error {
	if f.failCreateItems {
		return errors.New("insert failed")
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeCheckoutStore) ClearCart(_ context.Context, _ string) error {
	if f.failClearCart {
		return errors.New("delete failed")
	}
	f.lines = nil
	return nil
}

type fakeAuditor struct {
	mu   sync.Mutex
	logs []*repository.AuditLog
}

func (f *fakeAuditor) CreateAuditLog(_ context.Context, log *repository.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, log)
	return nil
}

func discounted(v float64) *float64 {
	return &v
}

func newCheckoutFixture() *fakeCheckoutStore {
	return &fakeCheckoutStore{
		addresses: map[string]string{"addr-1": "user-1"},
		lines: []models.CartLine{
			{ProductID: "prod-1", Quantity: 2, Price: 100, DiscountPrice: discounted(80), Stock: 10},
			{ProductID: "prod-2", Quantity: 1, Price: 50, Stock: 5},
		},
	}
}

func TestPlaceOrder_DiscountedTotal(t *testing.T) {
	store := newCheckoutFixture()
	svc := NewCheckoutService(store, &fakeAuditor{}, zap.NewNop())

	result, err := svc.PlaceOrder(context.Background(), "user-1", "addr-1", "razorpay")

	require.NoError(t, err)
	assert.Equal(t, 210.0, result.TotalAmount) // 80*2 + 50*1
	assert.NotEmpty(t, result.OrderID)

	require.Len(t, store.orders, 1)
	order := store.orders[0]
	assert.Equal(t, result.OrderID, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "addr-1", order.AddressID)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, 210.0, order.TotalAmount)
	assert.NotEmpty(t, order.PaymentID)

	require.Len(t, store.items, 2)
	assert.Equal(t, "prod-1", store.items[0].ProductID)
	assert.Equal(t, 80.0, store.items[0].Price)
	assert.Equal(t, 2, store.items[0].Quantity)
	assert.Equal(t, "prod-2", store.items[1].ProductID)
	assert.Equal(t, 50.0, store.items[1].Price)
	assert.Equal(t, 1, store.items[1].Quantity)

	assert.Empty(t, store.lines, "cart must be empty after a successful checkout")
}

func TestPlaceOrder_TotalMatchesItems(t *testing.T) {
	store := newCheckoutFixture()
	svc := NewCheckoutService(store, &fakeAuditor{}, zap.NewNop())

	result, err := svc.PlaceOrder(context.Background(), "user-1", "addr-1", "")
	require.NoError(t, err)

	var sum float64
	for _, item := range store.items {
		sum += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, result.TotalAmount, sum)
	assert.Equal(t, store.orders[0].TotalAmount, sum)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	store := &fakeCheckoutStore{
		addresses: map[string]string{"addr-1": "user-1"},
	}
	svc := NewCheckoutService(store, &fakeAuditor{}, zap.NewNop())

	result, err := svc.PlaceOrder(context.Background(), "user-1", "addr-1", "razorpay")

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, result)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.items)
}

func TestPlaceOrder_AddressNotOwned(t *testing.T) {
	store := newCheckoutFixture()
	store.addresses["addr-2"] = "someone-else"
	svc := NewCheckoutService(store, &fakeAuditor{}, zap.NewNop())

	for _, addressID := range []string{"addr-2", "missing"} {
		result, err := svc.PlaceOrder(context.Background(), "user-1", addressID, "razorpay")

		require.ErrorIs(t, err, ErrAddressNotFound)
		assert.Nil(t, result)
		assert.Empty(t, store.orders)
		assert.Len(t, store.lines, 2, "cart must be untouched")
	}
}

func TestPlaceOrder_RollsBackOnItemInsertFailure(t *testing.T) {
	store := newCheckoutFixture()
	store.failCreateItems = true
	svc := NewCheckoutService(store, &fakeAuditor{}, zap.NewNop())

	result, err := svc.PlaceOrder(context.Background(), "user-1", "addr-1", "razorpay")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, store.orders, "order insert must not survive a failed item insert")
	assert.Empty(t, store.items)
	assert.Len(t, store.lines, 2, "cart must be untouched")
}

func TestPlaceOrder_RollsBackOnCartClearFailure(t *testing.T) {
	store := newCheckoutFixture()
	store.failClearCart = true
	svc := NewCheckoutService(store, &fakeAuditor{}, zap.NewNop())

	result, err := svc.PlaceOrder(context.Background(), "user-1", "addr-1", "razorpay")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.items)
	assert.Len(t, store.lines, 2)
}

func TestPlaceOrder_PriceSnapshotSurvivesRepricing(t *testing.T) {
	store := newCheckoutFixture()
	svc := NewCheckoutService(store, &fakeAuditor{}, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), "user-1", "addr-1", "razorpay")
	require.NoError(t, err)

	snapshot := store.items[0].Price

	// Reprice the product after checkout; the stored item price must not move.
	store.lines = []models.CartLine{
		{ProductID: "prod-1", Quantity: 1, Price: 500, DiscountPrice: discounted(450), Stock: 10},
	}

	assert.Equal(t, snapshot, store.items[0].Price)
	assert.Equal(t, 80.0, store.items[0].Price)
}
