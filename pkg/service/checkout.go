package service

import (
	"context"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Auditor records business events outside the relational store.
type Auditor interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
}

// CheckoutService converts a user's cart into a persisted order inside a
// single database transaction: either the order, all of its items and the
// cart deletion land together, or none of them do.
type CheckoutService struct {
	store  repository.CheckoutRunner
	audit  Auditor
	logger *zap.Logger
}

func NewCheckoutService(store repository.CheckoutRunner, audit Auditor, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:  store,
		audit:  audit,
		logger: logger,
	}
}

type PlaceOrderResult struct {
	OrderID     string
	TotalAmount float64
}

// PlaceOrder reads the cart, prices each line (discount price when set, base
// price otherwise), creates the order and one item per line with the price
// snapshotted, and empties the cart. addressID must belong to userID.
// paymentMethod is an opaque tag carried through to the audit trail.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, addressID, paymentMethod string) (*PlaceOrderResult, error) {
	var result PlaceOrderResult

	err := s.store.WithinTx(ctx, func(tx repository.CheckoutStore) error {
		owned, err := tx.AddressBelongsToUser(ctx, addressID, userID)
		if err != nil {
			return fmt.Errorf("failed to verify address: %w", err)
		}
		if !owned {
			return ErrAddressNotFound
		}

		lines, err := tx.ListCartLines(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		order := &models.Order{
			ID:        uuid.NewString(),
			UserID:    userID,
			AddressID: addressID,
			Status:    "pending",
			PaymentID: newPaymentRef(),
			OrderDate: time.Now(),
		}

		items := make([]models.OrderItem, 0, len(lines))
		var total float64
		for _, line := range lines {
			price := line.EffectivePrice()
			total += price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ID:        uuid.NewString(),
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			})
		}
		order.TotalAmount = total

		if err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.CreateOrderItems(ctx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		// TODO: decrement product stock here, under the same transaction.
		// Stock is currently only checked when an item enters the cart.

		if err := tx.ClearCart(ctx, userID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		result = PlaceOrderResult{OrderID: order.ID, TotalAmount: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", result.OrderID),
		zap.String("user_id", userID),
		zap.Float64("total_amount", result.TotalAmount))

	// Audit log
	go s.audit.CreateAuditLog(context.Background(), &repository.AuditLog{
		Action:   "order_placed",
		UserID:   userID,
		EntityID: result.OrderID,
		Data: bson.M{
			"address_id":     addressID,
			"payment_method": paymentMethod,
			"total_amount":   result.TotalAmount,
		},
	})

	return &result, nil
}

func newPaymentRef() string {
	return fmt.Sprintf("pay_%s", uuid.NewString())
}
