package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/config"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CheckoutService turns a cart into a pending order with a gateway
// payment intent, and settles it when the payment callback verifies.
type CheckoutService struct {
	carts    CartStore
	products ProductStore
	orders   OrderStore
	users    UserStore
	gateway  Gateway
	mailer   Notifier
	txn      TxnRunner
	shipping config.ShippingConfig
	logger   *zap.Logger
}

func NewCheckoutService(carts CartStore, products ProductStore, orders OrderStore, users UserStore,
	gateway Gateway, mailer Notifier, txn TxnRunner, shipping config.ShippingConfig, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		products: products,
		orders:   orders,
		users:    users,
		gateway:  gateway,
		mailer:   mailer,
		txn:      txn,
		shipping: shipping,
		logger:   logger,
	}
}

// CheckoutIntent is what the browser needs to open the provider's
// checkout widget.
type CheckoutIntent struct {
	OrderID        string `json:"orderId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

// CreateOrder snapshots the cart at current prices into a Pending order
// and registers the total with the payment gateway. Stock is not touched
// here; it moves only once payment verifies.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID primitive.ObjectID, address models.Address) (*CheckoutIntent, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	byID, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s is no longer available", ErrNotFound, line.ProductID.Hex())
		}
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      product.Name,
			Image:     image,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Size:      line.Size,
			Color:     line.Color,
		})
		subtotal += product.Price * float64(line.Quantity)
	}

	shipping := 0.0
	if subtotal < s.shipping.FreeAbove {
		shipping = s.shipping.FlatRate
	}
	total := subtotal + shipping
	amount := int64(math.Round(total * 100))

	gatewayOrder, err := s.gateway.CreateOrder(ctx, amount, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		Subtotal:        subtotal,
		ShippingCharge:  shipping,
		TotalAmount:     total,
		ShippingAddress: address,
		Status:          models.OrderStatusPending,
		GatewayOrderID:  gatewayOrder.ID,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("gateway_order_id", gatewayOrder.ID),
		zap.Float64("total", total))

	return &CheckoutIntent{
		OrderID:        order.ID.Hex(),
		GatewayOrderID: gatewayOrder.ID,
		Amount:         amount,
		Currency:       "INR",
		KeyID:          s.gateway.KeyID(),
	}, nil
}

// VerifyPayment checks the callback signature and, inside a single
// transaction, places the order, decrements stock per line and clears
// the buyer's cart. A failed conditional decrement aborts the whole
// transaction so stock, order and cart never drift apart.
func (s *CheckoutService) VerifyPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) (*models.Order, error) {
	if !s.gateway.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		s.logger.Warn("payment signature mismatch",
			zap.String("gateway_order_id", gatewayOrderID))
		return nil, ErrVerificationFailed
	}

	order, err := s.orders.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.orders.MarkPlaced(ctx, order.ID, gatewayPaymentID); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Name)
				}
				return err
			}
		}
		return s.carts.Clear(ctx, order.UserID)
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusPlaced
	order.GatewayPaymentID = gatewayPaymentID

	if user, err := s.users.GetByID(ctx, order.UserID); err == nil && user.Email != "" {
		if err := s.mailer.SendOrderConfirmation(user.Email, user.Name, order); err != nil {
			s.logger.Warn("order confirmation mail failed",
				zap.String("order_id", order.ID.Hex()), zap.Error(err))
		}
	}

	s.logger.Info("payment verified",
		zap.String("order_id", order.ID.Hex()),
		zap.String("gateway_payment_id", gatewayPaymentID))
	return order, nil
}

// GetOrder returns one of the user's orders.
func (s *CheckoutService) GetOrder(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
