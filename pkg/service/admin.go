package service

import (
	"context"
	"errors"
	"time"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	lowStockThreshold = 5
	dashboardCacheTTL = time.Minute
)

// DashboardCache is the short-lived cache in front of the dashboard
// aggregation queries.
type DashboardCache interface {
	CacheDashboard(ctx context.Context, stats interface{}, ttl time.Duration) error
	GetDashboard(ctx context.Context, dest interface{}) error
}

type AdminService struct {
	users    UserStore
	orders   OrderStore
	products ProductStore
	cache    DashboardCache
	logger   *zap.Logger
}

func NewAdminService(users UserStore, orders OrderStore, products ProductStore, cache DashboardCache, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:    users,
		orders:   orders,
		products: products,
		cache:    cache,
		logger:   logger,
	}
}

type DashboardStats struct {
	Users    int64            `json:"users"`
	Orders   int64            `json:"orders"`
	Revenue  float64          `json:"revenue"`
	LowStock []models.Product `json:"lowStock"`
}

// Dashboard aggregates store-wide counters. Revenue excludes cancelled
// orders. Results are cached briefly; a cache failure falls through to
// the live queries.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if err := s.cache.GetDashboard(ctx, &cached); err == nil {
		return &cached, nil
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.LowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Users:    users,
		Orders:   orders,
		Revenue:  revenue,
		LowStock: lowStock,
	}
	if err := s.cache.CacheDashboard(ctx, stats, dashboardCacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
	}
	return stats, nil
}

func (s *AdminService) ListOrders(ctx context.Context, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	if status != "" && !models.IsValidStatus(status) {
		return nil, 0, ErrInvalidTransition
	}
	return s.orders.ListAll(ctx, status, page, limit)
}

// UpdateOrderStatus advances an order along its lifecycle. Transitions
// outside the fixed sequence are rejected.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidTransition
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !models.CanTransition(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.logger.Info("order status updated",
		zap.String("order_id", orderID.Hex()),
		zap.String("status", string(status)))
	return order, nil
}
