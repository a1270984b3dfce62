package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CartService struct {
	carts    CartStore
	products ProductStore
	logger   *zap.Logger
}

func NewCartService(carts CartStore, products ProductStore, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// CartLine is a cart item with its product details resolved.
type CartLine struct {
	models.CartItem
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
	Stock  int      `json:"stock"`
}

type CartView struct {
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// Get resolves each line's product details. Lines whose product no
// longer exists are dropped from the view rather than failing it.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: []CartLine{}}
	if len(cart.Items) == 0 {
		return view, nil
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	byID, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		view.Items = append(view.Items, CartLine{
			CartItem: item,
			Name:     product.Name,
			Price:    product.Price,
			Images:   product.Images,
			Stock:    product.Stock,
		})
		view.Subtotal += product.Price * float64(item.Quantity)
	}
	return view, nil
}

// AddItem puts quantity of a (product, size, color) line into the cart.
// An existing line with the same identity is incremented. Stock is
// checked against the requested quantity at add time only.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int, size, color string) (*models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, product.Name, product.Stock)
	}

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	line := models.CartItem{ProductID: productID, Quantity: quantity, Size: size, Color: color}
	merged := false
	for i := range cart.Items {
		if cart.Items[i].SameLine(line) {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, line)
	}

	if err := s.carts.ReplaceItems(ctx, userID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of one variant line. Zero or below
// removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, size, color string, quantity int) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	target := models.CartItem{ProductID: productID, Size: size, Color: color}
	found := false
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.SameLine(target) {
			found = true
			if quantity <= 0 {
				continue
			}
			item.Quantity = quantity
		}
		items = append(items, item)
	}
	if !found {
		return nil, ErrNotFound
	}
	cart.Items = items

	if err := s.carts.ReplaceItems(ctx, userID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops lines matching the product and variant selectors,
// leaving other variants of the same product untouched.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID, size, color string) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	target := models.CartItem{ProductID: productID, Size: size, Color: color}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.SameLine(target) {
			continue
		}
		items = append(items, item)
	}
	cart.Items = items

	if err := s.carts.ReplaceItems(ctx, userID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// MergeGuestCart folds a client-held guest cart into the user's server
// cart, summing quantities per (product, size, color) line across both.
// The merged list replaces the server cart wholesale; the guest copy is
// the client's to discard.
func (s *CartService) MergeGuestCart(ctx context.Context, userID primitive.ObjectID, guestItems []models.CartItem) (*models.Cart, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := append([]models.CartItem{}, cart.Items...)
	for _, guest := range guestItems {
		if guest.Quantity < 1 {
			continue
		}
		found := false
		for i := range merged {
			if merged[i].SameLine(guest) {
				merged[i].Quantity += guest.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, guest)
		}
	}

	if err := s.carts.ReplaceItems(ctx, userID, merged); err != nil {
		return nil, err
	}
	cart.Items = merged
	s.logger.Info("guest cart merged",
		zap.String("user_id", userID.Hex()),
		zap.Int("lines", len(merged)))
	return cart, nil
}

// Clear is idempotent: clearing a missing or empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.Clear(ctx, userID)
}

// loadCart returns the user's cart, or an empty in-memory cart when
// none exists yet. The document is created lazily on first write.
func (s *CartService) loadCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}
