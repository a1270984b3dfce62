package service

import (
	"context"
	"errors"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CatalogService struct {
	products   ProductStore
	categories CategoryStore
	logger     *zap.Logger
}

func NewCatalogService(products ProductStore, categories CategoryStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, categories: categories, logger: logger}
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

func (s *CatalogService) ListProducts(ctx context.Context, q repository.ProductQuery) (*ProductPage, error) {
	products, total, err := s.products.List(ctx, q)
	if err != nil {
		return nil, err
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return &ProductPage{Products: products, Total: total, Page: page, Limit: limit}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	product.Active = true
	if err := s.products.Insert(ctx, product); err != nil {
		return err
	}
	s.logger.Info("product created", zap.String("product_id", product.ID.Hex()))
	return nil
}

// ProductUpdate carries the optional fields of a product edit; nil
// means "leave unchanged".
type ProductUpdate struct {
	Name        *string
	Description *string
	CategoryID  *primitive.ObjectID
	Price       *float64
	Stock       *int
	Fabric      *string
	Sizes       []string
	Colors      []string
	Images      []string
	Active      *bool
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*models.Product, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *update.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		set["categoryId"] = *update.CategoryID
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}
	if update.Fabric != nil {
		set["fabric"] = *update.Fabric
	}
	if update.Sizes != nil {
		set["sizes"] = update.Sizes
	}
	if update.Colors != nil {
		set["colors"] = update.Colors
	}
	if update.Images != nil {
		set["images"] = update.Images
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}

	if len(set) > 0 {
		if err := s.products.Update(ctx, id, set); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}
	return s.GetProduct(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.Hex()))
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.categories.Insert(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id primitive.ObjectID, name, description, image string) error {
	set := bson.M{}
	if name != "" {
		set["name"] = name
	}
	if description != "" {
		set["description"] = description
	}
	if image != "" {
		set["image"] = image
	}
	if len(set) == 0 {
		return nil
	}
	if err := s.categories.Update(ctx, id, set); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
