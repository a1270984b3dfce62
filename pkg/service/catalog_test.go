package service

import (
	"context"
	"testing"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateProductRequiresCategory(t *testing.T) {
	category := &models.Category{Name: "Sarees"}
	categories := newFakeCategoryStore(category)
	svc := NewCatalogService(newFakeProductStore(), categories, zap.NewNop())
	ctx := context.Background()

	product := &models.Product{Name: "Banarasi Saree", CategoryID: category.ID, Price: 2500, Stock: 10}
	require.NoError(t, svc.CreateProduct(ctx, product))
	assert.True(t, product.Active, "new products start active")

	orphan := &models.Product{Name: "Orphan", Price: 100}
	assert.ErrorIs(t, svc.CreateProduct(ctx, orphan), ErrNotFound)
}

func TestUpdateProductPartialFields(t *testing.T) {
	category := &models.Category{Name: "Sarees"}
	categories := newFakeCategoryStore(category)
	product := &models.Product{Name: "Saree", CategoryID: category.ID, Price: 2500, Stock: 10, Active: true}
	products := newFakeProductStore(product)
	svc := NewCatalogService(products, categories, zap.NewNop())
	ctx := context.Background()

	price := 1999.0
	_, err := svc.UpdateProduct(ctx, product.ID, ProductUpdate{Price: &price})
	require.NoError(t, err)

	// A category change is validated before it is applied.
	bogus := product.ID // any ID that is not a category
	_, err = svc.UpdateProduct(ctx, product.ID, ProductUpdate{CategoryID: &bogus})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProductsPaginationDefaults(t *testing.T) {
	svc := NewCatalogService(newFakeProductStore(), newFakeCategoryStore(), zap.NewNop())

	page, err := svc.ListProducts(context.Background(), repository.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)

	page, err = svc.ListProducts(context.Background(), repository.ProductQuery{Page: 3, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 20, page.Limit)
}

func TestCategoryDuplicateName(t *testing.T) {
	svc := NewCatalogService(newFakeProductStore(), newFakeCategoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.CreateCategory(ctx, &models.Category{Name: "Sarees"}))
	err := svc.CreateCategory(ctx, &models.Category{Name: "Sarees"})
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}
