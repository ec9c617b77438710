package services_test

import (
	"testing"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
	"foodcourt/internal/services"

	"github.com/stretchr/testify/assert"
)

func newProductServiceForTest(t *testing.T) *services.ProductService {
	t.Helper()
	repo := repositories.NewMockProductRepository()
	for _, p := range []models.Product{
		{ID: "prod-a", Name: "Pancakes", Category: models.CategoryBreakfast, Price: 8.50, Available: true},
		{ID: "prod-b", Name: "Jollof Rice", Category: models.CategoryLunch, Price: 10.00, Available: true},
		{ID: "prod-c", Name: "Iced Tea", Category: models.CategoryBeverages, Price: 5.00, Available: false},
	} {
		product := p
		if err := repo.Create(&product); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	return services.NewProductService(repo)
}

func TestProductService_ListProducts(t *testing.T) {
	svc := newProductServiceForTest(t)

	// Unavailable products are hidden from the public listing.
	products, err := svc.ListProducts("")
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.True(t, p.Available)
	}
}

func TestProductService_ListProductsByCategory(t *testing.T) {
	svc := newProductServiceForTest(t)

	products, err := svc.ListProducts("Breakfast")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Pancakes", products[0].Name)

	// An unavailable product stays hidden even when its category is asked for.
	products, err = svc.ListProducts("Beverages")
	assert.NoError(t, err)
	assert.Empty(t, products)

	_, err = svc.ListProducts("Midnight")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestProductService_GetAllProductsIncludesUnavailable(t *testing.T) {
	svc := newProductServiceForTest(t)

	products, err := svc.GetAllProducts()
	assert.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestProductService_GetProductByID(t *testing.T) {
	svc := newProductServiceForTest(t)

	product, err := svc.GetProductByID("prod-b")
	assert.NoError(t, err)
	assert.Equal(t, "Jollof Rice", product.Name)

	_, err = svc.GetProductByID("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductService_CreateProductValidation(t *testing.T) {
	svc := newProductServiceForTest(t)

	err := svc.CreateProduct(&models.Product{Name: "Mystery Box", Category: "Mystery", Price: 1})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	err = svc.CreateProduct(&models.Product{Name: "Free Lunch", Category: models.CategoryLunch, Price: -1})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	err = svc.CreateProduct(&models.Product{Name: "Waffles", Category: models.CategoryBreakfast, Price: 6.00, Available: true})
	assert.NoError(t, err)
}

func TestProductService_UpdateProduct(t *testing.T) {
	svc := newProductServiceForTest(t)

	product, err := svc.GetProductByID("prod-a")
	assert.NoError(t, err)
	product.Price = 9.00
	assert.NoError(t, svc.UpdateProduct(product))

	updated, err := svc.GetProductByID("prod-a")
	assert.NoError(t, err)
	assert.Equal(t, 9.00, updated.Price)

	missing := &models.Product{ID: "missing", Name: "Ghost", Category: models.CategoryDinner, Price: 1}
	assert.ErrorIs(t, svc.UpdateProduct(missing), services.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	svc := newProductServiceForTest(t)

	assert.NoError(t, svc.DeleteProduct("prod-a"))
	_, err := svc.GetProductByID("prod-a")
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteProduct("prod-a"), services.ErrNotFound)
}
