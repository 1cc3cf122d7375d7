package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartcart/internal/domain/model"
	repo "smartcart/internal/repository"
	"smartcart/internal/usecase"
)

func TestProductUsecase_ListProducts_InvalidPage(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_ListProducts_InvalidLimit(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_ListProducts_InvalidSort(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 20, Sort: "alphabetical"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_ListProducts_PriceRangeInverted(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	lo := price("10.00")
	hi := price("5.00")
	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 20, MinPrice: &lo, MaxPrice: &hi})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_ListProducts_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	q := repo.ProductListQuery{Page: 1, Limit: 20, Q: "mug", Sort: "price_asc"}
	pRepo.On("List", mock.Anything, q).Return([]model.Product{
		{ID: "p1", Name: "Mug", Price: price("5.00")},
	}, int64(1), nil)

	out, err := uc.ListProducts(ctx, usecase.ListProductsInput{Page: 1, Limit: 20, Q: "mug", Sort: "price_asc"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, "nope").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), "nope")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestProductUsecase_CreateProduct_Validation(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))

	_, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "  ", Price: price("5.00")})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Mug", Price: price("-1.00")})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_CreateProduct_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Mug" && p.Price.Equal(price("5.00"))
	})).Return(model.Product{ID: "p1", Name: "Mug", Price: price("5.00")}, nil)

	created, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{Name: " Mug ", Price: price("5.00"), InStock: true})
	assert.NoError(t, err)
	assert.Equal(t, "p1", created.ID)

	pRepo.AssertExpectations(t)
}
