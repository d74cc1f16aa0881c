package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"miniMercado/domain"
)

type stubProductService struct {
	products  []domain.Product
	product   *domain.Product
	getErr    error
	createErr error
	updateErr error
	deleteErr error
}

func (s stubProductService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s stubProductService) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	return s.product, s.getErr
}

func (s stubProductService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return product, s.createErr
}

func (s stubProductService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return product, s.updateErr
}

func (s stubProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.deleteErr
}

func TestGetProductByIDZeroIsBadRequest(t *testing.T) {
	h := NewProductHandler(stubProductService{getErr: errors.New("invalid product id")})
	c, rec := newCartContext(t, http.MethodGet, "/api/v1/products/0", "")
	c.SetParamNames("id")
	c.SetParamValues("0")

	if err := h.GetProductByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	h := NewProductHandler(stubProductService{getErr: errors.New("product not found")})
	c, rec := newCartContext(t, http.MethodGet, "/api/v1/products/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.GetProductByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestDeleteProductZeroIsBadRequest(t *testing.T) {
	h := NewProductHandler(stubProductService{deleteErr: errors.New("invalid product id")})
	c, rec := newCartContext(t, http.MethodDelete, "/api/v1/products/0", "")
	c.SetParamNames("id")
	c.SetParamValues("0")

	if err := h.DeleteProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
