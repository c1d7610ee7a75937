package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/drfsm113/storefront-client/internal/dto"
)

const adminBasePath = "api/v1/admin/"

// AdminService covers the admin console's catalog management calls. The
// server enforces the admin role; this client only shapes the requests.
type AdminService struct {
	api apiClient
	log *zap.Logger
}

// NewAdminService creates an admin catalog service over the authenticated
// transport
func NewAdminService(api apiClient, log *zap.Logger) *AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminService{api: api, log: log}
}

// CreateProduct adds a product to the catalog
func (s *AdminService) CreateProduct(ctx context.Context, product *dto.Product) (*dto.Product, error) {
	var out dto.Product
	if err := s.api.Post(ctx, adminBasePath+"products/", product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product's fields
func (s *AdminService) UpdateProduct(ctx context.Context, id string, product *dto.Product) (*dto.Product, error) {
	var out dto.Product
	if err := s.api.Put(ctx, fmt.Sprintf("%sproducts/%s/", adminBasePath, id), product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	return s.api.Delete(ctx, fmt.Sprintf("%sproducts/%s/", adminBasePath, id), nil)
}

// CreateCategory adds a category
func (s *AdminService) CreateCategory(ctx context.Context, category *dto.Category) (*dto.Category, error) {
	var out dto.Category
	if err := s.api.Post(ctx, adminBasePath+"categories/", category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory replaces a category's fields
func (s *AdminService) UpdateCategory(ctx context.Context, slug string, category *dto.Category) (*dto.Category, error) {
	var out dto.Category
	if err := s.api.Put(ctx, fmt.Sprintf("%scategories/%s/", adminBasePath, slug), category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category
func (s *AdminService) DeleteCategory(ctx context.Context, slug string) error {
	return s.api.Delete(ctx, fmt.Sprintf("%scategories/%s/", adminBasePath, slug), nil)
}

// Brands lists all brands
func (s *AdminService) Brands(ctx context.Context) ([]dto.Brand, error) {
	var out []dto.Brand
	if err := s.api.Get(ctx, adminBasePath+"brands/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Attributes lists all product attributes
func (s *AdminService) Attributes(ctx context.Context) ([]dto.Attribute, error) {
	var out []dto.Attribute
	if err := s.api.Get(ctx, adminBasePath+"attributes/", &out); err != nil {
		return nil, err
	}
	return out, nil
}
