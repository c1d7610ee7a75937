package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/drfsm113/storefront-client/internal/dto"
)

const (
	clientBasePath = "api/v1/client/"
	reviewBasePath = "api/v1/client/reviews/"
)

// apiClient is the slice of the authenticated transport this service uses
type apiClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Service covers catalog reads for the storefront: products, categories
// and reviews. Admin writes live in AdminService.
type Service struct {
	api apiClient
	log *zap.Logger
}

// NewService creates a catalog service over the authenticated transport
func NewService(api apiClient, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, log: log}
}

// Products lists products matching filter
func (s *Service) Products(ctx context.Context, filter *dto.ProductFilter) (*dto.ProductListResponse, error) {
	path := clientBasePath + "products/"
	if filter != nil {
		q := url.Values{}
		if filter.Category != "" {
			q.Set("category", filter.Category)
		}
		if filter.Brand != "" {
			q.Set("brand", filter.Brand)
		}
		if filter.Search != "" {
			q.Set("search", filter.Search)
		}
		if filter.Page > 0 {
			q.Set("page", strconv.Itoa(filter.Page))
		}
		if filter.PageSize > 0 {
			q.Set("page_size", strconv.Itoa(filter.PageSize))
		}
		if encoded := q.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}

	var out dto.ProductListResponse
	if err := s.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Product fetches one product by slug
func (s *Service) Product(ctx context.Context, slug string) (*dto.Product, error) {
	var out dto.Product
	if err := s.api.Get(ctx, fmt.Sprintf("%sproducts/%s/", clientBasePath, slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories lists all categories
func (s *Service) Categories(ctx context.Context) ([]dto.Category, error) {
	var out []dto.Category
	if err := s.api.Get(ctx, clientBasePath+"categories/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RootCategories lists the top-level category tree
func (s *Service) RootCategories(ctx context.Context) ([]dto.Category, error) {
	var out []dto.Category
	if err := s.api.Get(ctx, clientBasePath+"categories/root_categories/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductReviews lists the reviews for one product
func (s *Service) ProductReviews(ctx context.Context, productID string) ([]dto.Review, error) {
	var out []dto.Review
	if err := s.api.Get(ctx, reviewBasePath+"product/"+productID, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitReview posts a review for a product
func (s *Service) SubmitReview(ctx context.Context, review *dto.Review) (*dto.Review, error) {
	var out dto.Review
	if err := s.api.Post(ctx, reviewBasePath, review, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
