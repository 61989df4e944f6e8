package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/events"
	"github.com/funify/funify-api/internal/repository"
	apperrors "github.com/funify/funify-api/pkg/util"
)

// ProductInput is the writable part of a product. Updates replace every field.
type ProductInput struct {
	Name        string
	Description *string
	Price       float64
	Currency    string
	ImageURL    *string
	IsDigital   bool
	DownloadURL *string
}

// ProductService coordinates the storefront.
type ProductService struct {
	products repository.ProductRepository
	events   publisher
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, events: newPublisher(dispatcher, logger)}
}

// List pages through products, optionally for one creator.
func (s *ProductService) List(ctx context.Context, userID *string, page domain.Page) (*PageResult[domain.Product], error) {
	products, total, err := s.products.List(ctx, repository.ProductFilter{UserID: userID}, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(products, total, page), nil
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return product, nil
}

// Meta summarizes the catalogue.
func (s *ProductService) Meta(ctx context.Context) (*domain.ProductMeta, error) {
	return s.products.Meta(ctx)
}

// Collections returns the storefront shelves.
func (s *ProductService) Collections(ctx context.Context) (*domain.ProductCollections, error) {
	return s.products.Collections(ctx)
}

// Create lists a product owned by the caller.
func (s *ProductService) Create(ctx context.Context, callerID string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product := in.apply(&domain.Product{UserID: callerID})
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:       events.EventProductCreated,
		ActorID:    callerID,
		ResourceID: product.ID,
		Payload:    events.ProductCreatedPayload{Name: product.Name, Price: product.Price, Currency: product.Currency},
	})
	return product, nil
}

// Update replaces a product the caller owns.
func (s *ProductService) Update(ctx context.Context, callerID, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product, err := auth.RequireOwner(ctx, "product", callerID, func(ctx context.Context) (*domain.Product, error) {
		return s.products.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	product = in.apply(product)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, notFound(err, "product")
	}
	return product, nil
}

// Delete removes a product the caller owns.
func (s *ProductService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := auth.RequireOwner(ctx, "product", callerID, func(ctx context.Context) (*domain.Product, error) {
		return s.products.GetByID(ctx, id)
	}); err != nil {
		return err
	}
	return notFound(s.products.Delete(ctx, id, callerID), "product")
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if in.Price < 0 {
		return apperrors.NewValidationError("price must not be negative", nil)
	}
	return nil
}

func (in ProductInput) apply(p *domain.Product) *domain.Product {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}
	p.ImageURL = in.ImageURL
	p.IsDigital = in.IsDigital
	p.DownloadURL = in.DownloadURL
	return p
}
