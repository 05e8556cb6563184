package service

import (
	"context"
	"time"

	"github.com/finwatch/finwatch/internal/retail/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryService manages product categories.
type CategoryService interface {
	Create(ctx context.Context, dto CategoryCreateDto) (*CategoryDto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*CategoryDto, error)
	FindAll(ctx context.Context) ([]CategoryDto, error)
	Update(ctx context.Context, id uuid.UUID, dto CategoryCreateDto) (*CategoryDto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService manages the product catalog.
type ProductService interface {
	Create(ctx context.Context, dto ProductCreateDto) (*ProductDto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)
	FindAll(ctx context.Context) ([]ProductDto, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductDto, error)
	FindLowStock(ctx context.Context, threshold int32) ([]ProductDto, error)
	FindExpiring(ctx context.Context, withinDays int32) ([]ProductDto, error)
	Update(ctx context.Context, id uuid.UUID, dto ProductCreateDto) (*ProductDto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryDto struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type CategoryCreateDto struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type ProductDto struct {
	ID                uuid.UUID       `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	CategoryID        uuid.UUID       `json:"categoryId"`
	PurchasePrice     decimal.Decimal `json:"purchasePrice"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	AvailableQuantity int32           `json:"availableQuantity"`
	ExpirationDate    *time.Time      `json:"expirationDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         *time.Time      `json:"updatedAt,omitempty"`
}

type ProductCreateDto struct {
	Code              string          `json:"code" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	CategoryID        uuid.UUID       `json:"categoryId" validate:"required"`
	PurchasePrice     decimal.Decimal `json:"purchasePrice" validate:"required"`
	SellingPrice      decimal.Decimal `json:"sellingPrice" validate:"required"`
	AvailableQuantity int32           `json:"availableQuantity" validate:"min=0"`
	ExpirationDate    *time.Time      `json:"expirationDate,omitempty"`
}

type Categories struct {
	catalog store.Catalog
}

func NewCategoryService(catalog store.Catalog) *Categories {
	return &Categories{catalog: catalog}
}

func (s *Categories) Create(ctx context.Context, dto CategoryCreateDto) (*CategoryDto, error) {
	created, err := s.catalog.CreateCategory(ctx, &store.Category{Name: dto.Name, Description: dto.Description})
	if err != nil {
		return nil, err
	}
	return toCategoryDto(created), nil
}

func (s *Categories) FindByID(ctx context.Context, id uuid.UUID) (*CategoryDto, error) {
	found, err := s.catalog.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDto(found), nil
}

func (s *Categories) FindAll(ctx context.Context) ([]CategoryDto, error) {
	categories, err := s.catalog.FindAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CategoryDto, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, *toCategoryDto(&categories[i]))
	}
	return dtos, nil
}

func (s *Categories) Update(ctx context.Context, id uuid.UUID, dto CategoryCreateDto) (*CategoryDto, error) {
	updated, err := s.catalog.UpdateCategory(ctx, &store.Category{ID: id, Name: dto.Name, Description: dto.Description})
	if err != nil {
		return nil, err
	}
	return toCategoryDto(updated), nil
}

func (s *Categories) Delete(ctx context.Context, id uuid.UUID) error {
	return s.catalog.DeleteCategory(ctx, id)
}

func toCategoryDto(c *store.Category) *CategoryDto {
	return &CategoryDto{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type Products struct {
	catalog store.Catalog
}

func NewProductService(catalog store.Catalog) *Products {
	return &Products{catalog: catalog}
}

func (s *Products) Create(ctx context.Context, dto ProductCreateDto) (*ProductDto, error) {
	if _, err := s.catalog.FindCategoryByID(ctx, dto.CategoryID); err != nil {
		return nil, err
	}
	created, err := s.catalog.CreateProduct(ctx, &store.Product{
		Code:              dto.Code,
		Name:              dto.Name,
		CategoryID:        dto.CategoryID,
		PurchasePrice:     dto.PurchasePrice,
		SellingPrice:      dto.SellingPrice,
		AvailableQuantity: dto.AvailableQuantity,
		ExpirationDate:    dto.ExpirationDate,
	})
	if err != nil {
		return nil, err
	}
	return toProductDto(created), nil
}

func (s *Products) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	found, err := s.catalog.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDto(found), nil
}

func (s *Products) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.catalog.FindAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	return toProductDtos(products), nil
}

func (s *Products) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductDto, error) {
	products, err := s.catalog.FindProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toProductDtos(products), nil
}

func (s *Products) FindLowStock(ctx context.Context, threshold int32) ([]ProductDto, error) {
	products, err := s.catalog.FindLowStockProducts(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return toProductDtos(products), nil
}

func (s *Products) FindExpiring(ctx context.Context, withinDays int32) ([]ProductDto, error) {
	before := time.Now().UTC().AddDate(0, 0, int(withinDays))
	products, err := s.catalog.FindExpiringProducts(ctx, before)
	if err != nil {
		return nil, err
	}
	return toProductDtos(products), nil
}

func (s *Products) Update(ctx context.Context, id uuid.UUID, dto ProductCreateDto) (*ProductDto, error) {
	if _, err := s.catalog.FindCategoryByID(ctx, dto.CategoryID); err != nil {
		return nil, err
	}
	updated, err := s.catalog.UpdateProduct(ctx, &store.Product{
		ID:                id,
		Code:              dto.Code,
		Name:              dto.Name,
		CategoryID:        dto.CategoryID,
		PurchasePrice:     dto.PurchasePrice,
		SellingPrice:      dto.SellingPrice,
		AvailableQuantity: dto.AvailableQuantity,
		ExpirationDate:    dto.ExpirationDate,
	})
	if err != nil {
		return nil, err
	}
	return toProductDto(updated), nil
}

func (s *Products) Delete(ctx context.Context, id uuid.UUID) error {
	return s.catalog.DeleteProduct(ctx, id)
}

func toProductDto(p *store.Product) *ProductDto {
	return &ProductDto{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		CategoryID:        p.CategoryID,
		PurchasePrice:     p.PurchasePrice,
		SellingPrice:      p.SellingPrice,
		AvailableQuantity: p.AvailableQuantity,
		ExpirationDate:    p.ExpirationDate,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toProductDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, 0, len(products))
	for i := range products {
		dtos = append(dtos, *toProductDto(&products[i]))
	}
	return dtos
}
