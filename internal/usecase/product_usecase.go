package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

type IProductUseCase interface {
	Create(ctx context.Context, name string, unitPrice decimal.Decimal) (entities.Product, error)
	Get(ctx context.Context, id int64) (entities.Product, error)
	Update(ctx context.Context, id int64, name string, unitPrice decimal.Decimal) (entities.Product, error)
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, limit int32, cursor string) ([]entities.Product, string, error)
}

type ProductUseCase struct {
	repo interfaces.IProductRepository
}

var _ IProductUseCase = (*ProductUseCase)(nil)

func NewProductUseCase(repo interfaces.IProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

func (u *ProductUseCase) Create(ctx context.Context, name string, unitPrice decimal.Decimal) (entities.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || unitPrice.IsNegative() || unitPrice.IsZero() {
		return entities.Product{}, ErrInvalidProduct
	}
	now := time.Now().UTC()
	p := entities.Product{
		ID:        newID(),
		Name:      name,
		UnitPrice: unitPrice,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return u.repo.Create(ctx, p)
}

func (u *ProductUseCase) Get(ctx context.Context, id int64) (entities.Product, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == 0 || !p.Active {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (u *ProductUseCase) Update(ctx context.Context, id int64, name string, unitPrice decimal.Decimal) (entities.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || unitPrice.IsNegative() || unitPrice.IsZero() {
		return entities.Product{}, ErrInvalidProduct
	}
	p, err := u.Get(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}
	p.Name = name
	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now().UTC()
	return u.repo.Update(ctx, p)
}

func (u *ProductUseCase) Deactivate(ctx context.Context, id int64) error {
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}
	return u.repo.Deactivate(ctx, id)
}

func (u *ProductUseCase) List(ctx context.Context, limit int32, cursor string) ([]entities.Product, string, error) {
	return u.repo.List(ctx, limit, cursor)
}
