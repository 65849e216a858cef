package interfaces

import (
	"context"

	"invoicetracker/internal/domain/entities"
)

// IProductRepository abstracts DynamoDB persistence for Product.
//
// GetByIDs is a single batch lookup; ids that do not resolve are simply
// absent from the result, they do not error.

type IProductRepository interface {
	Create(ctx context.Context, p entities.Product) (entities.Product, error)
	GetByID(ctx context.Context, id int64) (entities.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entities.Product, error)
	Update(ctx context.Context, p entities.Product) (entities.Product, error)
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, limit int32, cursor string) ([]entities.Product, string, error)
}
