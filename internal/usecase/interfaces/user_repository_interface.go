package interfaces

import (
	"context"

	"invoicetracker/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id int64) (entities.User, error)
	GetByUsername(ctx context.Context, username string) (entities.User, error)
}
