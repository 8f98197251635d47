package interfaces

import (
	"context"
	"milling_aggregator/internal/domain/entities"
)

// IUserRepository abstracts persistence for identity-provider accounts.
// Create yields ErrConditionFailed when the email is already registered.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
}
