package interfaces

import (
	"context"
	"time"

	"milling_aggregator/internal/domain/entities"
)

// IIdentityProvider issues bearer credentials and resolves them back to an identity.
// Authenticate fails with *entities.AuthError.
type IIdentityProvider interface {
	IssueToken(identity entities.Identity) (token string, expiresAt time.Time, err error)
	Authenticate(ctx context.Context, credential string) (entities.Identity, error)
}
