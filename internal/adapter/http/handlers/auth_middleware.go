package handlers

import (
	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/infrastructure/auth"
	"milling_aggregator/internal/usecase"

	"github.com/gin-gonic/gin"
)

const identityContextKey = "identity"

// RequireIdentity resolves the bearer token to an identity and stores it on
// the gin context. Requests without a valid token stop with 401.
func RequireIdentity(uc usecase.IIdentityUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			respondAppError(c, errMissingIdentity)
			return
		}

		identity, err := uc.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// CallerFrom returns the identity stored by RequireIdentity.
func CallerFrom(c *gin.Context) (entities.Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return entities.Identity{}, false
	}
	identity, ok := v.(entities.Identity)
	return identity, ok && !identity.IsZero()
}

func mustCaller(c *gin.Context) (entities.Identity, bool) {
	identity, ok := CallerFrom(c)
	if !ok {
		respondAppError(c, errMissingIdentity)
	}
	return identity, ok
}
