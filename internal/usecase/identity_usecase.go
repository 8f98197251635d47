package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = entities.NewAuthError("incorrect email or password")

// AccessToken is a bearer credential issued on login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

// IIdentityUseCase registers accounts, logs them in and resolves bearer
// credentials to the identity passed into every lifecycle operation.

type IIdentityUseCase interface {
	Register(ctx context.Context, email, password, name string) (entities.User, error)
	Login(ctx context.Context, email, password string) (AccessToken, error)
	Authenticate(ctx context.Context, credential string) (entities.Identity, error)
	Me(ctx context.Context, caller entities.Identity) (entities.User, error)
}

type IdentityUseCase struct {
	users    interfaces.IUserRepository
	provider interfaces.IIdentityProvider
	hashCost int
	logger   *zap.Logger
}

var _ IIdentityUseCase = (*IdentityUseCase)(nil)

func NewIdentityUseCase(users interfaces.IUserRepository, provider interfaces.IIdentityProvider, logger *zap.Logger) *IdentityUseCase {
	return &IdentityUseCase{users: users, provider: provider, hashCost: bcrypt.DefaultCost, logger: loggerOrNop(logger)}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (u *IdentityUseCase) WithHashCost(cost int) *IdentityUseCase {
	u.hashCost = cost
	return u
}

func (u *IdentityUseCase) Register(ctx context.Context, email, password, name string) (entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return entities.User{}, entities.NewValidationError("email", "must be a valid email address")
	}
	if password == "" {
		return entities.User{}, entities.NewValidationError("password", "must not be empty")
	}
	if len(password) > 72 {
		return entities.User{}, entities.NewValidationError("password", "must be at most 72 bytes")
	}

	existing, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return entities.User{}, entities.NewConflictError("user", email, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.hashCost)
	if err != nil {
		return entities.User{}, err
	}
	user := entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	created, err := u.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.User{}, entities.NewConflictError("user", email, "email already registered")
		}
		return entities.User{}, err
	}
	requestLogger(ctx, u.logger).Info("user registered", zap.String("user_id", created.ID))
	return created, nil
}

func (u *IdentityUseCase) Login(ctx context.Context, email, password string) (AccessToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return AccessToken{}, err
	}
	if user.ID == "" {
		return AccessToken{}, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AccessToken{}, errBadCredentials
	}

	token, expiresAt, err := u.provider.IssueToken(user.Identity())
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: token, TokenType: "bearer", ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer credential and checks that its user still exists.
func (u *IdentityUseCase) Authenticate(ctx context.Context, credential string) (entities.Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return entities.Identity{}, entities.NewAuthError("missing credential")
	}
	id, err := u.provider.Authenticate(ctx, credential)
	if err != nil {
		return entities.Identity{}, err
	}
	user, err := u.users.GetByID(ctx, id.UserID)
	if err != nil {
		return entities.Identity{}, err
	}
	if user.ID == "" {
		return entities.Identity{}, entities.NewAuthError("unknown user")
	}
	return user.Identity(), nil
}

func (u *IdentityUseCase) Me(ctx context.Context, caller entities.Identity) (entities.User, error) {
	if err := requireIdentity(caller); err != nil {
		return entities.User{}, err
	}
	user, err := u.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, entities.NewAuthError("unknown user")
	}
	return user, nil
}
