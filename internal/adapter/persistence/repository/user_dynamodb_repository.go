package repository

import (
	"context"
	"strings"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const usersEmailIndex = "email-index"

type userItem struct {
	ID           string `dynamodbav:"id"`
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name,omitempty"`
	PasswordHash string `dynamodbav:"password_hash"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// emailClaimItem reserves an email address. It lives in the users table under
// id "email#<address>" and carries no email attribute, so it stays out of
// email-index.
type emailClaimItem struct {
	ID     string `dynamodbav:"id"`
	UserID string `dynamodbav:"user_id"`
}

// UserDynamoRepository persists identity-provider accounts in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: email-index (PK: email)

type UserDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoDBAPI, tables Tables) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:       ddb,
		tableName: tables.withDefaults().Users,
	}
}

// Create writes the user together with its email claim; a taken email cancels
// the transaction.
func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	u.Email = strings.ToLower(u.Email)
	user, err := putAction(r.tableName, toUserItem(u))
	if err != nil {
		return entities.User{}, err
	}
	claim, err := putAction(r.tableName, emailClaimItem{ID: "email#" + u.Email, UserID: u.ID})
	if err != nil {
		return entities.User{}, err
	}

	if err := transact(ctx, r.ddb, []types.TransactWriteItem{user, claim}); err != nil {
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var it userItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found || it.Email == "" {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	raw, err := queryIndex[userItem](ctx, r.ddb, r.tableName, usersEmailIndex, "email", strings.ToLower(email))
	if err != nil {
		return entities.User{}, err
	}
	if len(raw) == 0 {
		return entities.User{}, nil
	}
	return fromUserItem(raw[0]), nil
}

func toUserItem(u entities.User) userItem {
	return userItem{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    formatTime(u.CreatedAt),
	}
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:           it.ID,
		Email:        it.Email,
		Name:         it.Name,
		PasswordHash: it.PasswordHash,
		CreatedAt:    parseTime(it.CreatedAt),
	}
}
