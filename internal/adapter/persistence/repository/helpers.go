package repository

import (
	"context"
	"errors"
	"time"

	"milling_aggregator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the slice of *dynamodb.Client the repositories use.
//
//go:generate mockgen -source=helpers.go -destination=mocks/mock_dynamodb_api.go -package=mocks
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

// Tables names the DynamoDB tables backing each entity.
type Tables struct {
	RFQs     string
	Quotes   string
	Orders   string
	Payments string
	Users    string
}

const (
	defaultRFQsTableName     = "rfqs"
	defaultQuotesTableName   = "quotes"
	defaultOrdersTableName   = "orders"
	defaultPaymentsTableName = "payments"
	defaultUsersTableName    = "users"

	// TransactWriteItems accepts at most this many actions.
	maxTransactItems = 100
)

func (t Tables) withDefaults() Tables {
	t.RFQs = orDefault(t.RFQs, defaultRFQsTableName)
	t.Quotes = orDefault(t.Quotes, defaultQuotesTableName)
	t.Orders = orDefault(t.Orders, defaultOrdersTableName)
	t.Payments = orDefault(t.Payments, defaultPaymentsTableName)
	t.Users = orDefault(t.Users, defaultUsersTableName)
	return t
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func getItem(ctx context.Context, ddb DynamoDBAPI, table, id string, out any) (bool, error) {
	res, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return false, err
	}
	return true, nil
}

// putNew writes item only if no item with the same id exists.
func putNew(ctx context.Context, ddb DynamoDBAPI, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return mapConditionErr(err)
}

// queryIndex pages through every item of a GSI partition.
func queryIndex[T any](ctx context.Context, ddb DynamoDBAPI, table, index, attr, value string) ([]T, error) {
	p := dynamodb.NewQueryPaginator(ddb, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})

	var items []T
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it T
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, it)
		}
	}
	return items, nil
}

func putAction(table string, item any) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(table),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		},
	}, nil
}

// statusAction moves an item from one status to another, guarded on the
// current status.
func statusAction(table, id, from, to, now string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(table),
			Key:                 idKey(id),
			ConditionExpression: aws.String("#status = :from"),
			UpdateExpression:    aws.String("SET #status = :to, #updated_at = :now"),
			ExpressionAttributeNames: map[string]string{
				"#status":     "status",
				"#updated_at": "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":from": &types.AttributeValueMemberS{Value: from},
				":to":   &types.AttributeValueMemberS{Value: to},
				":now":  &types.AttributeValueMemberS{Value: now},
			},
		},
	}
}

func transact(ctx context.Context, ddb DynamoDBAPI, actions []types.TransactWriteItem) error {
	_, err := ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: actions,
	})
	return mapConditionErr(err)
}

// mapConditionErr turns a lost guard into interfaces.ErrConditionFailed. A
// transaction cancelled because another transaction held one of its items is
// reported the same way: the caller lost the race either way.
func mapConditionErr(err error) error {
	if err == nil {
		return nil
	}
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return interfaces.ErrConditionFailed
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			switch aws.ToString(reason.Code) {
			case "ConditionalCheckFailed", "TransactionConflict":
				return interfaces.ErrConditionFailed
			}
		}
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
