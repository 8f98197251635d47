package repository

import (
	"context"
	"fmt"
	"strconv"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const ordersRFQIDIndex = "rfq_id-index"

type orderItem struct {
	ID        string `dynamodbav:"id"`
	RFQID     string `dynamodbav:"rfq_id"`
	QuoteID   string `dynamodbav:"quote_id"`
	Status    string `dynamodbav:"status"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB and owns the
// accept-quote transaction, which spans the rfqs, quotes and orders tables.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: rfq_id-index (PK: rfq_id)

type OrderDynamoRepository struct {
	ddb    DynamoDBAPI
	tables Tables
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoDBAPI, tables Tables) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:    ddb,
		tables: tables.withDefaults(),
	}
}

// AcceptQuote commits tx as a single TransactWriteItems call:
//   - award marker on the RFQ, guarded by absence of a previous award and by quote_version
//   - the accepted quote open -> accepted
//   - each superseded quote open -> rejected-by-supersede
//   - the new order, guarded by attribute_not_exists(id)
func (r *OrderDynamoRepository) AcceptQuote(ctx context.Context, tx interfaces.AcceptQuoteTx) error {
	if n := len(tx.SupersededQuoteIDs) + 3; n > maxTransactItems {
		return fmt.Errorf("accept quote %s: %d writes exceed the transaction limit", tx.QuoteID, n)
	}
	now := formatTime(tx.At)

	award := types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(r.tables.RFQs),
			Key:                 idKey(tx.RFQID),
			ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#accepted) AND #version = :version"),
			UpdateExpression:    aws.String("SET #accepted = :quote_id"),
			ExpressionAttributeNames: map[string]string{
				"#id":       "id",
				"#accepted": "accepted_quote_id",
				"#version":  "quote_version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":version":  &types.AttributeValueMemberN{Value: strconv.FormatInt(tx.RFQVersion, 10)},
				":quote_id": &types.AttributeValueMemberS{Value: tx.QuoteID},
			},
		},
	}
	open := string(entities.QuoteStatusOpen)
	actions := []types.TransactWriteItem{
		award,
		statusAction(r.tables.Quotes, tx.QuoteID, open, string(entities.QuoteStatusAccepted), now),
	}
	for _, id := range tx.SupersededQuoteIDs {
		actions = append(actions, statusAction(r.tables.Quotes, id, open, string(entities.QuoteStatusSuperseded), now))
	}
	put, err := putAction(r.tables.Orders, toOrderItem(tx.Order))
	if err != nil {
		return err
	}
	actions = append(actions, put)

	return transact(ctx, r.ddb, actions)
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	var it orderItem
	found, err := getItem(ctx, r.ddb, r.tables.Orders, id, &it)
	if err != nil || !found {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListByRFQID(ctx context.Context, rfqID string) ([]entities.Order, error) {
	raw, err := queryIndex[orderItem](ctx, r.ddb, r.tables.Orders, ordersRFQIDIndex, "rfq_id", rfqID)
	if err != nil {
		return nil, err
	}
	items := make([]entities.Order, 0, len(raw))
	for _, it := range raw {
		items = append(items, fromOrderItem(it))
	}
	return items, nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:        o.ID,
		RFQID:     o.RFQID,
		QuoteID:   o.QuoteID,
		Status:    string(o.Status),
		CreatedAt: formatTime(o.CreatedAt),
		UpdatedAt: formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:        it.ID,
		RFQID:     it.RFQID,
		QuoteID:   it.QuoteID,
		Status:    entities.OrderStatus(it.Status),
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
