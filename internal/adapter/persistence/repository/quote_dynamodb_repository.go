package repository

import (
	"context"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const quotesRFQIDIndex = "rfq_id-index"

type quoteItem struct {
	ID           string `dynamodbav:"id"`
	RFQID        string `dynamodbav:"rfq_id"`
	SupplierID   string `dynamodbav:"supplier_id"`
	SupplierName string `dynamodbav:"supplier_name"`
	Price        string `dynamodbav:"price"`
	Currency     string `dynamodbav:"currency"`
	LeadTimeDays int    `dynamodbav:"lead_time_days"`
	Notes        string `dynamodbav:"notes,omitempty"`
	Status       string `dynamodbav:"status"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: rfq_id-index (PK: rfq_id)
//
// Price is stored as the decimal's string form to keep it exact.

type QuoteDynamoRepository struct {
	ddb    DynamoDBAPI
	tables Tables
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoDBAPI, tables Tables) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:    ddb,
		tables: tables.withDefaults(),
	}
}

// Create writes q and bumps its RFQ's quote_version in one transaction. The
// transaction is cancelled if the RFQ is missing or already awarded.
func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	put, err := putAction(r.tables.Quotes, toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}
	bump := types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(r.tables.RFQs),
			Key:                 idKey(q.RFQID),
			ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#accepted)"),
			UpdateExpression:    aws.String("SET #version = if_not_exists(#version, :zero) + :one"),
			ExpressionAttributeNames: map[string]string{
				"#id":       "id",
				"#accepted": "accepted_quote_id",
				"#version":  "quote_version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":zero": &types.AttributeValueMemberN{Value: "0"},
				":one":  &types.AttributeValueMemberN{Value: "1"},
			},
		},
	}

	if err := transact(ctx, r.ddb, []types.TransactWriteItem{bump, put}); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var it quoteItem
	found, err := getItem(ctx, r.ddb, r.tables.Quotes, id, &it)
	if err != nil || !found {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByRFQID(ctx context.Context, rfqID string) ([]entities.Quote, error) {
	raw, err := queryIndex[quoteItem](ctx, r.ddb, r.tables.Quotes, quotesRFQIDIndex, "rfq_id", rfqID)
	if err != nil {
		return nil, err
	}
	items := make([]entities.Quote, 0, len(raw))
	for _, it := range raw {
		items = append(items, fromQuoteItem(it))
	}
	return items, nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:           q.ID,
		RFQID:        q.RFQID,
		SupplierID:   q.SupplierID,
		SupplierName: q.SupplierName,
		Price:        q.Price.String(),
		Currency:     q.Currency,
		LeadTimeDays: q.LeadTimeDays,
		Notes:        q.Notes,
		Status:       string(q.Status),
		CreatedAt:    formatTime(q.CreatedAt),
		UpdatedAt:    formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	price, _ := decimal.NewFromString(it.Price)
	return entities.Quote{
		ID:           it.ID,
		RFQID:        it.RFQID,
		SupplierID:   it.SupplierID,
		SupplierName: it.SupplierName,
		Price:        price,
		Currency:     it.Currency,
		LeadTimeDays: it.LeadTimeDays,
		Notes:        it.Notes,
		Status:       entities.QuoteStatus(it.Status),
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
}
