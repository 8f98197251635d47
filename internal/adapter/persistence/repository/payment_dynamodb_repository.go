package repository

import (
	"context"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const paymentsOrderIDIndex = "order_id-index"

type paymentItem struct {
	ID        string `dynamodbav:"id"`
	OrderID   string `dynamodbav:"order_id"`
	Amount    string `dynamodbav:"amount"`
	Currency  string `dynamodbav:"currency"`
	Status    string `dynamodbav:"status"`
	CreatedAt string `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)

type PaymentDynamoRepository struct {
	ddb    DynamoDBAPI
	tables Tables
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoDBAPI, tables Tables) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:    ddb,
		tables: tables.withDefaults(),
	}
}

// Record puts the payment and flips its order pending_payment -> paid in one
// transaction.
func (r *PaymentDynamoRepository) Record(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	put, err := putAction(r.tables.Payments, toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	paid := statusAction(r.tables.Orders, p.OrderID,
		string(entities.OrderStatusPendingPayment), string(entities.OrderStatusPaid), formatTime(p.CreatedAt))

	if err := transact(ctx, r.ddb, []types.TransactWriteItem{paid, put}); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	var it paymentItem
	found, err := getItem(ctx, r.ddb, r.tables.Payments, id, &it)
	if err != nil || !found {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	raw, err := queryIndex[paymentItem](ctx, r.ddb, r.tables.Payments, paymentsOrderIDIndex, "order_id", orderID)
	if err != nil {
		return nil, err
	}
	items := make([]entities.Payment, 0, len(raw))
	for _, it := range raw {
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount.String(),
		Currency:  p.Currency,
		Status:    string(p.Status),
		CreatedAt: formatTime(p.CreatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	amount, _ := decimal.NewFromString(it.Amount)
	return entities.Payment{
		ID:        it.ID,
		OrderID:   it.OrderID,
		Amount:    amount,
		Currency:  it.Currency,
		Status:    entities.PaymentStatus(it.Status),
		CreatedAt: parseTime(it.CreatedAt),
	}
}
