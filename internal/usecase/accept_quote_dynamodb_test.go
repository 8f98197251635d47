package usecase

import (
	"context"
	"errors"
	"testing"

	"milling_aggregator/internal/adapter/persistence/repository"
	"milling_aggregator/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// laggingDynamo serves GetItem from the base tables and Query from a
// secondary index that only shows the first `indexed` quotes.
type laggingDynamo struct {
	items   map[string]map[string]types.AttributeValue // "table/id" -> item
	quotes  []map[string]types.AttributeValue
	indexed int
	queries int
	catchUp int // index shows every quote from this query on, 0 for never
	writes  []*dynamodb.TransactWriteItemsInput
}

func (d *laggingDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: d.items[aws.ToString(in.TableName)+"/"+id]}, nil
}

func (d *laggingDynamo) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return nil, errors.New("unexpected put")
}

func (d *laggingDynamo) Query(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	d.queries++
	if d.catchUp > 0 && d.queries >= d.catchUp {
		d.indexed = len(d.quotes)
	}
	return &dynamodb.QueryOutput{Items: d.quotes[:d.indexed]}, nil
}

func (d *laggingDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	d.writes = append(d.writes, in)
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func newLaggingDynamo(t *testing.T) *laggingDynamo {
	t.Helper()
	mustMarshal := func(v map[string]any) map[string]types.AttributeValue {
		item, err := attributevalue.MarshalMap(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return item
	}
	rfq := mustMarshal(map[string]any{
		"id": "rfq-1", "user_id": buyer.UserID, "material": string(entities.MaterialAluminum6061),
		"quantity": 10, "certification": string(entities.CertificationNone), "quote_version": 2,
		"created_at": "2025-01-01T00:00:00Z",
	})
	quote := func(id string) map[string]types.AttributeValue {
		return mustMarshal(map[string]any{
			"id": id, "rfq_id": "rfq-1", "supplier_id": supplier.UserID, "price": "120.50",
			"currency": "USD", "lead_time_days": 5, "status": string(entities.QuoteStatusOpen),
			"created_at": "2025-01-02T00:00:00Z", "updated_at": "2025-01-02T00:00:00Z",
		})
	}
	q1, q2 := quote("q-1"), quote("q-2")
	return &laggingDynamo{
		items: map[string]map[string]types.AttributeValue{
			"rfqs/rfq-1": rfq,
			"quotes/q-1": q1,
			"quotes/q-2": q2,
		},
		quotes:  []map[string]types.AttributeValue{q1, q2},
		indexed: 1,
	}
}

func newDynamoOrderUseCase(ddb repository.DynamoDBAPI) *OrderUseCase {
	tables := repository.Tables{}
	uc := NewOrderUseCase(
		repository.NewOrderDynamoRepository(ddb, tables),
		repository.NewQuoteDynamoRepository(ddb, tables),
		repository.NewRFQDynamoRepository(ddb, tables),
		nil, nil,
	)
	uc.siblingRetryDelay = 0
	return uc
}

func TestOrderUseCase_AcceptQuote_LaggingQuoteIndex(t *testing.T) {
	t.Run("index missing a quote never commits a partial award", func(t *testing.T) {
		ddb := newLaggingDynamo(t)
		uc := newDynamoOrderUseCase(ddb)

		_, err := uc.AcceptQuote(context.Background(), "q-1", buyer)
		if !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if len(ddb.writes) != 0 {
			t.Fatalf("expected no transaction, got %d", len(ddb.writes))
		}
		if ddb.queries != siblingReadAttempts {
			t.Fatalf("expected %d index reads, got %d", siblingReadAttempts, ddb.queries)
		}
	})

	t.Run("index catching up supersedes every sibling", func(t *testing.T) {
		ddb := newLaggingDynamo(t)
		ddb.catchUp = 2
		uc := newDynamoOrderUseCase(ddb)

		order, err := uc.AcceptQuote(context.Background(), "q-1", buyer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.QuoteID != "q-1" || order.Status != entities.OrderStatusPendingPayment {
			t.Fatalf("unexpected order: %+v", order)
		}
		if len(ddb.writes) != 1 {
			t.Fatalf("expected one transaction, got %d", len(ddb.writes))
		}
		// award, accept, supersede q-2, put order
		actions := ddb.writes[0].TransactItems
		if len(actions) != 4 {
			t.Fatalf("expected 4 actions, got %d", len(actions))
		}
		var superseded bool
		for _, a := range actions {
			if a.Update != nil && aws.ToString(a.Update.TableName) == "quotes" &&
				a.Update.Key["id"].(*types.AttributeValueMemberS).Value == "q-2" {
				superseded = true
			}
		}
		if !superseded {
			t.Fatalf("expected q-2 to be superseded")
		}
	})
}
