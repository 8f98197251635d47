package repository

import (
	"errors"
	"testing"

	"milling_aggregator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestMapConditionErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "conditional check", in: &types.ConditionalCheckFailedException{}, want: interfaces.ErrConditionFailed},
		{
			name: "cancelled by condition",
			in: &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")}, {Code: aws.String("ConditionalCheckFailed")},
			}},
			want: interfaces.ErrConditionFailed,
		},
		{
			name: "cancelled by competing transaction",
			in:   &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{{Code: aws.String("TransactionConflict")}}},
			want: interfaces.ErrConditionFailed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapConditionErr(tc.in); !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		in := &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{{Code: aws.String("ThrottlingError")}}}
		if got := mapConditionErr(in); errors.Is(got, interfaces.ErrConditionFailed) {
			t.Fatalf("throttling must not look like a lost guard")
		}
	})
}

func TestTablesWithDefaults(t *testing.T) {
	got := Tables{Quotes: "custom-quotes"}.withDefaults()
	if got.Quotes != "custom-quotes" || got.RFQs != "rfqs" || got.Users != "users" {
		t.Fatalf("unexpected tables: %+v", got)
	}
}

func TestTableDefinitions(t *testing.T) {
	defs := TableDefinitions(Tables{Orders: "prod-orders"})
	if len(defs) != 5 {
		t.Fatalf("expected 5 tables, got %d", len(defs))
	}
	byName := map[string]string{}
	for _, d := range defs {
		if len(d.GlobalSecondaryIndexes) != 1 {
			t.Fatalf("expected one GSI on %s", *d.TableName)
		}
		byName[*d.TableName] = *d.GlobalSecondaryIndexes[0].IndexName
	}
	want := map[string]string{
		"rfqs":        rfqsUserIDIndex,
		"quotes":      quotesRFQIDIndex,
		"prod-orders": ordersRFQIDIndex,
		"payments":    paymentsOrderIDIndex,
		"users":       usersEmailIndex,
	}
	for table, index := range want {
		if byName[table] != index {
			t.Fatalf("table %s: expected index %s, got %q", table, index, byName[table])
		}
	}
}
