package database

import (
	"context"
	"errors"
	"testing"

	"milling_aggregator/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTableAPI struct {
	existing  map[string]bool
	created   []string
	createErr error
	descErr   error
}

func (f *fakeTableAPI) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.descErr != nil {
		return nil, f.descErr
	}
	if f.existing[aws.ToString(in.TableName)] {
		return &dynamodb.DescribeTableOutput{}, nil
	}
	return nil, &types.ResourceNotFoundException{Message: aws.String("missing")}
}

func (f *fakeTableAPI) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, aws.ToString(in.TableName))
	return &dynamodb.CreateTableOutput{}, nil
}

func defs(names ...string) []*dynamodb.CreateTableInput {
	out := make([]*dynamodb.CreateTableInput, 0, len(names))
	for _, n := range names {
		out = append(out, &dynamodb.CreateTableInput{TableName: aws.String(n)})
	}
	return out
}

func TestEnsureTables(t *testing.T) {
	t.Run("creates only missing tables", func(t *testing.T) {
		api := &fakeTableAPI{existing: map[string]bool{"rfqs": true}}
		require.NoError(t, EnsureTables(context.Background(), api, defs("rfqs", "quotes"), nil))
		assert.Equal(t, []string{"quotes"}, api.created)
	})

	t.Run("concurrent creation is tolerated", func(t *testing.T) {
		api := &fakeTableAPI{createErr: &types.ResourceInUseException{Message: aws.String("in use")}}
		assert.NoError(t, EnsureTables(context.Background(), api, defs("orders"), nil))
	})

	t.Run("describe failure aborts", func(t *testing.T) {
		api := &fakeTableAPI{descErr: errors.New("access denied")}
		err := EnsureTables(context.Background(), api, defs("orders"), nil)
		assert.ErrorContains(t, err, "describe table orders")
		assert.Empty(t, api.created)
	})
}

func TestConnectDynamoDB(t *testing.T) {
	client, err := ConnectDynamoDB(context.Background(), config.DynamoDBConfig{
		Region:   "eu-west-1",
		Endpoint: "http://localhost:8000",
	})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", client.Options().Region)
	assert.Equal(t, "http://localhost:8000", aws.ToString(client.Options().BaseEndpoint))
}
