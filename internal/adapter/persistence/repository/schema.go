package repository

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableDefinitions describes every table and GSI the repositories query,
// billed on demand. Used to bootstrap DynamoDB Local.
func TableDefinitions(tables Tables) []*dynamodb.CreateTableInput {
	tables = tables.withDefaults()
	return []*dynamodb.CreateTableInput{
		tableWithIndex(tables.RFQs, rfqsUserIDIndex, "user_id"),
		tableWithIndex(tables.Quotes, quotesRFQIDIndex, "rfq_id"),
		tableWithIndex(tables.Orders, ordersRFQIDIndex, "rfq_id"),
		tableWithIndex(tables.Payments, paymentsOrderIDIndex, "order_id"),
		tableWithIndex(tables.Users, usersEmailIndex, "email"),
	}
}

func tableWithIndex(table, index, attr string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(attr), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{{
			IndexName: aws.String(index),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}},
	}
}
