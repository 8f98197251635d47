package repository

import (
	"context"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"
)

const rfqsUserIDIndex = "user_id-index"

type rfqItem struct {
	ID              string `dynamodbav:"id"`
	UserID          string `dynamodbav:"user_id"`
	Material        string `dynamodbav:"material"`
	Quantity        int    `dynamodbav:"quantity"`
	Tolerance       string `dynamodbav:"tolerance,omitempty"`
	Roughness       string `dynamodbav:"roughness,omitempty"`
	PartMarking     bool   `dynamodbav:"part_marking"`
	Certification   string `dynamodbav:"certification"`
	Notes           string `dynamodbav:"notes,omitempty"`
	CADFilename     string `dynamodbav:"cad_filename,omitempty"`
	CADFileID       string `dynamodbav:"cad_file_id,omitempty"`
	AcceptedQuoteID string `dynamodbav:"accepted_quote_id,omitempty"`
	QuoteVersion    int64  `dynamodbav:"quote_version"`
	CreatedAt       string `dynamodbav:"created_at"`
}

// RFQDynamoRepository persists RFQ entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//
// accepted_quote_id stays absent until the award, so attribute_not_exists on
// it is the award guard.

type RFQDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IRFQRepository = (*RFQDynamoRepository)(nil)

func NewRFQDynamoRepository(ddb DynamoDBAPI, tables Tables) *RFQDynamoRepository {
	return &RFQDynamoRepository{
		ddb:       ddb,
		tableName: tables.withDefaults().RFQs,
	}
}

func (r *RFQDynamoRepository) Create(ctx context.Context, rfq entities.RFQ) (entities.RFQ, error) {
	rfq.AcceptedQuoteID = ""
	rfq.QuoteVersion = 0
	if err := putNew(ctx, r.ddb, r.tableName, toRFQItem(rfq)); err != nil {
		return entities.RFQ{}, err
	}
	return rfq, nil
}

func (r *RFQDynamoRepository) GetByID(ctx context.Context, id string) (entities.RFQ, error) {
	var it rfqItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.RFQ{}, err
	}
	return fromRFQItem(it), nil
}

func (r *RFQDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.RFQ, error) {
	raw, err := queryIndex[rfqItem](ctx, r.ddb, r.tableName, rfqsUserIDIndex, "user_id", userID)
	if err != nil {
		return nil, err
	}
	items := make([]entities.RFQ, 0, len(raw))
	for _, it := range raw {
		items = append(items, fromRFQItem(it))
	}
	return items, nil
}

func toRFQItem(r entities.RFQ) rfqItem {
	return rfqItem{
		ID:              r.ID,
		UserID:          r.UserID,
		Material:        string(r.Material),
		Quantity:        r.Quantity,
		Tolerance:       r.Tolerance,
		Roughness:       r.Roughness,
		PartMarking:     r.PartMarking,
		Certification:   string(r.Certification),
		Notes:           r.Notes,
		CADFilename:     r.CADFilename,
		CADFileID:       r.CADFileID,
		AcceptedQuoteID: r.AcceptedQuoteID,
		QuoteVersion:    r.QuoteVersion,
		CreatedAt:       formatTime(r.CreatedAt),
	}
}

func fromRFQItem(it rfqItem) entities.RFQ {
	return entities.RFQ{
		ID:              it.ID,
		UserID:          it.UserID,
		Material:        entities.Material(it.Material),
		Quantity:        it.Quantity,
		Tolerance:       it.Tolerance,
		Roughness:       it.Roughness,
		PartMarking:     it.PartMarking,
		Certification:   entities.Certification(it.Certification),
		Notes:           it.Notes,
		CADFilename:     it.CADFilename,
		CADFileID:       it.CADFileID,
		AcceptedQuoteID: it.AcceptedQuoteID,
		QuoteVersion:    it.QuoteVersion,
		CreatedAt:       parseTime(it.CreatedAt),
	}
}
