package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
	"scan2plan/internal/usecase/interfaces"
)

const (
	defaultQuotesTableName = "quotes"
	defaultGuardsTableName = "quote_guards"
	leadIndexName          = "lead_id-index"
)

type quoteItem struct {
	ID            string `dynamodbav:"id"`
	LeadID        string `dynamodbav:"lead_id"`
	QuoteNumber   string `dynamodbav:"quote_number"`
	VersionNumber int    `dynamodbav:"version_number"`
	ParentQuoteID string `dynamodbav:"parent_quote_id,omitempty"`
	IsLatest      bool   `dynamodbav:"is_latest"`
	MatrixKind    string `dynamodbav:"matrix_kind"`
	Inputs        string `dynamodbav:"inputs"`
	Breakdown     string `dynamodbav:"breakdown"`
	TotalPrice    string `dynamodbav:"total_price"`
	PaymentTerms  string `dynamodbav:"payment_terms,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// quoteInputsDoc is the JSON blob holding the calculation inputs. The
// breakdown is always re-derivable from it, never patched in isolation.
type quoteInputsDoc struct {
	Areas         []entities.Area         `json:"areas"`
	Travel        entities.TravelConfig   `json:"travel"`
	Risks         []entities.RiskFactor   `json:"risks"`
	Services      []entities.AddOnService `json:"services"`
	TierAOverride *entities.TierAOverride `json:"tier_a_override,omitempty"`
}

type breakdownDoc struct {
	ScanningTotal      decimal.Decimal                            `json:"scanning_total"`
	BIMTotals          map[entities.Discipline]decimal.Decimal    `json:"bim_totals"`
	TravelTotal        decimal.Decimal                            `json:"travel_total"`
	AddOnsTotal        decimal.Decimal                            `json:"add_ons_total"`
	RiskSurchargeTotal decimal.Decimal                            `json:"risk_surcharge_total"`
	Total              decimal.Decimal                            `json:"total"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - quotes: PK id (string); GSI lead_id-index on lead_id
//   - quote_guards: PK id (string), used as a generic uniqueness table:
//     "number#<quote_number>" rows enforce system-wide quote-number
//     uniqueness, "lead-root#<lead_id>" rows enforce one root quote per lead
//
// Every invariant-bearing write goes through TransactWriteItems so a crash
// can never leave two latest quotes or a reused number.

type QuoteDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	guardsTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:         ddb,
		tableName:   getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
		guardsTable: getenvDefault("QUOTE_GUARDS_TABLE", defaultGuardsTableName),
	}
}

func (r *QuoteDynamoRepository) CreateInitial(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := marshalQuote(q)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			r.putQuote(av),
			r.putGuard("number#" + q.QuoteNumber),
			r.putGuard("lead-root#" + q.LeadID),
		},
	})
	if err != nil {
		return entities.Quote{}, mapTransactErr(err, map[int]error{
			1: interfaces.ErrQuoteNumberTaken,
			2: interfaces.ErrLeadRootExists,
		})
	}
	return q, nil
}

func (r *QuoteDynamoRepository) CreateVersion(ctx context.Context, q entities.Quote, currentLatestID string, expectedVersion int) (entities.Quote, error) {
	av, err := marshalQuote(q)
	if err != nil {
		return entities.Quote{}, err
	}

	flip := types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: currentLatestID},
			},
			UpdateExpression:    aws.String("SET #is_latest = :false, #updated_at = :updated_at"),
			ConditionExpression: aws.String("#is_latest = :true AND #version_number = :expected"),
			ExpressionAttributeNames: map[string]string{
				"#is_latest":      "is_latest",
				"#updated_at":     "updated_at",
				"#version_number": "version_number",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":false":      &types.AttributeValueMemberBOOL{Value: false},
				":true":       &types.AttributeValueMemberBOOL{Value: true},
				":expected":   &types.AttributeValueMemberN{Value: strconv.Itoa(expectedVersion)},
				":updated_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
			},
		},
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			r.putQuote(av),
			r.putGuard("number#" + q.QuoteNumber),
			flip,
		},
	})
	if err != nil {
		return entities.Quote{}, mapTransactErr(err, map[int]error{
			1: interfaces.ErrQuoteNumberTaken,
			2: interfaces.ErrLatestFlipConflict,
		})
	}
	return q, nil
}

func (r *QuoteDynamoRepository) UpdateLatest(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	inputs, breakdown, err := marshalDocs(q)
	if err != nil {
		return entities.Quote{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: q.ID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #is_latest = :true"),
		UpdateExpression: aws.String("SET #matrix_kind = :matrix_kind, #inputs = :inputs, #breakdown = :breakdown, " +
			"#total_price = :total_price, #payment_terms = :payment_terms, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":            "id",
			"#is_latest":     "is_latest",
			"#matrix_kind":   "matrix_kind",
			"#inputs":        "inputs",
			"#breakdown":     "breakdown",
			"#total_price":   "total_price",
			"#payment_terms": "payment_terms",
			"#updated_at":    "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":          &types.AttributeValueMemberBOOL{Value: true},
			":matrix_kind":   &types.AttributeValueMemberS{Value: string(q.MatrixKind)},
			":inputs":        &types.AttributeValueMemberS{Value: inputs},
			":breakdown":     &types.AttributeValueMemberS{Value: breakdown},
			":total_price":   &types.AttributeValueMemberS{Value: q.TotalPrice.String()},
			":payment_terms": &types.AttributeValueMemberS{Value: q.PaymentTerms},
			":updated_at":    &types.AttributeValueMemberS{Value: q.UpdatedAt.UTC().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, interfaces.ErrLatestFlipConflict
		}
		return entities.Quote{}, err
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func (r *QuoteDynamoRepository) ListByLeadID(ctx context.Context, leadID string) ([]entities.Quote, error) {
	var quotes []entities.Quote
	var lastKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(leadIndexName),
			KeyConditionExpression: aws.String("#lead_id = :lead_id"),
			ExpressionAttributeNames: map[string]string{
				"#lead_id": "lead_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":lead_id": &types.AttributeValueMemberS{Value: leadID},
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			q, err := fromQuoteItem(it)
			if err != nil {
				return nil, err
			}
			quotes = append(quotes, q)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return quotes, nil
}

func (r *QuoteDynamoRepository) GetLatestByLeadID(ctx context.Context, leadID string) (entities.Quote, error) {
	quotes, err := r.ListByLeadID(ctx, leadID)
	if err != nil {
		return entities.Quote{}, err
	}
	for _, q := range quotes {
		if q.IsLatest {
			return q, nil
		}
	}
	return entities.Quote{}, nil
}

func (r *QuoteDynamoRepository) putQuote(av map[string]types.AttributeValue) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		},
	}
}

func (r *QuoteDynamoRepository) putGuard(id string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(r.guardsTable),
			Item: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			},
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		},
	}
}

// mapTransactErr resolves which transact item lost its conditional check and
// maps it to the matching repository sentinel.
func mapTransactErr(err error, byIndex map[int]error) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return err
	}
	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		if mapped, ok := byIndex[i]; ok {
			return mapped
		}
	}
	return err
}

func marshalQuote(q entities.Quote) (map[string]types.AttributeValue, error) {
	inputs, breakdown, err := marshalDocs(q)
	if err != nil {
		return nil, err
	}
	it := quoteItem{
		ID:            q.ID,
		LeadID:        q.LeadID,
		QuoteNumber:   q.QuoteNumber,
		VersionNumber: q.VersionNumber,
		ParentQuoteID: q.ParentQuoteID,
		IsLatest:      q.IsLatest,
		MatrixKind:    string(q.MatrixKind),
		Inputs:        inputs,
		Breakdown:     breakdown,
		TotalPrice:    q.TotalPrice.String(),
		PaymentTerms:  q.PaymentTerms,
		CreatedAt:     q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	return attributevalue.MarshalMap(it)
}

func marshalDocs(q entities.Quote) (inputs string, breakdown string, err error) {
	in, err := json.Marshal(quoteInputsDoc{
		Areas:         q.Areas,
		Travel:        q.Travel,
		Risks:         q.Risks,
		Services:      q.Services,
		TierAOverride: q.TierAOverride,
	})
	if err != nil {
		return "", "", err
	}
	br, err := json.Marshal(breakdownDoc{
		ScanningTotal:      q.PricingBreakdown.ScanningTotal,
		BIMTotals:          q.PricingBreakdown.BIMTotals,
		TravelTotal:        q.PricingBreakdown.TravelTotal,
		AddOnsTotal:        q.PricingBreakdown.AddOnsTotal,
		RiskSurchargeTotal: q.PricingBreakdown.RiskSurchargeTotal,
		Total:              q.PricingBreakdown.Total,
	})
	if err != nil {
		return "", "", err
	}
	return string(in), string(br), nil
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	var inputs quoteInputsDoc
	if err := json.Unmarshal([]byte(it.Inputs), &inputs); err != nil {
		return entities.Quote{}, err
	}
	var br breakdownDoc
	if err := json.Unmarshal([]byte(it.Breakdown), &br); err != nil {
		return entities.Quote{}, err
	}
	totalPrice, err := decimal.NewFromString(it.TotalPrice)
	if err != nil {
		return entities.Quote{}, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	return entities.Quote{
		ID:            it.ID,
		LeadID:        it.LeadID,
		QuoteNumber:   it.QuoteNumber,
		VersionNumber: it.VersionNumber,
		ParentQuoteID: it.ParentQuoteID,
		IsLatest:      it.IsLatest,
		MatrixKind:    entities.MatrixKind(it.MatrixKind),
		Areas:         inputs.Areas,
		Travel:        inputs.Travel,
		Risks:         inputs.Risks,
		Services:      inputs.Services,
		TierAOverride: inputs.TierAOverride,
		PricingBreakdown: entities.PricingBreakdown{
			ScanningTotal:      br.ScanningTotal,
			BIMTotals:          br.BIMTotals,
			TravelTotal:        br.TravelTotal,
			AddOnsTotal:        br.AddOnsTotal,
			RiskSurchargeTotal: br.RiskSurchargeTotal,
			Total:              br.Total,
		},
		TotalPrice:   totalPrice,
		PaymentTerms: it.PaymentTerms,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}
