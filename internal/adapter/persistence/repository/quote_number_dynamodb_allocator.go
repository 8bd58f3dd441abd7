package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"scan2plan/internal/usecase/interfaces"
)

const defaultCountersTableName = "counters"

// QuoteNumberDynamoAllocator hands out per-year quote sequences from an
// atomic counter item (id = quote-seq-<year>). DynamoDB ADD is atomic, so
// concurrent allocations can never observe the same value; the counter for a
// new year starts at zero implicitly, which resets the sequence.
//
// Table requirements:
//   - counters: PK id (string), attribute seq (number)

type QuoteNumberDynamoAllocator struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteNumberAllocator = (*QuoteNumberDynamoAllocator)(nil)

func NewQuoteNumberDynamoAllocator(ddb *dynamodb.Client) *QuoteNumberDynamoAllocator {
	return &QuoteNumberDynamoAllocator{
		ddb:       ddb,
		tableName: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

func (a *QuoteNumberDynamoAllocator) NextSequence(ctx context.Context, year int) (int, error) {
	out, err := a.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(a.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: fmt.Sprintf("quote-seq-%d", year)},
		},
		UpdateExpression:         aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	raw, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %d returned no numeric seq", year)
	}
	seq, err := strconv.Atoi(raw.Value)
	if err != nil {
		return 0, err
	}
	return seq, nil
}
