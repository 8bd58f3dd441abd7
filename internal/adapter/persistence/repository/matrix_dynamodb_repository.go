package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
	"scan2plan/internal/pricing"
)

const defaultMatrixTableName = "pricing_matrix"

type matrixItem struct {
	MatrixKey   string `dynamodbav:"matrix_key"`
	RatePerUnit string `dynamodbav:"rate_per_unit"`
}

// MatrixDynamoRepository reads the externally maintained rate tables. The
// engine never writes here; matrix maintenance is a back-office concern.
//
// Table requirements:
//   - pricing_matrix: PK matrix_key (string), the composite
//     kind#buildingType#tier#discipline#lod key
//
// A missing row surfaces as *pricing.MatrixEntryNotFoundError with the full
// key, so the maintenance team knows exactly which rate is absent. Rates are
// stored as decimal strings; a zero rate in the table is legal, a missing
// one is not.

type MatrixDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ pricing.MatrixLookup = (*MatrixDynamoRepository)(nil)

func NewMatrixDynamoRepository(ddb *dynamodb.Client) *MatrixDynamoRepository {
	return &MatrixDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PRICING_MATRIX_TABLE", defaultMatrixTableName),
	}
}

func (r *MatrixDynamoRepository) Rate(ctx context.Context, kind entities.MatrixKind, buildingType string, tier entities.AreaTier, discipline entities.Discipline, lod entities.LOD) (decimal.Decimal, error) {
	key := pricing.MatrixKey(kind, buildingType, tier, discipline, lod)

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"matrix_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return decimal.Zero, err
	}
	if len(out.Item) == 0 {
		return decimal.Zero, &pricing.MatrixEntryNotFoundError{
			MatrixKind:   kind,
			BuildingType: buildingType,
			AreaTier:     tier,
			Discipline:   discipline,
			LOD:          lod,
		}
	}

	var it matrixItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(it.RatePerUnit)
}
