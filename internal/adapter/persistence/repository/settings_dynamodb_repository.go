package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
	"scan2plan/internal/usecase/interfaces"
)

const (
	defaultSettingsTableName = "settings"
	businessDefaultsID       = "business-defaults"
)

type businessDefaultsItem struct {
	ID                 string  `dynamodbav:"id"`
	TravelRatePerMile  string  `dynamodbav:"travel_rate_per_mile"`
	TierAThresholdSqFt float64 `dynamodbav:"tier_a_threshold_sqft"`
	SmallMaxSqFt       float64 `dynamodbav:"small_max_sqft"`
	MediumMaxSqFt      float64 `dynamodbav:"medium_max_sqft"`
	LargeMaxSqFt       float64 `dynamodbav:"large_max_sqft"`
}

// SettingsDynamoRepository reads the business-defaults row. Settings are
// maintained by the back office; a missing row falls back to the seeded
// defaults so local environments work out of the box.
//
// Table requirements:
//   - settings: PK id (string)

type SettingsDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISettingsRepository = (*SettingsDynamoRepository)(nil)

func NewSettingsDynamoRepository(ddb *dynamodb.Client) *SettingsDynamoRepository {
	return &SettingsDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SETTINGS_TABLE", defaultSettingsTableName),
	}
}

func (r *SettingsDynamoRepository) GetBusinessDefaults(ctx context.Context) (entities.BusinessDefaults, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: businessDefaultsID},
		},
	})
	if err != nil {
		return entities.BusinessDefaults{}, err
	}
	if len(out.Item) == 0 {
		return entities.DefaultBusinessDefaults(), nil
	}

	var it businessDefaultsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.BusinessDefaults{}, err
	}
	rate, err := decimal.NewFromString(it.TravelRatePerMile)
	if err != nil {
		return entities.BusinessDefaults{}, err
	}
	return entities.BusinessDefaults{
		TravelRatePerMile:  rate,
		TierAThresholdSqFt: it.TierAThresholdSqFt,
		SmallMaxSqFt:       it.SmallMaxSqFt,
		MediumMaxSqFt:      it.MediumMaxSqFt,
		LargeMaxSqFt:       it.LargeMaxSqFt,
	}, nil
}
