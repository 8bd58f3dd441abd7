package interfaces

import (
	"context"

	"scan2plan/internal/domain/entities"
)

// ISettingsRepository reads the business-defaults row (travel rate, Tier-A
// threshold, tier boundaries). Read-only to this service; settings are
// maintained elsewhere.
type ISettingsRepository interface {
	GetBusinessDefaults(ctx context.Context) (entities.BusinessDefaults, error)
}
