package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// BusinessUnitRepository defines read access to the organizational hierarchy.
// The consistency core never writes business units.
type BusinessUnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BusinessUnit, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BusinessUnit, error)
	FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]BusinessUnit, error)
	FindByType(ctx context.Context, tenantID uuid.UUID, unitType UnitType, filter shared.Filter) ([]BusinessUnit, error)
	Save(ctx context.Context, unit *BusinessUnit) error
}
