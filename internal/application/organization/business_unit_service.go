package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/organization"
	"github.com/retailpos/backend/internal/domain/shared"
)

// BusinessUnitService manages the group/company/branch hierarchy
type BusinessUnitService struct {
	unitRepo organization.BusinessUnitRepository
}

// NewBusinessUnitService creates a new BusinessUnitService
func NewBusinessUnitService(unitRepo organization.BusinessUnitRepository) *BusinessUnitService {
	return &BusinessUnitService{unitRepo: unitRepo}
}

// CreateUnit creates a business unit under an optional parent
func (s *BusinessUnitService) CreateUnit(ctx context.Context, tenantID uuid.UUID, req CreateBusinessUnitRequest) (*BusinessUnitResponse, error) {
	unitType := organization.UnitType(req.UnitType)

	if req.ParentID != nil {
		parent, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if err := validateParent(unitType, parent.UnitType); err != nil {
			return nil, err
		}
	} else if unitType != organization.UnitTypeGroup {
		return nil, shared.NewDomainError("INVALID_PARENT", "Only group units may exist without a parent")
	}

	unit, err := organization.NewBusinessUnit(tenantID, req.Name, unitType, req.ParentID)
	if err != nil {
		return nil, err
	}
	unit.Address = req.Address
	unit.Phone = req.Phone
	unit.Email = req.Email
	if req.Timezone != "" {
		unit.Timezone = req.Timezone
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	response := ToBusinessUnitResponse(unit)
	return &response, nil
}

// UpdateUnit applies partial updates to a business unit. The type and
// parent are fixed at creation; moving a unit would reparent its stock
// and sales history.
func (s *BusinessUnitService) UpdateUnit(ctx context.Context, tenantID, unitID uuid.UUID, req UpdateBusinessUnitRequest) (*BusinessUnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Business unit name cannot be empty")
		}
		unit.Name = *req.Name
	}
	if req.Address != nil {
		unit.Address = *req.Address
	}
	if req.Phone != nil {
		unit.Phone = *req.Phone
	}
	if req.Email != nil {
		unit.Email = *req.Email
	}
	if req.Timezone != nil && *req.Timezone != "" {
		unit.Timezone = *req.Timezone
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}
	response := ToBusinessUnitResponse(unit)
	return &response, nil
}

// GetUnit loads one business unit
func (s *BusinessUnitService) GetUnit(ctx context.Context, tenantID, unitID uuid.UUID) (*BusinessUnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}
	response := ToBusinessUnitResponse(unit)
	return &response, nil
}

// ListUnits lists business units of one type within a tenant
func (s *BusinessUnitService) ListUnits(ctx context.Context, tenantID uuid.UUID, unitType organization.UnitType, filter shared.Filter) ([]BusinessUnitResponse, error) {
	if !unitType.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT_TYPE", "Invalid business unit type")
	}
	units, err := s.unitRepo.FindByType(ctx, tenantID, unitType, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]BusinessUnitResponse, 0, len(units))
	for i := range units {
		responses = append(responses, ToBusinessUnitResponse(&units[i]))
	}
	return responses, nil
}

// ListChildren lists the direct children of a business unit
func (s *BusinessUnitService) ListChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]BusinessUnitResponse, error) {
	if _, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, parentID); err != nil {
		return nil, err
	}
	units, err := s.unitRepo.FindChildren(ctx, tenantID, parentID)
	if err != nil {
		return nil, err
	}
	responses := make([]BusinessUnitResponse, 0, len(units))
	for i := range units {
		responses = append(responses, ToBusinessUnitResponse(&units[i]))
	}
	return responses, nil
}

func validateParent(child, parent organization.UnitType) error {
	switch child {
	case organization.UnitTypeGroup:
		return shared.NewDomainError("INVALID_PARENT", "Group units cannot have a parent")
	case organization.UnitTypeCompany:
		if parent != organization.UnitTypeGroup {
			return shared.NewDomainError("INVALID_PARENT", "Company units must belong to a group")
		}
	case organization.UnitTypeBranch:
		if parent != organization.UnitTypeCompany {
			return shared.NewDomainError("INVALID_PARENT", "Branch units must belong to a company")
		}
	}
	return nil
}
