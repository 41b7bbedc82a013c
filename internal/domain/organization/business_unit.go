package organization

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// UnitType represents the level of a business unit in the hierarchy
type UnitType string

const (
	UnitTypeGroup   UnitType = "GROUP"
	UnitTypeCompany UnitType = "COMPANY"
	UnitTypeBranch  UnitType = "BRANCH"
)

// IsValid checks if the unit type is a valid UnitType
func (t UnitType) IsValid() bool {
	switch t {
	case UnitTypeGroup, UnitTypeCompany, UnitTypeBranch:
		return true
	}
	return false
}

// String returns the string representation of UnitType
func (t UnitType) String() string {
	return string(t)
}

// BusinessUnit is a node of the group/company/branch hierarchy.
// The consistency core reads branches as locking and grouping keys only;
// hierarchy management lives outside this module.
type BusinessUnit struct {
	shared.TenantAggregateRoot
	Name     string     `gorm:"type:varchar(255);not null"`
	UnitType UnitType   `gorm:"type:varchar(10);not null;default:'BRANCH'"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	Address  string     `gorm:"type:text"`
	Phone    string     `gorm:"type:varchar(20)"`
	Email    string     `gorm:"type:varchar(200)"`
	Timezone string     `gorm:"type:varchar(50);default:'UTC'"`
}

// TableName returns the table name for GORM
func (BusinessUnit) TableName() string {
	return "business_units"
}

// NewBusinessUnit creates a new business unit
func NewBusinessUnit(tenantID uuid.UUID, name string, unitType UnitType, parentID *uuid.UUID) (*BusinessUnit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business unit name cannot be empty")
	}
	if !unitType.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT_TYPE", "Invalid business unit type")
	}

	return &BusinessUnit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		UnitType:            unitType,
		ParentID:            parentID,
		Timezone:            "UTC",
	}, nil
}

// IsBranch returns true if the unit is a branch
func (u *BusinessUnit) IsBranch() bool {
	return u.UnitType == UnitTypeBranch
}

// IsCompany returns true if the unit is a company
func (u *BusinessUnit) IsCompany() bool {
	return u.UnitType == UnitTypeCompany
}

// CanOwnCustomers returns true if customers may be attached to this unit.
// Customers hang off a group or a company, never a branch.
func (u *BusinessUnit) CanOwnCustomers() bool {
	return u.UnitType == UnitTypeGroup || u.UnitType == UnitTypeCompany
}
