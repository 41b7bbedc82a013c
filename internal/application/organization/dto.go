package organization

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/organization"
)

// CreateBusinessUnitRequest represents a request to create a business unit
type CreateBusinessUnitRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=255"`
	UnitType string     `json:"unit_type" binding:"required,oneof=GROUP COMPANY BRANCH"`
	ParentID *uuid.UUID `json:"parent_id"`
	Address  string     `json:"address" binding:"max=500"`
	Phone    string     `json:"phone" binding:"max=50"`
	Email    string     `json:"email" binding:"omitempty,email,max=255"`
	Timezone string     `json:"timezone" binding:"max=50"`
}

// UpdateBusinessUnitRequest represents a request to update a business unit
type UpdateBusinessUnitRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Timezone *string `json:"timezone" binding:"omitempty,max=50"`
}

// BusinessUnitResponse represents a business unit in API responses
type BusinessUnitResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	UnitType  string     `json:"unit_type"`
	ParentID  *uuid.UUID `json:"parent_id"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Timezone  string     `json:"timezone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToBusinessUnitResponse converts a business unit to its API representation
func ToBusinessUnitResponse(unit *organization.BusinessUnit) BusinessUnitResponse {
	return BusinessUnitResponse{
		ID:        unit.ID,
		Name:      unit.Name,
		UnitType:  unit.UnitType.String(),
		ParentID:  unit.ParentID,
		Address:   unit.Address,
		Phone:     unit.Phone,
		Email:     unit.Email,
		Timezone:  unit.Timezone,
		CreatedAt: unit.CreatedAt,
		UpdatedAt: unit.UpdatedAt,
	}
}
