package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	organizationapp "github.com/retailpos/backend/internal/application/organization"
	"github.com/retailpos/backend/internal/domain/organization"
)

// BusinessUnitHandler handles business unit API endpoints. Units form
// the group/company/branch tree that scopes every other resource.
type BusinessUnitHandler struct {
	BaseHandler
	unitService *organizationapp.BusinessUnitService
}

// NewBusinessUnitHandler creates a new BusinessUnitHandler
func NewBusinessUnitHandler(unitService *organizationapp.BusinessUnitService) *BusinessUnitHandler {
	return &BusinessUnitHandler{unitService: unitService}
}

// Create handles POST /organization/units
func (h *BusinessUnitHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	var req organizationapp.CreateBusinessUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, unit)
}

// Update handles PUT /organization/units/:id
func (h *BusinessUnitHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid business unit ID format")
		return
	}

	var req organizationapp.UpdateBusinessUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.unitService.UpdateUnit(c.Request.Context(), tenantID, unitID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, unit)
}

// GetByID handles GET /organization/units/:id
func (h *BusinessUnitHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid business unit ID format")
		return
	}

	unit, err := h.unitService.GetUnit(c.Request.Context(), tenantID, unitID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, unit)
}

// List handles GET /organization/units. Units are listed one hierarchy
// level at a time; type defaults to BRANCH.
func (h *BusinessUnitHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	unitType := organization.UnitTypeBranch
	if v := c.Query("type"); v != "" {
		unitType = organization.UnitType(v)
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	units, err := h.unitService.ListUnits(c.Request.Context(), tenantID, unitType, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, units, filter.Page, filter.PageSize, len(units))
}

// ListChildren handles GET /organization/units/:id/children
func (h *BusinessUnitHandler) ListChildren(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid business unit ID format")
		return
	}

	units, err := h.unitService.ListChildren(c.Request.Context(), tenantID, parentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, units)
}
