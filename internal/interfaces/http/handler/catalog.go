package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/retailpos/backend/internal/application/catalog"
)

// CatalogHandler handles product, supplier and price API endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateProduct handles POST /catalog/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// UpdateProduct handles PUT /catalog/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// ListProducts handles GET /catalog/products. Products belong to a
// company business unit, so company_id is required.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		h.BadRequest(c, "Valid company_id query parameter is required")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	stringFilter(c, &filter, "type")
	stringFilter(c, &filter, "category_id")
	stringFilter(c, &filter, "supplier_id")
	if err := boolFilter(c, &filter, "inventory_tracked"); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), tenantID, companyID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, filter.Page, filter.PageSize, len(products))
}

// SetProductPrice handles PUT /catalog/products/:id/price
func (h *CatalogHandler) SetProductPrice(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.SetProductPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if req.ProductID != productID {
		h.BadRequest(c, "Product ID in body does not match URL")
		return
	}

	price, err := h.catalogService.SetProductPrice(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, price)
}

// CreatePriceList handles POST /catalog/price-lists
func (h *CatalogHandler) CreatePriceList(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	var req catalogapp.CreatePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	list, err := h.catalogService.CreatePriceList(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, list)
}

// ListPriceLists handles GET /catalog/price-lists
func (h *CatalogHandler) ListPriceLists(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		h.BadRequest(c, "Valid company_id query parameter is required")
		return
	}

	lists, err := h.catalogService.ListPriceLists(c.Request.Context(), tenantID, companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lists)
}

// CreateSupplier handles POST /catalog/suppliers
func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	var req catalogapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.catalogService.CreateSupplier(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, supplier)
}

// UpdateSupplier handles PUT /catalog/suppliers/:id
func (h *CatalogHandler) UpdateSupplier(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req catalogapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.catalogService.UpdateSupplier(c.Request.Context(), tenantID, supplierID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, supplier)
}

// GetSupplier handles GET /catalog/suppliers/:id
func (h *CatalogHandler) GetSupplier(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID is required")
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	supplier, err := h.catalogService.GetSupplier(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, supplier)
}
