package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
)

// CustomerService handles customer record operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(tenantID, req.OwnerID, req.Name)
	if err != nil {
		return nil, err
	}
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	customer.TaxNumber = req.TaxNumber
	customer.Notes = req.Notes
	if req.CanPurchaseOnCredit {
		if err := customer.EnableCredit(req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateCustomer applies partial updates to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
		}
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.TaxNumber != nil {
		customer.TaxNumber = *req.TaxNumber
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.CanPurchaseOnCredit != nil {
		if *req.CanPurchaseOnCredit {
			limit := customer.CreditLimit
			if req.CreditLimit != nil {
				limit = *req.CreditLimit
			}
			if err := customer.EnableCredit(limit); err != nil {
				return nil, err
			}
		} else {
			customer.DisableCredit()
		}
	} else if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, shared.NewDomainError("INVALID_LIMIT", "Credit limit cannot be negative")
		}
		customer.CreditLimit = *req.CreditLimit
	}
	if req.IsActive != nil && !*req.IsActive {
		customer.Deactivate()
	} else if req.IsActive != nil {
		customer.IsActive = true
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetCustomer loads one customer
func (s *CustomerService) GetCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// ListCustomers lists the customers owned by a business unit
func (s *CustomerService) ListCustomers(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindByOwner(ctx, tenantID, ownerID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, ToCustomerResponse(customer))
	}
	return responses, nil
}
