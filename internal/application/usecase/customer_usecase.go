package usecase

import (
	"context"
	"fmt"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

// CustomerUseCase reads loyalty customers. Creation and all balance changes
// happen inside sale transactions, never through this API.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// GetCustomer returns one customer by ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	return toCustomerResponse(c), nil
}

// FindByPhone returns the customer registered under a phone number.
func (uc *CustomerUseCase) FindByPhone(ctx context.Context, phone string) (*dto.CustomerResponse, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}
	c, err := uc.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no customer with phone %s", domain.ErrNotFound, phone)
	}
	return toCustomerResponse(c), nil
}

// ListCustomers pages through the loyalty base.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, page dto.PageRequest) ([]*dto.CustomerResponse, int, error) {
	page.DefaultPage()
	customers, total, err := uc.customerRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, total, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		LoyaltyPoints: c.LoyaltyPoints,
		TotalSpent:    c.TotalSpent,
		TotalVisits:   c.TotalVisits,
		LastVisitDate: c.LastVisitDate,
	}
}
