package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

// DealerUseCase is supplier CRUD.
type DealerUseCase struct {
	dealerRepo repository.DealerRepository
}

func NewDealerUseCase(dealerRepo repository.DealerRepository) *DealerUseCase {
	return &DealerUseCase{dealerRepo: dealerRepo}
}

// CreateDealer registers an active supplier.
func (uc *DealerUseCase) CreateDealer(ctx context.Context, in dto.DealerRequest) (*dto.DealerResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: dealer name and phone are required", domain.ErrValidation)
	}
	now := time.Now()
	d := &entity.Dealer{
		ID:               uuid.New().String(),
		Name:             in.Name,
		ContactPerson:    in.ContactPerson,
		Phone:            in.Phone,
		Email:            in.Email,
		Address:          in.Address,
		City:             in.City,
		State:            in.State,
		Pincode:          in.Pincode,
		GSTNumber:        in.GSTNumber,
		SupplyCategories: in.SupplyCategories,
		IsActive:         true,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.dealerRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDealerResponse(d), nil
}

// GetDealer returns one supplier.
func (uc *DealerUseCase) GetDealer(ctx context.Context, id string) (*dto.DealerResponse, error) {
	d, err := uc.dealerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: dealer %s", domain.ErrNotFound, id)
	}
	return toDealerResponse(d), nil
}

// ListDealers pages through active suppliers.
func (uc *DealerUseCase) ListDealers(ctx context.Context, page dto.PageRequest) ([]*dto.DealerResponse, int, error) {
	page.DefaultPage()
	dealers, total, err := uc.dealerRepo.ListActive(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.DealerResponse, 0, len(dealers))
	for _, d := range dealers {
		out = append(out, toDealerResponse(d))
	}
	return out, total, nil
}

// UpdateDealer applies contact and classification changes.
func (uc *DealerUseCase) UpdateDealer(ctx context.Context, id string, in dto.DealerRequest) (*dto.DealerResponse, error) {
	d, err := uc.dealerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: dealer %s", domain.ErrNotFound, id)
	}
	if in.Name != "" {
		d.Name = in.Name
	}
	if in.Phone != "" {
		d.Phone = in.Phone
	}
	d.ContactPerson = in.ContactPerson
	d.Email = in.Email
	d.Address = in.Address
	d.City = in.City
	d.State = in.State
	d.Pincode = in.Pincode
	d.GSTNumber = in.GSTNumber
	if in.SupplyCategories != nil {
		d.SupplyCategories = in.SupplyCategories
	}
	d.Notes = in.Notes
	d.UpdatedAt = time.Now()
	if err := uc.dealerRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDealerResponse(d), nil
}

// DeactivateDealer soft-deletes the supplier; existing purchase orders keep
// their reference.
func (uc *DealerUseCase) DeactivateDealer(ctx context.Context, id string) error {
	return uc.dealerRepo.Deactivate(ctx, id)
}

func toDealerResponse(d *entity.Dealer) *dto.DealerResponse {
	return &dto.DealerResponse{
		ID:               d.ID,
		Name:             d.Name,
		ContactPerson:    d.ContactPerson,
		Phone:            d.Phone,
		Email:            d.Email,
		Address:          d.Address,
		City:             d.City,
		State:            d.State,
		Pincode:          d.Pincode,
		GSTNumber:        d.GSTNumber,
		SupplyCategories: d.SupplyCategories,
		IsActive:         d.IsActive,
	}
}
