package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/port"
)

// RegisterCustomerUseCase onboards a customer and derives their approved
// limit from monthly income.
type RegisterCustomerUseCase struct {
	customerRepo port.CustomerRepository
	publisher    port.EventPublisher
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(
	customerRepo port.CustomerRepository,
	publisher port.EventPublisher,
) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

// Execute validates, creates, and persists a customer.
func (uc *RegisterCustomerUseCase) Execute(
	ctx context.Context,
	req dto.RegisterCustomerRequest,
) (dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.CustomerResponse{}, err
	}

	customer, err := model.NewCustomer(
		req.FirstName, req.LastName, req.Age,
		req.MonthlyIncome, req.PhoneNumber, time.Now().UTC(),
	)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("create customer: %w", err)
	}

	if err := uc.customerRepo.Save(ctx, customer); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("save customer: %w", err)
	}

	if err := uc.publisher.Publish(ctx, customer.DomainEvents()...); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toCustomerResponse(customer), nil
}
