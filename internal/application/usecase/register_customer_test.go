package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/dto"
	"github.com/urjitutjit/creditapprovalsystem/internal/application/usecase"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
)

func validRegisterRequest() dto.RegisterCustomerRequest {
	return dto.RegisterCustomerRequest{
		FirstName:     "Asha",
		LastName:      "Rao",
		Age:           34,
		MonthlyIncome: decimal.NewFromInt(55_000),
		PhoneNumber:   9876543210,
	}
}

func TestRegisterCustomer_Execute(t *testing.T) {
	t.Run("registers a customer with a derived limit", func(t *testing.T) {
		repo := &mockCustomerRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRegisterCustomerUseCase(repo, publisher)

		resp, err := uc.Execute(context.Background(), validRegisterRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Asha Rao", resp.Name)
		assert.True(t, resp.ApprovedLimit.Equal(decimal.NewFromInt(2_000_000)))
		require.Len(t, repo.savedCustomers, 1)
		assert.Equal(t, resp.ID, repo.savedCustomers[0].ID())
		assert.Equal(t, []string{"credit.customer.registered"}, publisher.eventTypes())
	})

	t.Run("rejects invalid input before touching the repository", func(t *testing.T) {
		repo := &mockCustomerRepository{
			saveFunc: func(context.Context, model.Customer) error {
				t.Fatal("save must not be called")
				return nil
			},
		}
		uc := usecase.NewRegisterCustomerUseCase(repo, &mockEventPublisher{})

		req := validRegisterRequest()
		req.Age = 16
		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, dto.ErrInvalidRequest)
	})

	t.Run("fails when save fails", func(t *testing.T) {
		repo := &mockCustomerRepository{
			saveFunc: func(context.Context, model.Customer) error {
				return errors.New("database unavailable")
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRegisterCustomerUseCase(repo, publisher)

		_, err := uc.Execute(context.Background(), validRegisterRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save customer")
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("fails when publish fails", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(context.Context, ...event.DomainEvent) error {
				return errors.New("broker down")
			},
		}
		uc := usecase.NewRegisterCustomerUseCase(&mockCustomerRepository{}, publisher)

		_, err := uc.Execute(context.Background(), validRegisterRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish events")
	})
}
