package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/event"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/model"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

func TestApprovedLimitFor(t *testing.T) {
	tests := []struct {
		income string
		want   int64
	}{
		{income: "55000", want: 2_000_000}, // 19.8 lakh -> 20
		{income: "50000", want: 1_800_000}, // exactly 18
		{income: "62500", want: 2_200_000}, // 22.5 ties to even
		{income: "76389", want: 2_800_000}, // 27.50004 rounds up
		{income: "1000", want: 0},          // 0.36 rounds down
	}

	for _, tt := range tests {
		t.Run(tt.income, func(t *testing.T) {
			got := model.ApprovedLimitFor(dec(tt.income))
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}
}

func TestNewCustomer(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid customer", func(t *testing.T) {
		c, err := model.NewCustomer("Asha", "Rao", 31, decimal.NewFromInt(50_000), 9876543210, now)
		require.NoError(t, err)

		assert.NotEmpty(t, c.ID())
		assert.Equal(t, "Asha Rao", c.Name())
		assert.True(t, c.ApprovedLimit().Equal(decimal.NewFromInt(1_800_000)))
		assert.True(t, c.CurrentDebt().IsZero())
		require.Len(t, c.DomainEvents(), 1)
		assert.Equal(t, "credit.customer.registered", c.DomainEvents()[0].EventType())
		assert.Equal(t, c.ID(), c.DomainEvents()[0].AggregateID())
	})

	invalid := []struct {
		name   string
		first  string
		last   string
		age    int
		income int64
		phone  int64
	}{
		{"missing first name", " ", "Rao", 30, 50_000, 1},
		{"missing last name", "Asha", "", 30, 50_000, 1},
		{"too young", "Asha", "Rao", 17, 50_000, 1},
		{"too old", "Asha", "Rao", 101, 50_000, 1},
		{"zero income", "Asha", "Rao", 30, 0, 1},
		{"missing phone", "Asha", "Rao", 30, 50_000, 0},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewCustomer(tt.first, tt.last, tt.age, decimal.NewFromInt(tt.income), tt.phone, now)
			assert.Error(t, err)
		})
	}
}

func TestCustomer_Profile(t *testing.T) {
	now := time.Now().UTC()
	c := model.ReconstructCustomer("cust-1", "Asha", "Rao", 31, 9876543210,
		decimal.NewFromInt(60_000), decimal.NewFromInt(2_200_000), decimal.Zero, now, now)

	active := model.ReconstructLoan("l1", "cust-1", decimal.NewFromInt(100_000), dec("12"), dec("8884.88"),
		12, 3, valueobject.LoanStatusActive, now, now.AddDate(1, 0, 0), 1, now, now)
	active2 := model.ReconstructLoan("l2", "cust-1", decimal.NewFromInt(50_000), dec("10"), dec("1000.50"),
		60, 0, valueobject.LoanStatusActive, now, now.AddDate(5, 0, 0), 1, now, now)
	done := model.ReconstructLoan("l3", "cust-1", decimal.NewFromInt(900_000), dec("9"), dec("50000"),
		24, 24, valueobject.LoanStatusCompleted, now, now, 1, now, now)

	p := c.Profile([]model.Loan{active, active2, done})

	assert.True(t, p.MonthlyIncome.Equal(decimal.NewFromInt(60_000)))
	assert.True(t, p.ApprovedLimit.Equal(decimal.NewFromInt(2_200_000)))
	assert.True(t, p.CurrentInstallments.Equal(dec("9885.38")), "got %s", p.CurrentInstallments)
	assert.True(t, p.ActiveLoanTotal.Equal(decimal.NewFromInt(150_000)), "got %s", p.ActiveLoanTotal)
}

func TestCustomerRegisteredEventCarriesLimit(t *testing.T) {
	c, err := model.NewCustomer("Ravi", "Kumar", 40, decimal.NewFromInt(100_000), 9000000001, time.Now())
	require.NoError(t, err)

	evt, ok := c.DomainEvents()[0].(event.CustomerRegistered)
	require.True(t, ok)
	assert.True(t, evt.ApprovedLimit.Equal(decimal.NewFromInt(3_600_000)))
	assert.Empty(t, c.ClearEvents().DomainEvents())
}
