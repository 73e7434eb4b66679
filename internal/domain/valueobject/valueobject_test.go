package valueobject_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urjitutjit/creditapprovalsystem/internal/domain/valueobject"
)

func TestNewLoanStatus(t *testing.T) {
	tests := []struct {
		input string
		want  valueobject.LoanStatus
	}{
		{"active", valueobject.LoanStatusActive},
		{"completed", valueobject.LoanStatusCompleted},
		{"defaulted", valueobject.LoanStatusDefaulted},
		{"ACTIVE", valueobject.LoanStatusActive},
		{" Completed ", valueobject.LoanStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := valueobject.NewLoanStatus(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		_, err := valueobject.NewLoanStatus("closed")
		assert.Error(t, err)
	})
}

func TestLoanStatus_Predicates(t *testing.T) {
	assert.True(t, valueobject.LoanStatusActive.IsActive())
	assert.False(t, valueobject.LoanStatusActive.IsCompleted())
	assert.True(t, valueobject.LoanStatusCompleted.IsCompleted())
	assert.False(t, valueobject.LoanStatusDefaulted.IsActive())
	assert.True(t, valueobject.LoanStatus{}.IsZero())
}

func TestNewCreditScore_Clamps(t *testing.T) {
	t.Run("negative clamps to zero", func(t *testing.T) {
		s := valueobject.NewCreditScore(decimal.NewFromInt(-5))
		assert.True(t, s.IsZero())
	})

	t.Run("above hundred clamps to hundred", func(t *testing.T) {
		s := valueobject.NewCreditScore(decimal.NewFromInt(140))
		assert.Equal(t, "100.00", s.String())
	})

	t.Run("in range is kept", func(t *testing.T) {
		s := valueobject.NewCreditScore(decimal.RequireFromString("27.5"))
		assert.Equal(t, 27.5, s.Float64())
		assert.True(t, s.GreaterThan(27))
		assert.False(t, s.GreaterThan(30))
	})
}
