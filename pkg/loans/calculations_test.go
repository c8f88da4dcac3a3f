package loans

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/rent-or-buy/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		expected           float64
	}{
		{
			name:               "Standard 30-year mortgage",
			principal:          300000,
			annualInterestRate: 0.04,
			termMonths:         360,
			expected:           1432.25,
		},
		{
			name:               "25-year annuity loan",
			principal:          200000,
			annualInterestRate: 0.04,
			termMonths:         300,
			expected:           1055.67,
		},
		{
			name:               "5-year car loan",
			principal:          20000,
			annualInterestRate: 0.04,
			termMonths:         60,
			expected:           368.33,
		},
		{
			name:               "Zero interest loan",
			principal:          100000,
			annualInterestRate: 0.0,
			termMonths:         120,
			expected:           833.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)
			assert.InDelta(t, tt.expected, result, 0.01)
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualInterestRate float64
		expected           float64
	}{
		{"Standard mortgage interest", 200000, 0.06, 1000.0},
		{"Car loan interest", 15000, 0.045, 56.25},
		{"Zero interest", 10000, 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.annualInterestRate)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestSolveTermMonths(t *testing.T) {
	t.Run("payment above interest", func(t *testing.T) {
		term, err := SolveTermMonths(300000, 0.04, 1800)
		require.NoError(t, err)
		assert.Equal(t, 244, term)
	})

	t.Run("zero rate", func(t *testing.T) {
		term, err := SolveTermMonths(12000, 0, 1000)
		require.NoError(t, err)
		assert.Equal(t, 12, term)
	})

	t.Run("payment below a cent round trips", func(t *testing.T) {
		term, err := SolveTermMonths(1, 0, CalculateMonthlyPayment(1, 0, 360))
		require.NoError(t, err)
		assert.Equal(t, 360, term)
	})

	t.Run("payment equal to interest never amortizes", func(t *testing.T) {
		_, err := SolveTermMonths(300000, 0.04, 1000)
		var paymentErr *validation.NonAmortizingPaymentError
		require.True(t, errors.As(err, &paymentErr), "expected NonAmortizingPaymentError, got %v", err)
		assert.InDelta(t, 1000.0, paymentErr.Interest, 0.001)
	})

	t.Run("payment below interest never amortizes", func(t *testing.T) {
		_, err := SolveTermMonths(300000, 0.04, 500)
		assert.ErrorIs(t, err, validation.ErrInvalidParameters)
	})

	t.Run("payment barely above interest exceeds the term cap", func(t *testing.T) {
		_, err := SolveTermMonths(300000, 0.04, 1000.01)
		var paramErr *validation.InvalidParameterError
		require.True(t, errors.As(err, &paramErr), "expected InvalidParameterError, got %v", err)
		assert.Equal(t, "monthlyPayment", paramErr.Field)
	})
}

func TestPaymentCurve(t *testing.T) {
	points, err := PaymentCurve(300000, 0.04, 10, 40)
	require.NoError(t, err)
	require.Len(t, points, 31)

	assert.Equal(t, 10, points[0].TermYears)
	assert.Equal(t, 120, points[0].TermMonths)
	assert.Equal(t, 40, points[30].TermYears)
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i].MonthlyPayment, points[i-1].MonthlyPayment,
			"payment should fall as the term grows (%d years)", points[i].TermYears)
		assert.Greater(t, points[i].TotalInterest, points[i-1].TotalInterest,
			"total interest should grow with the term (%d years)", points[i].TermYears)
	}
	assert.InDelta(t, 1432.25, points[20].MonthlyPayment, 0.01)

	_, err = PaymentCurve(300000, 0.04, 0, 10)
	assert.ErrorIs(t, err, validation.ErrInvalidParameters)
	_, err = PaymentCurve(300000, 0.04, 20, 10)
	assert.ErrorIs(t, err, validation.ErrInvalidParameters)
	_, err = PaymentCurve(300000, 0.04, 10, 101)
	assert.ErrorIs(t, err, validation.ErrInvalidParameters)
	_, err = PaymentCurve(-1, 0.04, 10, 20)
	assert.ErrorIs(t, err, validation.ErrInvalidParameters)
}
