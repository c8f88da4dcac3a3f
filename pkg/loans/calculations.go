// Package loans implements the amortization solver: it reconciles monthly
// payment, term, principal and interest rate and produces the repayment
// schedule in fixed-point currency.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/mathutil"
	"github.com/iwvelando/rent-or-buy/pkg/validation"
)

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula. The result is not rounded.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	r := mathutil.MonthlyRate(annualInterestRate)
	return principal * r / (1 - math.Pow(1+r, -float64(termMonths)))
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// SolveTermMonths finds the number of months needed to retire principal with
// the given payment by iterating the amortization recurrence on the unrounded
// balance. The loan counts as retired once less than half a cent, or half a
// payment for payments below a cent, remains.
func SolveTermMonths(principal, annualInterestRate, payment float64) (int, error) {
	r := mathutil.MonthlyRate(annualInterestRate)
	interest := principal * r
	if payment <= interest {
		return 0, &validation.NonAmortizingPaymentError{Payment: payment, Interest: mathutil.Round(interest)}
	}

	tolerance := min(constants.HalfCent, payment/2)
	balance := principal
	for month := 1; month <= constants.MaxTermMonths; month++ {
		balance = balance*(1+r) - payment
		if balance <= tolerance {
			return month, nil
		}
	}
	return 0, &validation.InvalidParameterError{
		Field:  "monthlyPayment",
		Value:  payment,
		Reason: fmt.Sprintf("retiring the loan takes more than %d months", constants.MaxTermMonths),
	}
}

// CurvePoint is the monthly payment required for one whole-year term.
type CurvePoint struct {
	TermYears      int     `json:"termYears"`
	TermMonths     int     `json:"termMonths"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// PaymentCurve returns the payment for every whole-year term between minYears
// and maxYears inclusive.
func PaymentCurve(principal, annualInterestRate float64, minYears, maxYears int) ([]CurvePoint, error) {
	if err := validation.First(
		validation.Positive("principal", principal),
		validation.NonNegative("annualInterestRate", annualInterestRate),
	); err != nil {
		return nil, err
	}
	if minYears <= 0 {
		return nil, &validation.InvalidParameterError{Field: "minYears", Value: minYears, Reason: "must be positive"}
	}
	if maxYears < minYears {
		return nil, &validation.InvalidParameterError{Field: "maxYears", Value: maxYears, Reason: "must not be below minYears"}
	}
	if maxYears*constants.MonthsPerYear > constants.MaxTermMonths {
		return nil, &validation.InvalidParameterError{Field: "maxYears", Value: maxYears,
			Reason: fmt.Sprintf("must not exceed %d", constants.MaxTermMonths/constants.MonthsPerYear)}
	}

	points := make([]CurvePoint, 0, maxYears-minYears+1)
	for years := minYears; years <= maxYears; years++ {
		months := years * constants.MonthsPerYear
		payment := CalculateMonthlyPayment(principal, annualInterestRate, months)
		points = append(points, CurvePoint{
			TermYears:      years,
			TermMonths:     months,
			MonthlyPayment: payment,
			TotalInterest:  mathutil.Round(payment*float64(months) - principal),
		})
	}
	return points, nil
}
