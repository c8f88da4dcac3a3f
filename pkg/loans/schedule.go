package loans

import (
	"iter"
	"slices"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/validation"
	"github.com/shopspring/decimal"
)

// AmortizationRow holds the values for a given payment.
type AmortizationRow struct {
	Month            int             `json:"month"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// AmortizationResult is a solved loan. MonthlyPayment is the exact payment
// implied by the term (or the pinned payment); rows pay it rounded to the
// cent and the final row absorbs the accumulated rounding residue.
type AmortizationResult struct {
	Principal          decimal.Decimal
	AnnualInterestRate float64
	MonthlyPayment     float64
	TermMonths         int

	installment decimal.Decimal
	monthlyRate decimal.Decimal
}

// Totals summarizes a complete schedule.
type Totals struct {
	TotalInterest decimal.Decimal
	TotalPaid     decimal.Decimal
	FinalPayment  decimal.Decimal
	Rows          int
}

// ComputeSchedule validates the parameters and solves for whichever of the
// monthly payment or the term is missing.
func ComputeSchedule(params LoanParameters) (AmortizationResult, error) {
	if err := params.Validate(); err != nil {
		return AmortizationResult{}, err
	}

	principal := decimal.NewFromFloat(params.Principal).Round(constants.DecimalPlaces)
	principalF := principal.InexactFloat64()

	result := AmortizationResult{
		Principal:          principal,
		AnnualInterestRate: params.AnnualInterestRate,
		monthlyRate:        decimal.NewFromFloat(params.AnnualInterestRate).Div(decimal.NewFromInt(constants.MonthsPerYear)),
	}

	if params.PaymentGiven() {
		term, err := SolveTermMonths(principalF, params.AnnualInterestRate, params.MonthlyPayment)
		if err != nil {
			return AmortizationResult{}, err
		}
		result.MonthlyPayment = params.MonthlyPayment
		result.TermMonths = term
	} else {
		result.MonthlyPayment = CalculateMonthlyPayment(principalF, params.AnnualInterestRate, params.TermMonths)
		result.TermMonths = params.TermMonths
	}
	result.installment = decimal.NewFromFloat(result.MonthlyPayment).Round(constants.DecimalPlaces)
	if result.installment.LessThan(decimal.New(1, -constants.DecimalPlaces)) {
		return AmortizationResult{}, &validation.InvalidParameterError{Field: "termMonths", Value: params.TermMonths,
			Reason: "implies a monthly payment below one cent"}
	}

	// A payment rounded up to the cent can retire the loan early; the term
	// is the number of rows actually paid.
	if rows := result.Totals().Rows; rows < result.TermMonths {
		result.TermMonths = rows
	}

	return result, nil
}

// Installment returns the regular payment rounded to the cent.
func (r AmortizationResult) Installment() decimal.Decimal {
	return r.installment
}

// Rows returns the schedule as a lazy sequence. Every call starts over from
// the original principal. The sequence ends when the balance reaches zero or
// TermMonths rows have been produced, whichever comes first; the last row
// always leaves a balance of exactly zero.
func (r AmortizationResult) Rows() iter.Seq[AmortizationRow] {
	return func(yield func(AmortizationRow) bool) {
		balance := r.Principal
		for month := 1; month <= r.TermMonths && balance.IsPositive(); month++ {
			interest := balance.Mul(r.monthlyRate).Round(constants.DecimalPlaces)
			payment := r.installment
			principal := payment.Sub(interest)

			if month == r.TermMonths || principal.GreaterThanOrEqual(balance) {
				principal = balance
				payment = interest.Add(principal)
			}
			balance = balance.Sub(principal)

			row := AmortizationRow{
				Month:            month,
				Payment:          payment,
				Interest:         interest,
				Principal:        principal,
				RemainingBalance: balance,
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Schedule collects the full schedule.
func (r AmortizationResult) Schedule() []AmortizationRow {
	return slices.Collect(r.Rows())
}

// Totals walks the schedule and sums interest and payments.
func (r AmortizationResult) Totals() Totals {
	var totals Totals
	for row := range r.Rows() {
		totals.TotalInterest = totals.TotalInterest.Add(row.Interest)
		totals.TotalPaid = totals.TotalPaid.Add(row.Payment)
		totals.FinalPayment = row.Payment
		totals.Rows++
	}
	return totals
}

// InitialRepaymentRate is the share of the principal repaid during the first
// year at the first month's pace, i.e. the initial Tilgung of a German
// annuity loan.
func (r AmortizationResult) InitialRepaymentRate() float64 {
	principal := r.Principal.InexactFloat64()
	if principal == 0 {
		return 0
	}
	firstPrincipal := r.MonthlyPayment - CalculateInterestPayment(principal, r.AnnualInterestRate)
	return firstPrincipal * constants.MonthsPerYear / principal
}

// RowAt returns the row for the given 1-based month, or false once the loan
// has been retired.
func RowAt(rows []AmortizationRow, month int) (AmortizationRow, bool) {
	if month < 1 || month > len(rows) {
		return AmortizationRow{}, false
	}
	return rows[month-1], true
}
