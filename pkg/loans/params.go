package loans

import (
	"fmt"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/validation"
)

// LoanParameters describes a loan by its principal and rate plus exactly one
// of MonthlyPayment or TermMonths; the solver derives the other.
type LoanParameters struct {
	Principal          float64 `json:"principal" yaml:"principal"`
	AnnualInterestRate float64 `json:"annualInterestRate" yaml:"annualInterestRate"`
	MonthlyPayment     float64 `json:"monthlyPayment,omitempty" yaml:"monthlyPayment,omitempty"`
	TermMonths         int     `json:"termMonths,omitempty" yaml:"termMonths,omitempty"`
}

// PaymentGiven reports whether the payment is pinned and the term is solved for.
func (p LoanParameters) PaymentGiven() bool {
	return p.MonthlyPayment != 0
}

// Validate checks the parameters without computing anything.
func (p LoanParameters) Validate() error {
	if err := validation.First(
		validation.Positive("principal", p.Principal),
		validation.NonNegative("annualInterestRate", p.AnnualInterestRate),
		validation.Finite("monthlyPayment", p.MonthlyPayment),
	); err != nil {
		return err
	}
	if p.Principal < 1.0/constants.DecimalPrecision {
		return &validation.InvalidParameterError{Field: "principal", Value: p.Principal, Reason: "must be at least one cent"}
	}

	switch {
	case p.MonthlyPayment != 0 && p.TermMonths != 0:
		return &validation.InvalidParameterError{Field: "termMonths", Value: p.TermMonths,
			Reason: "supply exactly one of monthlyPayment or termMonths"}
	case p.MonthlyPayment == 0 && p.TermMonths == 0:
		return &validation.InvalidParameterError{Field: "termMonths", Value: p.TermMonths,
			Reason: "one of monthlyPayment or termMonths is required"}
	case p.MonthlyPayment < 0:
		return &validation.InvalidParameterError{Field: "monthlyPayment", Value: p.MonthlyPayment, Reason: "must be positive"}
	case p.MonthlyPayment != 0 && p.MonthlyPayment < 1.0/constants.DecimalPrecision:
		return &validation.InvalidParameterError{Field: "monthlyPayment", Value: p.MonthlyPayment, Reason: "must be at least one cent"}
	case p.TermMonths < 0:
		return &validation.InvalidParameterError{Field: "termMonths", Value: p.TermMonths, Reason: "must be positive"}
	case p.TermMonths > constants.MaxTermMonths:
		return &validation.InvalidParameterError{Field: "termMonths", Value: p.TermMonths,
			Reason: fmt.Sprintf("must not exceed %d", constants.MaxTermMonths)}
	}
	return nil
}
