package config

import (
	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/loans"
)

// Loan holds the financing section. Exactly one of MonthlyPayment or the
// term (TermMonths, or TermYears) is expected; the other is solved for.
type Loan struct {
	InterestRate   *float64
	MonthlyPayment *float64
	TermYears      *int
	TermMonths     *int
}

// pinned reports whether the section pins either the payment or the term.
func (l Loan) pinned() bool {
	return l.MonthlyPayment != nil || l.TermYears != nil || l.TermMonths != nil
}

// termMonths returns the configured term, or 0 when the payment is pinned.
func (l Loan) termMonths() int {
	if l.TermMonths != nil {
		return *l.TermMonths
	}
	if l.TermYears != nil {
		return *l.TermYears * constants.MonthsPerYear
	}
	return 0
}

// ToLoanParameters converts the section into solver input. The principal is
// left for the projector to derive from the property.
func (l Loan) ToLoanParameters() loans.LoanParameters {
	params := loans.LoanParameters{
		AnnualInterestRate: floatValue(l.InterestRate),
		TermMonths:         l.termMonths(),
	}
	if l.MonthlyPayment != nil {
		params.MonthlyPayment = *l.MonthlyPayment
	}
	return params
}

// loanFor merges the loan sections. The interest rate falls back field by
// field; the payment/term pin is taken whole from the scenario when it sets
// one, otherwise from common.
func (c *Configuration) loanFor(scenario Scenario) Loan {
	loan := c.Common.Loan
	if scenario.Loan.pinned() {
		loan.MonthlyPayment = scenario.Loan.MonthlyPayment
		loan.TermYears = scenario.Loan.TermYears
		loan.TermMonths = scenario.Loan.TermMonths
	}
	loan.InterestRate = firstFloat(scenario.Loan.InterestRate, c.Common.Loan.InterestRate)
	return loan
}
