// Package projection advances the buy and rent scenarios month by month and
// produces their comparable net-worth trajectories.
package projection

import (
	"iter"
	"slices"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/finance"
	"github.com/iwvelando/rent-or-buy/pkg/loans"
	"github.com/iwvelando/rent-or-buy/pkg/mathutil"
	"github.com/iwvelando/rent-or-buy/pkg/validation"
)

// MonthlySnapshot is the state of both scenarios at the end of a month.
// Month 0 is the purchase date, before any payment.
type MonthlySnapshot struct {
	Month          int     `json:"month"`
	BuyerNetWorth  float64 `json:"buyerNetWorth"`
	RenterNetWorth float64 `json:"renterNetWorth"`
	PropertyValue  float64 `json:"propertyValue"`
	// InvestedCapital is the renter's investment portfolio.
	InvestedCapital float64 `json:"investedCapital"`

	RemainingBalance       float64 `json:"remainingBalance"`
	BuyerInvestedCapital   float64 `json:"buyerInvestedCapital"`
	MortgagePayment        float64 `json:"mortgagePayment"`
	CarryingCost           float64 `json:"carryingCost"`
	Rent                   float64 `json:"rent"`
	CashFlowDifferential   float64 `json:"cashFlowDifferential"`
	CumulativeCarryingCost float64 `json:"cumulativeCarryingCost"`
}

// Projector holds validated inputs and the solved loan. It is immutable and
// may be shared between goroutines.
type Projector struct {
	Property      PropertyParameters
	Rent          RentParameters
	Investment    InvestmentParameters
	HorizonMonths int
	// Loan is nil for a cash purchase.
	Loan *loans.AmortizationResult

	loanRate float64
}

// NewProjector validates every input and solves the loan. The loan principal
// is derived from the property; a non-zero Principal in loan must match it.
func NewProjector(property PropertyParameters, loan loans.LoanParameters, rent RentParameters,
	investment InvestmentParameters, horizonMonths int) (*Projector, error) {
	if horizonMonths <= 0 {
		return nil, &validation.InvalidHorizonError{Horizon: horizonMonths}
	}
	if horizonMonths > constants.MaxHorizonMonths {
		return nil, &validation.InvalidHorizonError{Horizon: horizonMonths, Max: constants.MaxHorizonMonths}
	}
	if err := validation.First(property.Validate(), rent.Validate(), investment.Validate()); err != nil {
		return nil, err
	}
	if err := validation.NonNegative("annualInterestRate", loan.AnnualInterestRate); err != nil {
		return nil, err
	}

	principal := property.LoanPrincipal()
	if loan.Principal != 0 && !mathutil.WithinTolerance(loan.Principal, principal, constants.CurrencyTolerance) {
		return nil, &validation.InvalidParameterError{Field: "principal", Value: loan.Principal,
			Reason: "must equal the purchase price minus the down payment"}
	}

	p := &Projector{
		Property:      property,
		Rent:          rent,
		Investment:    investment,
		HorizonMonths: horizonMonths,
		loanRate:      loan.AnnualInterestRate,
	}
	if property.CashPurchase() {
		return p, nil
	}

	loan.Principal = principal
	result, err := loans.ComputeSchedule(loan)
	if err != nil {
		return nil, err
	}
	p.Loan = &result
	return p, nil
}

// Snapshots returns the lazy month-by-month sequence, months 0 through the
// horizon. Every call starts a fresh simulation.
func (p *Projector) Snapshots() iter.Seq[MonthlySnapshot] {
	return func(yield func(MonthlySnapshot) bool) {
		property := p.Property
		sunk := property.SunkCosts()

		savingsShare, savingsRate := p.Investment.Allocation(p.loanRate)
		renter := finance.NewPortfolio(property.UpfrontOutlay(), p.Investment.AnnualReturnRate, savingsShare, savingsRate)
		buyer := finance.Portfolio{Market: finance.NewAccount("market", p.Investment.AnnualReturnRate, 0)}

		nextRow := func() (loans.AmortizationRow, bool) { return loans.AmortizationRow{}, false }
		balance := 0.0
		if p.Loan != nil {
			next, stop := iter.Pull(p.Loan.Rows())
			defer stop()
			nextRow = next
			balance = p.Loan.Principal.InexactFloat64()
		}

		propertyValue := property.PurchasePrice
		rent := p.Rent.InitialMonthlyRent
		cumulativeCarrying := 0.0

		snapshot := MonthlySnapshot{
			Month:            0,
			BuyerNetWorth:    propertyValue - balance - sunk,
			RenterNetWorth:   renter.Value(),
			PropertyValue:    propertyValue,
			InvestedCapital:  renter.Value(),
			RemainingBalance: balance,
		}
		if !yield(snapshot) {
			return
		}

		for month := 1; month <= p.HorizonMonths; month++ {
			propertyValue *= 1 + mathutil.MonthlyRate(property.AppreciationRate)
			if month > 1 {
				rent *= 1 + mathutil.MonthlyRate(p.Rent.RentInflationRate)
			}

			// After payoff the balance stays at zero and nothing is paid.
			payment := 0.0
			if row, ok := nextRow(); ok {
				payment = row.Payment.InexactFloat64()
				balance = row.RemainingBalance.InexactFloat64()
			}

			carrying := mathutil.MonthlyRate(property.MaintenanceRate+property.PropertyTaxRate)*propertyValue +
				property.AnnualPropertyTax/constants.MonthsPerYear
			cumulativeCarrying += carrying

			differential := payment + carrying - rent
			renterContribution, buyerContribution := 0.0, 0.0
			if differential > 0 {
				renterContribution = differential
			} else {
				buyerContribution = -differential
			}
			renter.Advance(renterContribution)
			buyer.Advance(buyerContribution)

			snapshot = MonthlySnapshot{
				Month:                  month,
				BuyerNetWorth:          propertyValue - balance - sunk + buyer.Value(),
				RenterNetWorth:         renter.Value(),
				PropertyValue:          propertyValue,
				InvestedCapital:        renter.Value(),
				RemainingBalance:       balance,
				BuyerInvestedCapital:   buyer.Value(),
				MortgagePayment:        payment,
				CarryingCost:           carrying,
				Rent:                   rent,
				CashFlowDifferential:   differential,
				CumulativeCarryingCost: cumulativeCarrying,
			}
			if !yield(snapshot) {
				return
			}
		}
	}
}

// Projection is a completed run.
type Projection struct {
	Property       PropertyParameters        `json:"property"`
	Rent           RentParameters            `json:"rent"`
	Investment     InvestmentParameters      `json:"investment"`
	HorizonMonths  int                       `json:"horizonMonths"`
	MonthlyPayment float64                   `json:"monthlyPayment"`
	TermMonths     int                       `json:"termMonths"`
	Snapshots      []MonthlySnapshot         `json:"snapshots"`
	Loan           *loans.AmortizationResult `json:"-"`
}

// Project runs the full simulation. It either returns every snapshot from
// month 0 to the horizon or an error, never a partial result.
func Project(property PropertyParameters, loan loans.LoanParameters, rent RentParameters,
	investment InvestmentParameters, horizonMonths int) (Projection, error) {
	projector, err := NewProjector(property, loan, rent, investment, horizonMonths)
	if err != nil {
		return Projection{}, err
	}
	return projector.Run(), nil
}

// Run collects the snapshots of the projector.
func (p *Projector) Run() Projection {
	projection := Projection{
		Property:      p.Property,
		Rent:          p.Rent,
		Investment:    p.Investment,
		HorizonMonths: p.HorizonMonths,
		Loan:          p.Loan,
		Snapshots:     slices.Collect(p.Snapshots()),
	}
	if p.Loan != nil {
		projection.MonthlyPayment = p.Loan.MonthlyPayment
		projection.TermMonths = p.Loan.TermMonths
	}
	return projection
}

// Each iterates over the collected snapshots.
func (p Projection) Each() iter.Seq[MonthlySnapshot] {
	return slices.Values(p.Snapshots)
}

// Final returns the snapshot at the horizon.
func (p Projection) Final() MonthlySnapshot {
	if len(p.Snapshots) == 0 {
		return MonthlySnapshot{}
	}
	return p.Snapshots[len(p.Snapshots)-1]
}
