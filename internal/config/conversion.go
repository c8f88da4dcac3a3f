package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/datetime"
	"github.com/iwvelando/rent-or-buy/pkg/loans"
	"github.com/iwvelando/rent-or-buy/pkg/projection"
)

// Parameters is a scenario resolved into engine input.
type Parameters struct {
	Property      projection.PropertyParameters
	Loan          loans.LoanParameters
	Rent          projection.RentParameters
	Investment    projection.InvestmentParameters
	HorizonMonths int
}

// Parameters merges the scenario with the common section. Range checks are
// left to the engine.
func (c *Configuration) Parameters(scenario Scenario) (Parameters, error) {
	investment, err := c.investmentFor(scenario).ToInvestmentParameters()
	if err != nil {
		return Parameters{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	return Parameters{
		Property:      c.propertyFor(scenario),
		Loan:          c.loanFor(scenario).ToLoanParameters(),
		Rent:          c.rentFor(scenario),
		Investment:    investment,
		HorizonMonths: c.HorizonMonths(scenario),
	}, nil
}

// HorizonMonths resolves the scenario's horizon; months take precedence over
// years and the scenario over common.
func (c *Configuration) HorizonMonths(scenario Scenario) int {
	switch {
	case scenario.HorizonMonths != 0:
		return scenario.HorizonMonths
	case scenario.HorizonYears != 0:
		return scenario.HorizonYears * constants.MonthsPerYear
	case c.Common.HorizonMonths != 0:
		return c.Common.HorizonMonths
	default:
		return c.Common.HorizonYears * constants.MonthsPerYear
	}
}

// StartMonth returns the configured start date, or the month containing now
// when it is unset or invalid.
func (c *Configuration) StartMonth(now time.Time) string {
	if c.StartDate != "" {
		if t, err := parseMonth(c.StartDate); err == nil {
			return t.Format(DateTimeLayout)
		}
	}
	return datetime.CurrentMonth(now)
}

func (c *Configuration) propertyFor(scenario Scenario) projection.PropertyParameters {
	s, common := scenario.Property, c.Common.Property
	return projection.PropertyParameters{
		PurchasePrice:     floatValue(firstFloat(s.PurchasePrice, common.PurchasePrice)),
		DownPayment:       floatValue(firstFloat(s.DownPayment, common.DownPayment)),
		RefurbishCost:     floatValue(firstFloat(s.RefurbishCost, common.RefurbishCost)),
		NebenkostRate:     floatValue(firstFloat(s.NebenkostRate, common.NebenkostRate)),
		MaintenanceRate:   floatValue(firstFloat(s.MaintenanceRate, common.MaintenanceRate)),
		PropertyTaxRate:   floatValue(firstFloat(s.PropertyTaxRate, common.PropertyTaxRate)),
		AnnualPropertyTax: floatValue(firstFloat(s.AnnualPropertyTax, common.AnnualPropertyTax)),
		AppreciationRate:  floatValue(firstFloat(s.AppreciationRate, common.AppreciationRate)),
	}
}

func (c *Configuration) rentFor(scenario Scenario) projection.RentParameters {
	s, common := scenario.Rent, c.Common.Rent
	return projection.RentParameters{
		InitialMonthlyRent: floatValue(firstFloat(s.InitialMonthlyRent, common.InitialMonthlyRent)),
		RentInflationRate:  floatValue(firstFloat(s.RentInflationRate, common.RentInflationRate)),
	}
}

func parseMonth(value string) (time.Time, error) {
	return time.Parse(DateTimeLayout, value)
}

func firstFloat(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
