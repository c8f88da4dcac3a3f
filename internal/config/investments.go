package config

import (
	"github.com/iwvelando/rent-or-buy/pkg/projection"
)

// Investment holds the investment section.
type Investment struct {
	AnnualReturnRate  *float64
	Strategy          string
	SavingsShare      *float64
	SavingsReturnRate *float64
}

// ToInvestmentParameters converts the section into projector input.
func (i Investment) ToInvestmentParameters() (projection.InvestmentParameters, error) {
	strategy, err := projection.ParseStrategy(i.Strategy)
	if err != nil {
		return projection.InvestmentParameters{}, err
	}
	return projection.InvestmentParameters{
		AnnualReturnRate:  floatValue(i.AnnualReturnRate),
		Strategy:          strategy,
		SavingsShare:      floatValue(i.SavingsShare),
		SavingsReturnRate: floatValue(i.SavingsReturnRate),
	}, nil
}

func (c *Configuration) investmentFor(scenario Scenario) Investment {
	common := c.Common.Investment
	strategy := scenario.Investment.Strategy
	if strategy == "" {
		strategy = common.Strategy
	}
	return Investment{
		AnnualReturnRate:  firstFloat(scenario.Investment.AnnualReturnRate, common.AnnualReturnRate),
		Strategy:          strategy,
		SavingsShare:      firstFloat(scenario.Investment.SavingsShare, common.SavingsShare),
		SavingsReturnRate: firstFloat(scenario.Investment.SavingsReturnRate, common.SavingsReturnRate),
	}
}
