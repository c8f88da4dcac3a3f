package projection

import (
	"github.com/iwvelando/rent-or-buy/pkg/loans"
)

// StrategyResult is one projection of a strategy comparison.
type StrategyResult struct {
	Strategy   Strategy   `json:"strategy"`
	Projection Projection `json:"projection"`
	Summary    Summary    `json:"summary"`
}

// CompareStrategies projects the same scenario once per preset allocation
// strategy, overriding investment.Strategy. The buyer's trajectory is the
// same in every result; only the renter's allocation differs.
func CompareStrategies(property PropertyParameters, loan loans.LoanParameters, rent RentParameters,
	investment InvestmentParameters, horizonMonths int) ([]StrategyResult, error) {
	strategies := PresetStrategies()
	results := make([]StrategyResult, 0, len(strategies))
	for _, strategy := range strategies {
		investment.Strategy = strategy
		projection, err := Project(property, loan, rent, investment, horizonMonths)
		if err != nil {
			return nil, err
		}
		results = append(results, StrategyResult{
			Strategy:   strategy,
			Projection: projection,
			Summary:    projection.Summarize(),
		})
	}
	return results, nil
}
