package projection

import (
	"math"
	"strings"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/mathutil"
	"github.com/iwvelando/rent-or-buy/pkg/validation"
)

// Strategy selects how the renter's starting capital is split between the
// market account and a savings account.
type Strategy string

const (
	// StrategyAggressive keeps everything in the market account.
	StrategyAggressive Strategy = "aggressive"
	// StrategyBalanced parks three quarters in savings at the loan rate less 2%.
	StrategyBalanced Strategy = "balanced"
	// StrategyConservative parks seven eighths in savings at the loan rate less
	// 2%, capped at 1%.
	StrategyConservative Strategy = "conservative"
	// StrategyCustom takes the savings share and rate from the parameters.
	StrategyCustom Strategy = "custom"
)

// PresetStrategies are the allocations compared side by side.
func PresetStrategies() []Strategy {
	return []Strategy{StrategyAggressive, StrategyBalanced, StrategyConservative}
}

// ParseStrategy accepts a strategy name case-insensitively; an empty name
// selects the aggressive strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return StrategyAggressive, nil
	case StrategyAggressive, StrategyBalanced, StrategyConservative, StrategyCustom:
		return s, nil
	default:
		return "", &validation.InvalidParameterError{Field: "strategy", Value: name,
			Reason: "must be one of aggressive, balanced, conservative or custom"}
	}
}

// Allocation returns the savings share of the starting capital and the
// savings account's annual rate for the given loan rate. Parameters are
// expected to be validated.
func (i InvestmentParameters) Allocation(loanRate float64) (savingsShare, savingsRate float64) {
	strategy, _ := ParseStrategy(string(i.Strategy))
	switch strategy {
	case StrategyBalanced:
		return constants.BalancedSavingsShare, math.Max(loanRate-constants.SavingsRateSpread, 0)
	case StrategyConservative:
		return constants.ConservativeSavingsShare,
			mathutil.Clamp(loanRate-constants.SavingsRateSpread, 0, constants.ConservativeSavingsRateCap)
	case StrategyCustom:
		return i.SavingsShare, i.SavingsReturnRate
	default:
		return 0, 0
	}
}
