// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"
	"time"

	"github.com/iwvelando/rent-or-buy/internal/config"
	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/datetime"
	"github.com/iwvelando/rent-or-buy/pkg/loans"
	"github.com/iwvelando/rent-or-buy/pkg/optimization"
	"github.com/iwvelando/rent-or-buy/pkg/projection"
	"go.uber.org/zap"
)

// Forecast holds all information related to a specific forecast.
type Forecast struct {
	Name          string                      `json:"name"`
	Dates         []string                    `json:"dates"`
	Projection    projection.Projection       `json:"projection"`
	Summary       projection.Summary          `json:"summary"`
	Schedule      []loans.AmortizationRow     `json:"schedule,omitempty"`
	PaymentCurve  []loans.CurvePoint          `json:"paymentCurve,omitempty"`
	Strategies    []projection.StrategyResult `json:"strategies,omitempty"`
	Optimizations []optimization.Summary      `json:"optimizations,omitempty"`
}

// GetForecast processes the Forecasts for all Scenarios.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	return GetForecastWithFixedTime(logger, conf, time.Now())
}

// GetForecastWithFixedTime processes the Forecasts for all Scenarios, labelling
// months from the configured start date or the month containing now.
func GetForecastWithFixedTime(logger *zap.Logger, conf config.Configuration, now time.Time) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Forecast
	startDate := conf.StartMonth(now)
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}

		params, err := conf.Parameters(scenario)
		if err != nil {
			return results, err
		}

		result, err := Run(params, startDate)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result.Name = scenario.Name

		if scenario.CompareStrategies {
			result.Strategies, err = projection.CompareStrategies(params.Property, params.Loan, params.Rent,
				params.Investment, params.HorizonMonths)
			if err != nil {
				return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}
		}

		logger.Debug("computed scenario",
			zap.String("op", "forecast.GetForecast"),
			zap.String("scenario", scenario.Name),
			zap.Int("horizonMonths", params.HorizonMonths),
			zap.Float64("buyerNetWorth", result.Summary.BuyerNetWorth),
			zap.Float64("renterNetWorth", result.Summary.RenterNetWorth),
			zap.Bool("breakEven", result.Summary.BreakEven),
		)
		results = append(results, result)
	}

	return results, nil
}

// Run projects a single resolved parameter set. It is shared by the CLI and
// the HTTP API.
func Run(params config.Parameters, startDate string) (Forecast, error) {
	proj, err := projection.Project(params.Property, params.Loan, params.Rent, params.Investment, params.HorizonMonths)
	if err != nil {
		return Forecast{}, err
	}

	dates, err := datetime.MonthLabels(startDate, len(proj.Snapshots))
	if err != nil {
		return Forecast{}, err
	}

	result := Forecast{
		Dates:      dates,
		Projection: proj,
		Summary:    proj.Summarize(),
	}

	if proj.Loan != nil {
		result.Schedule = proj.Loan.Schedule()
		result.PaymentCurve, err = loans.PaymentCurve(proj.Loan.Principal.InexactFloat64(),
			params.Loan.AnnualInterestRate, constants.DefaultCurveMinYears, constants.DefaultCurveMaxYears)
		if err != nil {
			return Forecast{}, err
		}
	}

	return result, nil
}
