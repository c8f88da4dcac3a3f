// Package optimizer searches a single scenario input for the value at which
// buying and renting end the horizon with equal net worth.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/rent-or-buy/internal/config"
	"github.com/iwvelando/rent-or-buy/internal/forecast"
	"github.com/iwvelando/rent-or-buy/pkg/format"
	"github.com/iwvelando/rent-or-buy/pkg/optimization"
	"github.com/iwvelando/rent-or-buy/pkg/projection"
	"go.uber.org/zap"
)

// Runner executes the optimizer directives of a configuration.
type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

type evaluation struct {
	value     float64
	advantage float64
}

// Result summarizes optimizer searches keyed by scenario name.
type Result struct {
	Summaries map[string][]optimization.Summary
}

// Empty indicates whether any optimizer searches were run.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches optimizer summaries to the provided forecast results.
func (r Result) Apply(forecasts []forecast.Forecast) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range forecasts {
		summaries, ok := r.Summaries[forecasts[i].Name]
		if !ok {
			continue
		}
		forecasts[i].Optimizations = append(forecasts[i].Optimizations, summaries...)
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run executes every optimizer directive of the active scenarios. The
// configuration is not modified.
func (r *Runner) Run() (*Result, error) {
	summaries := make(map[string][]optimization.Summary)

	for _, scenario := range r.conf.Scenarios {
		if !scenario.Active || scenario.Optimizer == nil {
			continue
		}
		directive := *scenario.Optimizer
		if err := directive.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		params, err := r.conf.Parameters(scenario)
		if err != nil {
			return nil, err
		}

		summary, err := r.optimize(scenario.Name, &directive, params)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		summaries[scenario.Name] = append(summaries[scenario.Name], summary)

		r.logger.Info("optimizer found break-even value",
			zap.String("op", "optimizer.Run"),
			zap.String("scenario", scenario.Name),
			zap.String("field", summary.Field),
			zap.Float64("original", summary.Original),
			zap.Float64("value", summary.Value),
			zap.Float64("advantage", summary.Advantage),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return &Result{Summaries: summaries}, nil
}

func (r *Runner) optimize(name string, directive *config.OptimizerConfig, params config.Parameters) (optimization.Summary, error) {
	original := directive.Current(params)
	summary := optimization.Summary{
		Scope:           "scenario",
		TargetName:      name,
		Field:           directive.Field,
		Original:        original,
		OriginalDisplay: r.display(directive.Field, original),
	}

	lower, err := evaluate(directive, params, *directive.Min)
	if err != nil {
		return summary, err
	}
	upper, err := evaluate(directive, params, *directive.Max)
	if err != nil {
		return summary, err
	}

	finish := func(eval evaluation, iterations int, converged bool) optimization.Summary {
		summary.Value = eval.value
		summary.ValueDisplay = r.display(directive.Field, eval.value)
		summary.Advantage = eval.advantage
		summary.Iterations = iterations
		summary.Converged = converged
		return summary
	}

	switch {
	case lower.advantage == 0:
		return finish(lower, 0, true), nil
	case upper.advantage == 0:
		return finish(upper, 0, true), nil
	case math.Signbit(lower.advantage) == math.Signbit(upper.advantage):
		closest := lower
		if math.Abs(upper.advantage) < math.Abs(lower.advantage) {
			closest = upper
		}
		summary.Notes = []string{fmt.Sprintf("no break-even within bounds %s to %s",
			r.display(directive.Field, lower.value), r.display(directive.Field, upper.value))}
		return finish(closest, 0, false), nil
	}

	iterations := 0
	best := lower
	if math.Abs(upper.advantage) < math.Abs(lower.advantage) {
		best = upper
	}
	for iterations < directive.MaxIterations && math.Abs(upper.value-lower.value) > directive.Tolerance {
		mid, err := evaluate(directive, params, lower.value+(upper.value-lower.value)/2)
		if err != nil {
			return summary, err
		}
		iterations++
		if math.Abs(mid.advantage) < math.Abs(best.advantage) {
			best = mid
		}
		if mid.advantage == 0 {
			break
		}
		if math.Signbit(mid.advantage) == math.Signbit(lower.advantage) {
			lower = mid
		} else {
			upper = mid
		}
	}

	converged := best.advantage == 0 || math.Abs(upper.value-lower.value) <= directive.Tolerance
	if !converged {
		summary.Notes = []string{fmt.Sprintf("stopped after %d iterations", iterations)}
	}
	return finish(best, iterations, converged), nil
}

func evaluate(directive *config.OptimizerConfig, params config.Parameters, value float64) (evaluation, error) {
	p := directive.Apply(params, value)
	proj, err := projection.Project(p.Property, p.Loan, p.Rent, p.Investment, p.HorizonMonths)
	if err != nil {
		return evaluation{}, err
	}
	final := proj.Final()
	return evaluation{value: value, advantage: final.BuyerNetWorth - final.RenterNetWorth}, nil
}

func (r *Runner) display(field string, value float64) string {
	if config.IsRateField(field) {
		return format.Percent(value)
	}
	return format.Currency(value, r.conf.Output.CurrencySymbol)
}
