// Package testutil provides common utility functions for testing.
package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/rent-or-buy/internal/config"
	"github.com/iwvelando/rent-or-buy/internal/forecast"
)

// FixedTime is the reference "now" used by tests that label months.
var FixedTime = time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// LoadConfig parses an inline YAML configuration or fails the test.
func LoadConfig(t testing.TB, yaml string) *config.Configuration {
	t.Helper()
	conf, err := config.LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("failed to load configuration: %v", err)
	}
	return conf
}

// Forecasts computes the forecasts of an inline YAML configuration at
// FixedTime or fails the test.
func Forecasts(t testing.TB, yaml string) []forecast.Forecast {
	t.Helper()
	conf := LoadConfig(t, yaml)
	results, err := forecast.GetForecastWithFixedTime(nil, *conf, FixedTime)
	if err != nil {
		t.Fatalf("failed to compute forecasts: %v", err)
	}
	return results
}

// Float returns a pointer to v for optional configuration fields.
func Float(v float64) *float64 {
	return &v
}
