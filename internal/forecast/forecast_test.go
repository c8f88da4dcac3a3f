package forecast

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/rent-or-buy/internal/config"
	"github.com/iwvelando/rent-or-buy/pkg/projection"
	"github.com/iwvelando/rent-or-buy/pkg/validation"
	"go.uber.org/zap"
)

const forecastConfig = `
common:
  horizonYears: 2
  property:
    purchasePrice: 400000
    downPayment: 80000
    nebenkostRate: 0.05
    appreciationRate: 0.03
  loan:
    interestRate: 0.04
    termYears: 30
  rent:
    initialMonthlyRent: 1500
  investment:
    annualReturnRate: 0.05
scenarios:
  - name: mortgage
    active: true
    compareStrategies: true
  - name: cash
    active: true
    property:
      downPayment: 400000
  - name: skipped
    active: false
`

var fixedTime = time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)

func loadConfig(t *testing.T, yaml string) config.Configuration {
	t.Helper()
	conf, err := config.LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	return *conf
}

func TestGetForecastWithFixedTime(t *testing.T) {
	conf := loadConfig(t, forecastConfig)

	results, err := GetForecastWithFixedTime(zap.NewNop(), conf, fixedTime)
	if err != nil {
		t.Fatalf("GetForecastWithFixedTime() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 active scenarios, got %d", len(results))
	}
	if results[0].Name != "mortgage" || results[1].Name != "cash" {
		t.Errorf("results out of configuration order: %s, %s", results[0].Name, results[1].Name)
	}

	mortgage := results[0]
	if len(mortgage.Projection.Snapshots) != 25 {
		t.Errorf("expected 25 snapshots, got %d", len(mortgage.Projection.Snapshots))
	}
	if len(mortgage.Dates) != len(mortgage.Projection.Snapshots) {
		t.Errorf("dates (%d) and snapshots (%d) differ", len(mortgage.Dates), len(mortgage.Projection.Snapshots))
	}
	if mortgage.Dates[0] != "2025-11" || mortgage.Dates[24] != "2027-11" {
		t.Errorf("dates run from %s to %s", mortgage.Dates[0], mortgage.Dates[24])
	}
	if len(mortgage.Schedule) != 360 {
		t.Errorf("expected the full 360-row schedule, got %d", len(mortgage.Schedule))
	}
	if len(mortgage.PaymentCurve) != 31 {
		t.Errorf("expected 31 payment curve points, got %d", len(mortgage.PaymentCurve))
	}
	if len(mortgage.Strategies) != len(projection.PresetStrategies()) {
		t.Errorf("expected strategy comparison, got %d results", len(mortgage.Strategies))
	}
	if mortgage.Summary.HorizonMonths != 24 {
		t.Errorf("summary horizon = %d", mortgage.Summary.HorizonMonths)
	}

	cash := results[1]
	if cash.Schedule != nil || cash.PaymentCurve != nil {
		t.Errorf("cash purchase should have no loan output")
	}
	if cash.Strategies != nil {
		t.Errorf("cash scenario did not ask for a strategy comparison")
	}
}

func TestGetForecastUsesConfiguredStartDate(t *testing.T) {
	conf := loadConfig(t, forecastConfig)
	conf.StartDate = "2030-06"

	results, err := GetForecastWithFixedTime(nil, conf, fixedTime)
	if err != nil {
		t.Fatalf("GetForecastWithFixedTime() error = %v", err)
	}
	if results[0].Dates[0] != "2030-06" {
		t.Errorf("first date = %s, expected 2030-06", results[0].Dates[0])
	}
}

func TestGetForecastReportsInvalidScenario(t *testing.T) {
	conf := loadConfig(t, forecastConfig)
	conf.Scenarios[1].Property.DownPayment = nil
	price := 50000.0
	conf.Scenarios[1].Property.PurchasePrice = &price

	_, err := GetForecastWithFixedTime(zap.NewNop(), conf, fixedTime)
	if err == nil {
		t.Fatal("expected error when the down payment exceeds the price")
	}
	if !strings.Contains(err.Error(), "scenario cash") {
		t.Errorf("error should name the scenario: %v", err)
	}
	field, ok := validation.Field(err)
	if !ok || field != "downPayment" {
		t.Errorf("validation.Field() = %q, %v", field, ok)
	}
}

func TestRun(t *testing.T) {
	conf := loadConfig(t, forecastConfig)
	params, err := conf.Parameters(conf.Scenarios[0])
	if err != nil {
		t.Fatalf("Parameters() error = %v", err)
	}

	result, err := Run(params, "2025-01")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Name != "" {
		t.Errorf("Run() should leave naming to the caller")
	}
	if result.Projection.TermMonths != 360 {
		t.Errorf("TermMonths = %d, expected 360", result.Projection.TermMonths)
	}

	params.HorizonMonths = 0
	if _, err := Run(params, "2025-01"); err == nil {
		t.Error("expected horizon error")
	}

	params.HorizonMonths = 12
	if _, err := Run(params, "bad-date"); err == nil {
		t.Error("expected error for invalid start date")
	}
}
