package testutil

import (
	"fmt"
	"testing"

	"github.com/iwvelando/rent-or-buy/internal/forecast"
)

const sampleConfig = `
startDate: "2026-03"
common:
  horizonYears: 2
  property:
    purchasePrice: 300000
    downPayment: 60000
    appreciationRate: 0.02
  loan:
    interestRate: 0.04
    termYears: 25
  rent:
    initialMonthlyRent: 1200
  investment:
    annualReturnRate: 0.05
scenarios:
  - name: first
    active: true
  - name: second
    active: true
    horizonMonths: 6
  - name: off
    active: false
`

func TestFindScenario(t *testing.T) {
	results := []forecast.Forecast{
		{Name: "Scenario A", Dates: []string{"2025-01"}},
		{Name: "Scenario B", Dates: []string{"2025-02"}},
		{Name: "Another Scenario", Dates: []string{"2025-03"}},
	}

	tests := []struct {
		name        string
		searchName  string
		expectFound bool
		expectDate  string
	}{
		{"Find existing scenario A", "Scenario A", true, "2025-01"},
		{"Find existing scenario B", "Scenario B", true, "2025-02"},
		{"Find scenario with longer name", "Another Scenario", true, "2025-03"},
		{"Search for non-existent scenario", "Non-existent", false, ""},
		{"Empty search name", "", false, ""},
		{"Case sensitive search", "scenario a", false, ""},
		{"Partial name match", "Scenario", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindScenario(results, tt.searchName)

			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindScenario() expected nil for scenario '%s' but got '%s'", tt.searchName, result.Name)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindScenario() expected to find scenario '%s' but got nil", tt.searchName)
			}
			if result.Name != tt.searchName {
				t.Errorf("FindScenario() returned scenario '%s', expected '%s'", result.Name, tt.searchName)
			}
			if result.Dates[0] != tt.expectDate {
				t.Errorf("FindScenario() returned dates %v, expected %s", result.Dates, tt.expectDate)
			}
		})
	}
}

func TestFindScenarioNilResults(t *testing.T) {
	if result := FindScenario(nil, "Any Scenario"); result != nil {
		t.Errorf("FindScenario() with nil results should return nil, got %v", result)
	}
}

func TestFindScenarioReturnsFirstMatchPointer(t *testing.T) {
	results := []forecast.Forecast{
		{Name: "Duplicate", Dates: []string{"2025-01"}},
		{Name: "Duplicate", Dates: []string{"2025-02"}},
	}

	found := FindScenario(results, "Duplicate")
	if found == nil {
		t.Fatalf("FindScenario() returned nil")
	}
	if &results[0] != found {
		t.Errorf("FindScenario() should return pointer to first matching element")
	}
}

func TestFindScenarioLargeSlice(t *testing.T) {
	results := make([]forecast.Forecast, 1000)
	for i := range results {
		results[i] = forecast.Forecast{Name: fmt.Sprintf("Scenario %d", i)}
	}

	found := FindScenario(results, "Scenario 500")
	if found == nil || found != &results[500] {
		t.Errorf("FindScenario() did not return element 500")
	}
}

func TestForecasts(t *testing.T) {
	results := Forecasts(t, sampleConfig)
	if len(results) != 2 {
		t.Fatalf("Forecasts() returned %d results, expected 2", len(results))
	}

	first := FindScenario(results, "first")
	if first == nil {
		t.Fatalf("scenario 'first' missing")
	}
	if len(first.Projection.Snapshots) != 25 {
		t.Errorf("expected 25 snapshots, got %d", len(first.Projection.Snapshots))
	}
	if first.Dates[0] != "2026-03" {
		t.Errorf("expected first date 2026-03, got %s", first.Dates[0])
	}

	second := FindScenario(results, "second")
	if second == nil || len(second.Projection.Snapshots) != 7 {
		t.Errorf("scenario 'second' should have 7 snapshots")
	}
	if FindScenario(results, "off") != nil {
		t.Errorf("inactive scenario should not be forecast")
	}
}

func TestFloat(t *testing.T) {
	a := Float(1.5)
	b := Float(1.5)
	if *a != 1.5 || a == b {
		t.Errorf("Float() should return distinct pointers to the value")
	}
}
