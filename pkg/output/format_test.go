package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/rent-or-buy/internal/forecast"
	"github.com/iwvelando/rent-or-buy/pkg/optimization"
	"github.com/iwvelando/rent-or-buy/pkg/testutil"
)

const outputConfig = `
startDate: "2026-01"
common:
  horizonYears: 2
  property:
    purchasePrice: 400000
    downPayment: 80000
    refurbishCost: 10000
    nebenkostRate: 0.05
    maintenanceRate: 0.01
    appreciationRate: 0.02
  loan:
    interestRate: 0.04
    termYears: 30
  rent:
    initialMonthlyRent: 1500
    rentInflationRate: 0.02
  investment:
    annualReturnRate: 0.05
scenarios:
  - name: financed
    active: true
    compareStrategies: true
  - name: cash
    active: true
    horizonMonths: 6
    property:
      downPayment: 400000
`

func sampleResults(t *testing.T) []forecast.Forecast {
	t.Helper()
	return testutil.Forecasts(t, outputConfig)
}

func TestPrettyFormat(t *testing.T) {
	results := sampleResults(t)
	results[0].Optimizations = []optimization.Summary{{
		Field:           "initialMonthlyRent",
		OriginalDisplay: "€1,500.00",
		ValueDisplay:    "€2,100.00",
		Iterations:      18,
		Converged:       true,
	}}

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	PrettyFormat(results, Options{CurrencySymbol: "€"})

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	output := buf.String()

	expectedStrings := []string{
		"--- Results for scenario financed ---",
		"--- Results for scenario cash ---",
		"Date    | Buyer Net Worth | Renter Net Worth | Property Value | Remaining Balance",
		"2026-01 |",
		"2027-01 |",
		"2028-01 |",
		"Monthly payment: €1,527.73 over 360 months",
		"Cash purchase, no loan",
		"Strategy comparison:",
		"aggressive",
		"conservative",
		"Break-even search:",
		"initialMonthlyRent: €1,500.00 -> €2,100.00 (converged after 18 iterations",
		"Final net worth: buyer",
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Expected output to contain '%s', but it didn't.\nOutput:\n%s", expected, output)
		}
	}

	// The schedule is only printed on request.
	if strings.Contains(output, "Amortization schedule:") {
		t.Errorf("schedule should not be printed without the Schedule option")
	}
}

func TestPrettyFormatYearlyRows(t *testing.T) {
	results := sampleResults(t)[:1]
	var buf bytes.Buffer
	writePretty(&buf, results, Options{})

	// Months 0, 12 and 24 for a 24-month horizon.
	rows := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if len(line) > 8 && line[4] == '-' && strings.HasPrefix(line[7:], " | ") {
			rows++
		}
	}
	if rows != 3 {
		t.Errorf("expected 3 table rows, got %d\n%s", rows, buf.String())
	}

	// Default symbol and thousands separators.
	if !strings.Contains(buf.String(), "€50,000.00") {
		t.Errorf("expected the month 0 buyer net worth €50,000.00 in output:\n%s", buf.String())
	}
}

func TestPrettyFormatSchedule(t *testing.T) {
	results := sampleResults(t)
	var buf bytes.Buffer
	writePretty(&buf, results, Options{CurrencySymbol: "$", Schedule: true})
	output := buf.String()

	if strings.Count(output, "Amortization schedule:") != 1 {
		t.Errorf("expected exactly one schedule (the cash scenario has none)")
	}
	if !strings.Contains(output, "1 | $1,527.73 | $1,066.67 | $461.06 | $319,538.94") {
		t.Errorf("expected first schedule row in output:\n%s", output)
	}
	if !strings.Contains(output, "360 | ") {
		t.Errorf("expected final schedule row in output")
	}
}

func TestPrettyFormatNoBreakEven(t *testing.T) {
	results := sampleResults(t)
	results[1].Summary.BreakEven = false
	var buf bytes.Buffer
	writePretty(&buf, results[1:], Options{})
	if !strings.Contains(buf.String(), "Break-even: not within 6 months") {
		t.Errorf("expected break-even miss in output:\n%s", buf.String())
	}
}

func TestCsvString(t *testing.T) {
	results := sampleResults(t)
	csv := CsvString(results)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	// Header plus months 0..24 of the longer scenario.
	if len(lines) != 26 {
		t.Fatalf("expected 26 lines, got %d", len(lines))
	}
	header := lines[0]
	for _, expected := range []string{
		`"date","month"`,
		`"buyer net worth (financed)"`,
		`"renter net worth (cash)"`,
		`"remaining balance (cash)"`,
	} {
		if !strings.Contains(header, expected) {
			t.Errorf("header missing %s: %s", expected, header)
		}
	}

	if !strings.HasPrefix(lines[1], `"2026-01","0","50000.00","110000.00"`) {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	// The cash scenario ends after month 6.
	if !strings.HasSuffix(lines[8], `,"","","",""`) {
		t.Errorf("expected empty cells after the shorter horizon: %s", lines[8])
	}
	if strings.HasSuffix(lines[7], `,"","","",""`) {
		t.Errorf("month 6 should still have values: %s", lines[7])
	}
}

func TestCsvStringEmpty(t *testing.T) {
	if got := CsvString(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestCsvStringMatchesCsvFormat(t *testing.T) {
	results := sampleResults(t)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	CsvFormat(results)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}

	if buf.String() != CsvString(results) {
		t.Errorf("CsvFormat output does not match CsvString")
	}
}

func TestWriteJSON(t *testing.T) {
	results := sampleResults(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, results); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 results, got %d", len(decoded))
	}
	if decoded[0]["name"] != "financed" {
		t.Errorf("expected first name financed, got %v", decoded[0]["name"])
	}
	for _, key := range []string{"dates", "projection", "summary", "schedule", "strategies"} {
		if _, ok := decoded[0][key]; !ok {
			t.Errorf("expected key %s in financed result", key)
		}
	}
	if _, ok := decoded[1]["schedule"]; ok {
		t.Errorf("cash result should omit the schedule")
	}
}
