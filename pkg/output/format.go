// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/rent-or-buy/internal/forecast"
	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options controls the human-readable output.
type Options struct {
	CurrencySymbol string
	// Schedule appends the full amortization schedule of every scenario.
	Schedule bool
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []forecast.Forecast, opts Options) {
	writePretty(os.Stdout, results, opts)
}

func writePretty(w io.Writer, results []forecast.Forecast, opts Options) {
	p := message.NewPrinter(language.English)
	symbol := opts.CurrencySymbol
	if symbol == "" {
		symbol = format.DefaultCurrencySymbol
	}
	money := func(amount float64) string { return format.Currency(amount, symbol) }

	for i, result := range results {
		summary := result.Summary
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)

		if result.Projection.Loan != nil {
			loan := result.Projection.Loan
			fmt.Fprintf(w, "Monthly payment: %s over %d months (initial repayment %s per year)\n",
				money(loan.Installment().InexactFloat64()), loan.TermMonths, format.Percent(loan.InitialRepaymentRate()))
			fmt.Fprintf(w, "Total interest: %s\n", money(summary.TotalInterest))
		} else {
			fmt.Fprintf(w, "Cash purchase, no loan\n")
		}
		fmt.Fprintf(w, "Sunk upfront costs: %s\n", money(summary.SunkCosts))

		fmt.Fprintf(w, "Date    | Buyer Net Worth | Renter Net Worth | Property Value | Remaining Balance\n")
		fmt.Fprintf(w, "____    | _______________ | ________________ | ______________ | _________________\n")
		last := len(result.Projection.Snapshots) - 1
		for j, snapshot := range result.Projection.Snapshots {
			if j%constants.MonthsPerYear != 0 && j != last {
				continue
			}
			_, _ = p.Fprintf(w, "%s | %s%.2f | %s%.2f | %s%.2f | %s%.2f\n",
				dateFor(result, j),
				symbol, snapshot.BuyerNetWorth,
				symbol, snapshot.RenterNetWorth,
				symbol, snapshot.PropertyValue,
				symbol, snapshot.RemainingBalance,
			)
		}

		if summary.BreakEven {
			fmt.Fprintf(w, "Break-even: %s (month %d)\n", dateFor(result, summary.BreakEvenMonth), summary.BreakEvenMonth)
		} else {
			fmt.Fprintf(w, "Break-even: not within %d months\n", summary.HorizonMonths)
		}
		fmt.Fprintf(w, "Final net worth: buyer %s, renter %s, buying advantage %s\n",
			money(summary.BuyerNetWorth), money(summary.RenterNetWorth), money(summary.Advantage))
		fmt.Fprintf(w, "Last monthly cash-flow differential: %s\n", money(summary.LastCashFlowDifferential))
		if summary.PaidOff {
			fmt.Fprintf(w, "Loan paid off: %s (month %d)\n", dateFor(result, summary.PayoffMonth), summary.PayoffMonth)
		}

		if len(result.Strategies) > 0 {
			fmt.Fprintf(w, "Strategy comparison:\n")
			for _, strategy := range result.Strategies {
				fmt.Fprintf(w, "  %-12s renter %s, buying advantage %s\n",
					strategy.Strategy, money(strategy.Summary.RenterNetWorth), money(strategy.Summary.Advantage))
			}
		}

		if len(result.Optimizations) > 0 {
			fmt.Fprintf(w, "Break-even search:\n")
			for _, opt := range result.Optimizations {
				status := "converged"
				if !opt.Converged {
					status = "not converged"
				}
				fmt.Fprintf(w, "  %s: %s -> %s (%s after %d iterations, advantage %s)\n",
					opt.Field, opt.OriginalDisplay, opt.ValueDisplay, status, opt.Iterations, money(opt.Advantage))
				for _, note := range opt.Notes {
					fmt.Fprintf(w, "    note: %s\n", note)
				}
			}
		}

		if opts.Schedule && len(result.Schedule) > 0 {
			fmt.Fprintf(w, "Amortization schedule:\n")
			fmt.Fprintf(w, "Month | Payment | Interest | Principal | Remaining Balance\n")
			for _, row := range result.Schedule {
				fmt.Fprintf(w, "%d | %s | %s | %s | %s\n", row.Month,
					money(row.Payment.InexactFloat64()), money(row.Interest.InexactFloat64()),
					money(row.Principal.InexactFloat64()), money(row.RemainingBalance.InexactFloat64()))
			}
		}

		if i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []forecast.Forecast) {
	fmt.Print(CsvString(results))
}

// CsvString returns the comma-separated value rendering, one row per month
// with the buyer and renter columns of every scenario side by side.
func CsvString(results []forecast.Forecast) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`"date","month"`)
	for _, result := range results {
		fmt.Fprintf(&b, `,"buyer net worth (%s)","renter net worth (%s)","property value (%s)","remaining balance (%s)"`,
			result.Name, result.Name, result.Name, result.Name)
	}
	b.WriteString("\n")

	// All results may have different horizons; rows run to the longest.
	rows := 0
	longest := 0
	for i, result := range results {
		if n := len(result.Projection.Snapshots); n > rows {
			rows = n
			longest = i
		}
	}

	for month := 0; month < rows; month++ {
		fmt.Fprintf(&b, `"%s","%d"`, dateFor(results[longest], month), month)
		for _, result := range results {
			if month >= len(result.Projection.Snapshots) {
				b.WriteString(`,"","","",""`)
				continue
			}
			s := result.Projection.Snapshots[month]
			fmt.Fprintf(&b, `,"%.2f","%.2f","%.2f","%.2f"`, s.BuyerNetWorth, s.RenterNetWorth, s.PropertyValue, s.RemainingBalance)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// JSONFormat outputs the complete results as indented JSON.
func JSONFormat(results []forecast.Forecast) error {
	return WriteJSON(os.Stdout, results)
}

// WriteJSON writes the complete results as indented JSON.
func WriteJSON(w io.Writer, results []forecast.Forecast) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func dateFor(result forecast.Forecast, month int) string {
	if month >= 0 && month < len(result.Dates) {
		return result.Dates[month]
	}
	return fmt.Sprintf("month %d", month)
}
