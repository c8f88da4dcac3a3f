package output

import (
	"errors"
	"fmt"

	"github.com/iwvelando/rent-or-buy/internal/forecast"
	"github.com/iwvelando/rent-or-buy/pkg/loans"
	charts "github.com/vicanso/go-charts/v2"
)

const (
	chartWidth  = 1000
	chartHeight = 500
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no data to chart")

// NetWorthChart renders the buyer and renter net-worth trajectories of every
// result as a PNG line chart.
func NetWorthChart(results []forecast.Forecast) ([]byte, error) {
	var (
		values [][]float64
		names  []string
		labels []string
	)
	for _, result := range results {
		snapshots := result.Projection.Snapshots
		if len(snapshots) == 0 {
			continue
		}
		buyer := make([]float64, len(snapshots))
		renter := make([]float64, len(snapshots))
		for i, snapshot := range snapshots {
			buyer[i] = snapshot.BuyerNetWorth
			renter[i] = snapshot.RenterNetWorth
		}
		values = append(values, buyer, renter)
		names = append(names, result.Name+" buy", result.Name+" rent")
		if len(result.Dates) > len(labels) {
			labels = result.Dates
		}
	}
	if len(values) == 0 {
		return nil, ErrNoChartData
	}

	// Shorter series are padded so every line shares the longest x-axis.
	for i := range values {
		for len(values[i]) < len(labels) {
			values[i] = append(values[i], charts.GetNullValue())
		}
	}

	return renderLine(values, "Net worth: buy vs. rent", labels, names)
}

// PaymentCurveChart renders the monthly payment for each whole-year term.
func PaymentCurveChart(points []loans.CurvePoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoChartData
	}
	payments := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, point := range points {
		payments[i] = point.MonthlyPayment
		labels[i] = fmt.Sprintf("%dy", point.TermYears)
	}
	return renderLine([][]float64{payments}, "Monthly payment by loan term", labels, []string{"payment"})
}

func renderLine(values [][]float64, title string, labels, names []string) ([]byte, error) {
	splitNum := len(labels) / 12
	if splitNum < 3 {
		splitNum = 3
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			DivideCount: 5,
		}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: names,
			Top:  charts.PositionTop,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}
