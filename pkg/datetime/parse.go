// Package datetime provides the month arithmetic used to label projection
// months with calendar dates.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// MonthLabels returns count consecutive month labels beginning at start, so
// that label i names projection month i.
func MonthLabels(start string, count int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("label count cannot be negative: %d", count)
	}
	startT, err := time.Parse(DateTimeLayout, start)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date %s with layout %s: %w", start, DateTimeLayout, err)
	}

	labels := make([]string, count)
	for i := range labels {
		labels[i] = startT.AddDate(0, i, 0).Format(DateTimeLayout)
	}
	return labels, nil
}

// CurrentMonth formats the month containing now.
func CurrentMonth(now time.Time) string {
	return now.Format(DateTimeLayout)
}
