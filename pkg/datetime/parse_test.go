package datetime

import (
	"testing"
	"time"
)

func TestMonthLabels(t *testing.T) {
	labels, err := MonthLabels("2025-11", 4)
	if err != nil {
		t.Fatalf("MonthLabels() error = %v", err)
	}
	expected := []string{"2025-11", "2025-12", "2026-01", "2026-02"}
	if len(labels) != len(expected) {
		t.Fatalf("MonthLabels() returned %d labels, expected %d", len(labels), len(expected))
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("label %d = %s, expected %s", i, labels[i], expected[i])
		}
	}
}

func TestMonthLabelsErrors(t *testing.T) {
	if _, err := MonthLabels("not-a-date", 3); err == nil {
		t.Error("expected error for invalid start date")
	}
	if _, err := MonthLabels("2025-01", -1); err == nil {
		t.Error("expected error for negative count")
	}

	labels, err := MonthLabels("2025-01", 0)
	if err != nil || len(labels) != 0 {
		t.Errorf("MonthLabels() with zero count = %v, %v", labels, err)
	}
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	if got := CurrentMonth(now); got != "2026-10" {
		t.Errorf("CurrentMonth() = %s, expected 2026-10", got)
	}
}
