package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Nearly two cents", 0.019, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{"Below range", -0.01, 0},
		{"Inside range", 0.005, 0.005},
		{"Above range", 0.03, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Clamp(tt.val, 0, 0.01); result != tt.expected {
				t.Errorf("Clamp(%v) = %v, expected %v", tt.val, result, tt.expected)
			}
		})
	}
}

func TestMonthlyRate(t *testing.T) {
	if got := MonthlyRate(0.06); math.Abs(got-0.005) > 1e-12 {
		t.Errorf("MonthlyRate(0.06) = %v, expected 0.005", got)
	}
	if got := MonthlyRate(0); got != 0 {
		t.Errorf("MonthlyRate(0) = %v, expected 0", got)
	}
}

func TestToPercent(t *testing.T) {
	if got := ToPercent(0.035); !WithinTolerance(got, 3.5, 1e-9) {
		t.Errorf("ToPercent(0.035) = %v, expected 3.5", got)
	}
}
