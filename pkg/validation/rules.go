package validation

import "math"

// Positive requires value > 0.
func Positive(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value <= 0 {
		return &InvalidParameterError{Field: field, Value: value, Reason: "must be positive"}
	}
	return nil
}

// NonNegative requires value >= 0.
func NonNegative(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value < 0 {
		return &InvalidParameterError{Field: field, Value: value, Reason: "must not be negative"}
	}
	return nil
}

// Fraction requires 0 <= value <= 1.
func Fraction(field string, value float64) error {
	if err := NonNegative(field, value); err != nil {
		return err
	}
	if value > 1 {
		return &InvalidParameterError{Field: field, Value: value, Reason: "must be a fraction between 0 and 1"}
	}
	return nil
}

// GrowthRate requires an annual rate above -100%, the point at which monthly
// compounding stops being meaningful.
func GrowthRate(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value <= -1 {
		return &InvalidParameterError{Field: field, Value: value, Reason: "must be greater than -1"}
	}
	return nil
}

// Finite rejects NaN and infinities.
func Finite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &InvalidParameterError{Field: field, Value: value, Reason: "must be a finite number"}
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
