// Package validation provides the error taxonomy and the parameter checks
// shared by the amortization solver and the net-worth projector.
package validation

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters is matched by every validation failure below through
// errors.Is, so callers can map all of them to a single client error.
var ErrInvalidParameters = errors.New("invalid parameters")

// InvalidParameterError reports a field that is missing or out of range.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidParameters.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// NonAmortizingPaymentError reports a monthly payment that never retires the
// loan because it does not exceed the interest charged in the first month.
type NonAmortizingPaymentError struct {
	Payment  float64
	Interest float64
}

func (e *NonAmortizingPaymentError) Error() string {
	return fmt.Sprintf("monthly payment %.2f does not exceed the monthly interest charge %.2f, the loan never amortizes",
		e.Payment, e.Interest)
}

// Is reports whether target is ErrInvalidParameters.
func (e *NonAmortizingPaymentError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// InvalidHorizonError reports a projection horizon that is not a positive
// number of months.
type InvalidHorizonError struct {
	Horizon int
	Max     int
}

func (e *InvalidHorizonError) Error() string {
	if e.Max > 0 && e.Horizon > e.Max {
		return fmt.Sprintf("invalid horizon %d months: must not exceed %d", e.Horizon, e.Max)
	}
	return fmt.Sprintf("invalid horizon %d months: must be positive", e.Horizon)
}

// Is reports whether target is ErrInvalidParameters.
func (e *InvalidHorizonError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// Field returns the name of the offending field carried by err, if any.
func Field(err error) (string, bool) {
	var paramErr *InvalidParameterError
	if errors.As(err, &paramErr) {
		return paramErr.Field, true
	}
	var paymentErr *NonAmortizingPaymentError
	if errors.As(err, &paymentErr) {
		return "monthlyPayment", true
	}
	var horizonErr *InvalidHorizonError
	if errors.As(err, &horizonErr) {
		return "horizonMonths", true
	}
	return "", false
}
