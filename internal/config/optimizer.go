package config

import (
	"fmt"
	"strings"
)

// Fields the break-even optimizer can search over.
const (
	OptimizerFieldInitialMonthlyRent = "initialMonthlyRent"
	OptimizerFieldPurchasePrice      = "purchasePrice"
	OptimizerFieldDownPayment        = "downPayment"
	OptimizerFieldAppreciationRate   = "appreciationRate"
	OptimizerFieldAnnualReturnRate   = "annualReturnRate"
	OptimizerFieldRentInflationRate  = "rentInflationRate"
	OptimizerFieldInterestRate       = "interestRate"

	defaultToleranceAmount = 0.01
	defaultToleranceRate   = 0.00001
	defaultMaxIterations   = 60
)

var optimizerFields = []string{
	OptimizerFieldInitialMonthlyRent,
	OptimizerFieldPurchasePrice,
	OptimizerFieldDownPayment,
	OptimizerFieldAppreciationRate,
	OptimizerFieldAnnualReturnRate,
	OptimizerFieldRentInflationRate,
	OptimizerFieldInterestRate,
}

// OptimizerConfig defines a break-even search over a single input.
type OptimizerConfig struct {
	Field         string   `yaml:"field,omitempty" mapstructure:"field"`
	Min           *float64 `yaml:"min,omitempty" mapstructure:"min"`
	Max           *float64 `yaml:"max,omitempty" mapstructure:"max"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalOptimizerField returns the canonical identifier for an optimizer field.
func CanonicalOptimizerField(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OptimizerFieldInitialMonthlyRent
	}
	normalized := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(trimmed))
	switch normalized {
	case "rent":
		return OptimizerFieldInitialMonthlyRent
	case "price":
		return OptimizerFieldPurchasePrice
	}
	for _, field := range optimizerFields {
		if strings.ToLower(field) == normalized {
			return field
		}
	}
	return trimmed
}

// IsRateField reports whether the field is an annual rate rather than an amount.
func IsRateField(field string) bool {
	switch CanonicalOptimizerField(field) {
	case OptimizerFieldAppreciationRate, OptimizerFieldAnnualReturnRate,
		OptimizerFieldRentInflationRate, OptimizerFieldInterestRate:
		return true
	}
	return false
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Field = CanonicalOptimizerField(o.Field)

	if o.Tolerance <= 0 {
		if IsRateField(o.Field) {
			o.Tolerance = defaultToleranceRate
		} else {
			o.Tolerance = defaultToleranceAmount
		}
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	supported := false
	for _, field := range optimizerFields {
		if o.Field == field {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("optimizer field %q is not supported", o.Field)
	}

	if o.Min == nil {
		return fmt.Errorf("optimizer requires a minimum bound")
	}
	if o.Max == nil {
		return fmt.Errorf("optimizer requires a maximum bound")
	}
	if *o.Min >= *o.Max {
		return fmt.Errorf("optimizer minimum %g must be less than maximum %g", *o.Min, *o.Max)
	}
	return nil
}

// Apply returns a copy of params with the optimizer's field set to value.
func (o *OptimizerConfig) Apply(params Parameters, value float64) Parameters {
	switch CanonicalOptimizerField(o.Field) {
	case OptimizerFieldInitialMonthlyRent:
		params.Rent.InitialMonthlyRent = value
	case OptimizerFieldPurchasePrice:
		params.Property.PurchasePrice = value
	case OptimizerFieldDownPayment:
		params.Property.DownPayment = value
	case OptimizerFieldAppreciationRate:
		params.Property.AppreciationRate = value
	case OptimizerFieldAnnualReturnRate:
		params.Investment.AnnualReturnRate = value
	case OptimizerFieldRentInflationRate:
		params.Rent.RentInflationRate = value
	case OptimizerFieldInterestRate:
		params.Loan.AnnualInterestRate = value
	}
	return params
}

// Current returns the value of the optimizer's field in params.
func (o *OptimizerConfig) Current(params Parameters) float64 {
	switch CanonicalOptimizerField(o.Field) {
	case OptimizerFieldInitialMonthlyRent:
		return params.Rent.InitialMonthlyRent
	case OptimizerFieldPurchasePrice:
		return params.Property.PurchasePrice
	case OptimizerFieldDownPayment:
		return params.Property.DownPayment
	case OptimizerFieldAppreciationRate:
		return params.Property.AppreciationRate
	case OptimizerFieldAnnualReturnRate:
		return params.Investment.AnnualReturnRate
	case OptimizerFieldRentInflationRate:
		return params.Rent.RentInflationRate
	case OptimizerFieldInterestRate:
		return params.Loan.AnnualInterestRate
	}
	return 0
}
