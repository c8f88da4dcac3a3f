package projection

import (
	"github.com/iwvelando/rent-or-buy/pkg/validation"
)

// PropertyParameters describes the purchase and the ongoing cost of owning.
// All rates are annual fractions.
type PropertyParameters struct {
	PurchasePrice     float64 `json:"purchasePrice" yaml:"purchasePrice"`
	DownPayment       float64 `json:"downPayment" yaml:"downPayment"`
	RefurbishCost     float64 `json:"refurbishCost" yaml:"refurbishCost"`
	NebenkostRate     float64 `json:"nebenkostRate" yaml:"nebenkostRate"`
	MaintenanceRate   float64 `json:"maintenanceRate" yaml:"maintenanceRate"`
	PropertyTaxRate   float64 `json:"propertyTaxRate" yaml:"propertyTaxRate"`
	AnnualPropertyTax float64 `json:"annualPropertyTax" yaml:"annualPropertyTax"`
	AppreciationRate  float64 `json:"appreciationRate" yaml:"appreciationRate"`
}

// Validate checks the property parameters.
func (p PropertyParameters) Validate() error {
	if err := validation.First(
		validation.Positive("purchasePrice", p.PurchasePrice),
		validation.NonNegative("downPayment", p.DownPayment),
		validation.NonNegative("refurbishCost", p.RefurbishCost),
		validation.NonNegative("nebenkostRate", p.NebenkostRate),
		validation.NonNegative("maintenanceRate", p.MaintenanceRate),
		validation.NonNegative("propertyTaxRate", p.PropertyTaxRate),
		validation.NonNegative("annualPropertyTax", p.AnnualPropertyTax),
		validation.GrowthRate("appreciationRate", p.AppreciationRate),
	); err != nil {
		return err
	}
	if p.DownPayment > p.PurchasePrice {
		return &validation.InvalidParameterError{Field: "downPayment", Value: p.DownPayment,
			Reason: "must not exceed the purchase price"}
	}
	return nil
}

// LoanPrincipal is the amount financed.
func (p PropertyParameters) LoanPrincipal() float64 {
	return p.PurchasePrice - p.DownPayment
}

// CashPurchase reports whether the property is bought without a loan.
func (p PropertyParameters) CashPurchase() bool {
	return p.DownPayment == p.PurchasePrice
}

// SunkCosts are the one-time transaction and refurbishment costs the buyer
// never gets back.
func (p PropertyParameters) SunkCosts() float64 {
	return p.NebenkostRate*p.PurchasePrice + p.RefurbishCost
}

// UpfrontOutlay is the cash the buyer spends at month 0.
func (p PropertyParameters) UpfrontOutlay() float64 {
	return p.DownPayment + p.SunkCosts()
}

// RentParameters describes the rent paid by the renter.
type RentParameters struct {
	InitialMonthlyRent float64 `json:"initialMonthlyRent" yaml:"initialMonthlyRent"`
	RentInflationRate  float64 `json:"rentInflationRate" yaml:"rentInflationRate"`
}

// Validate checks the rent parameters.
func (r RentParameters) Validate() error {
	return validation.First(
		validation.Positive("initialMonthlyRent", r.InitialMonthlyRent),
		validation.GrowthRate("rentInflationRate", r.RentInflationRate),
	)
}

// InvestmentParameters describes where uninvested capital and monthly
// surpluses go. SavingsShare and SavingsReturnRate only apply to the custom
// strategy; the presets derive them from the loan rate.
type InvestmentParameters struct {
	AnnualReturnRate  float64  `json:"annualReturnRate" yaml:"annualReturnRate"`
	Strategy          Strategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	SavingsShare      float64  `json:"savingsShare,omitempty" yaml:"savingsShare,omitempty"`
	SavingsReturnRate float64  `json:"savingsReturnRate,omitempty" yaml:"savingsReturnRate,omitempty"`
}

// Validate checks the investment parameters.
func (i InvestmentParameters) Validate() error {
	if err := validation.GrowthRate("annualReturnRate", i.AnnualReturnRate); err != nil {
		return err
	}
	if _, err := ParseStrategy(string(i.Strategy)); err != nil {
		return err
	}
	if i.Strategy == StrategyCustom {
		return validation.First(
			validation.Fraction("savingsShare", i.SavingsShare),
			validation.GrowthRate("savingsReturnRate", i.SavingsReturnRate),
		)
	}
	return nil
}
