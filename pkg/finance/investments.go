// Package finance models the investment accounts the buyer and the renter
// hold alongside the property comparison.
package finance

import (
	"github.com/iwvelando/rent-or-buy/pkg/mathutil"
)

// Account is a single investment account compounding monthly.
type Account struct {
	Name             string
	AnnualReturnRate float64
	Value            float64
}

// AccountChange captures the computed deltas for a single account in a given month.
type AccountChange struct {
	Name         string
	Contribution float64
	Growth       float64
	NetChange    float64
}

// NewAccount creates an account holding the starting value.
func NewAccount(name string, annualReturnRate, startingValue float64) *Account {
	return &Account{Name: name, AnnualReturnRate: annualReturnRate, Value: startingValue}
}

// Advance deposits the contribution and then applies one month of growth.
func (a *Account) Advance(contribution float64) AccountChange {
	previousValue := a.Value

	a.Value += contribution
	growth := a.Value * mathutil.MonthlyRate(a.AnnualReturnRate)
	a.Value += growth

	return AccountChange{
		Name:         a.Name,
		Contribution: contribution,
		Growth:       growth,
		NetChange:    a.Value - previousValue,
	}
}

// Portfolio pairs a market account with an optional savings account. Monthly
// contributions always go to the market account.
type Portfolio struct {
	Market  *Account
	Savings *Account
}

// NewPortfolio splits the starting capital so that savingsShare of it sits in
// the savings account and the rest in the market account.
func NewPortfolio(capital, marketRate, savingsShare, savingsRate float64) Portfolio {
	savings := capital * savingsShare
	return Portfolio{
		Market:  NewAccount("market", marketRate, capital-savings),
		Savings: NewAccount("savings", savingsRate, savings),
	}
}

// Value returns the combined value of both accounts.
func (p Portfolio) Value() float64 {
	total := 0.0
	for _, account := range p.accounts() {
		total += account.Value
	}
	return total
}

// Advance processes one month: the contribution lands in the market account
// and every account grows. It returns the total change and per-account deltas.
func (p Portfolio) Advance(contribution float64) (float64, []AccountChange) {
	totalChange := 0.0
	var changes []AccountChange

	for _, account := range p.accounts() {
		deposit := 0.0
		if account == p.Market {
			deposit = contribution
		}
		change := account.Advance(deposit)
		totalChange += change.NetChange
		changes = append(changes, change)
	}
	return totalChange, changes
}

func (p Portfolio) accounts() []*Account {
	var accounts []*Account
	if p.Market != nil {
		accounts = append(accounts, p.Market)
	}
	if p.Savings != nil {
		accounts = append(accounts, p.Savings)
	}
	return accounts
}
