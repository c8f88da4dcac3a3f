package projection

// Summary condenses a projection into the figures shown next to the chart.
type Summary struct {
	HorizonMonths  int     `json:"horizonMonths"`
	BuyerNetWorth  float64 `json:"buyerNetWorth"`
	RenterNetWorth float64 `json:"renterNetWorth"`
	// Advantage is buyer minus renter net worth at the horizon.
	Advantage float64 `json:"advantage"`

	BreakEven      bool `json:"breakEven"`
	BreakEvenMonth int  `json:"breakEvenMonth,omitempty"`

	LastCashFlowDifferential float64 `json:"lastCashFlowDifferential"`
	SunkCosts                float64 `json:"sunkCosts"`
	TotalCarryingCost        float64 `json:"totalCarryingCost"`

	MonthlyPayment        float64 `json:"monthlyPayment"`
	TermMonths            int     `json:"termMonths"`
	TotalInterest         float64 `json:"totalInterest"`
	InterestWithinHorizon float64 `json:"interestWithinHorizon"`
	PaidOff               bool    `json:"paidOff"`
	PayoffMonth           int     `json:"payoffMonth,omitempty"`
}

// Summarize computes the summary of a projection.
func (p Projection) Summarize() Summary {
	final := p.Final()
	summary := Summary{
		HorizonMonths:            p.HorizonMonths,
		BuyerNetWorth:            final.BuyerNetWorth,
		RenterNetWorth:           final.RenterNetWorth,
		Advantage:                final.BuyerNetWorth - final.RenterNetWorth,
		LastCashFlowDifferential: final.CashFlowDifferential,
		SunkCosts:                p.Property.SunkCosts(),
		TotalCarryingCost:        final.CumulativeCarryingCost,
	}

	for _, snapshot := range p.Snapshots {
		if snapshot.Month == 0 {
			continue
		}
		if snapshot.BuyerNetWorth >= snapshot.RenterNetWorth {
			summary.BreakEven = true
			summary.BreakEvenMonth = snapshot.Month
			break
		}
	}

	if p.Loan == nil {
		return summary
	}

	summary.MonthlyPayment = p.Loan.MonthlyPayment
	summary.TermMonths = p.Loan.TermMonths

	totals := p.Loan.Totals()
	summary.TotalInterest = totals.TotalInterest.InexactFloat64()
	if totals.Rows <= p.HorizonMonths {
		summary.PaidOff = true
		summary.PayoffMonth = totals.Rows
	}

	for row := range p.Loan.Rows() {
		if row.Month > p.HorizonMonths {
			break
		}
		summary.InterestWithinHorizon += row.Interest.InexactFloat64()
	}
	return summary
}
