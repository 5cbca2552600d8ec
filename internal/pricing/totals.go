package pricing

import "math"

// TotalsInput is everything the period-totals state machine reads. PerVisit
// already includes trip and parking; MonthlyRecurring is the monthly figure
// after any amplifier.
type TotalsInput struct {
	Visits           Visits
	Install          bool
	InstallFee       float64
	PerVisit         float64
	MonthlyRecurring float64
	ContractMonths   int
}

// Totals are the multi-period amounts of a quote.
type Totals struct {
	FirstVisit  float64
	FirstPeriod float64
	Contract    float64
	TotalVisits float64
}

// PeriodTotals derives first-period and contract amounts. The state is the
// frequency class crossed with the install flag; there is nothing else. A
// calendar first period is rounded to cents before the contract builds on it.
func PeriodTotals(in TotalsInput) Totals {
	months := in.ContractMonths
	if months < 1 {
		months = 1
	}
	perVisit := Sanitize(in.PerVisit)
	fee := 0.0
	if in.Install {
		fee = Sanitize(in.InstallFee)
	}

	var t Totals
	t.FirstVisit = perVisit
	if in.Install {
		t.FirstVisit = fee
	}

	if in.Visits.Class == VisitBased {
		t.FirstPeriod = t.FirstVisit
		t.TotalVisits = visitCount(in.Visits, months)
		if in.Install {
			t.Contract = fee + (t.TotalVisits-1)*perVisit
		} else {
			t.Contract = t.TotalVisits * perVisit
		}
		return t
	}

	monthlyVisits := Sanitize(in.Visits.Monthly)
	recurring := Sanitize(in.MonthlyRecurring)
	t.TotalVisits = monthlyVisits * float64(months)
	if in.Install {
		remaining := monthlyVisits - 1
		if remaining < 0 {
			remaining = 0
		}
		t.FirstPeriod = RoundMoney(fee + remaining*perVisit)
		t.Contract = t.FirstPeriod + float64(months-1)*recurring
	} else {
		t.FirstPeriod = RoundMoney(monthlyVisits * perVisit)
		t.Contract = float64(months) * recurring
	}
	return t
}

// visitCount is the number of discrete visits over the contract. At least one
// visit always happens; a one-time service is exactly one.
func visitCount(v Visits, months int) float64 {
	if v.Frequency == OneTime {
		return 1
	}
	n := math.Round(float64(months) / 12 * Sanitize(v.PerYear))
	if n < 1 {
		return 1
	}
	return n
}

// PerVisitFromAnnual spreads an annual amount across visits, 0 when there are none.
func PerVisitFromAnnual(annual, visitsPerYear float64) float64 {
	if visitsPerYear <= 0 || !finite(visitsPerYear) {
		return 0
	}
	return Sanitize(annual) / visitsPerYear
}
