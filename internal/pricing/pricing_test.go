package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestApplyMinimum_FixtureExample(t *testing.T) {
	got := ApplyMinimum(5, 25, 175)

	nearlyEqual(t, "raw", got.Raw, 125)
	nearlyEqual(t, "applied", got.Applied, 175)
	if !got.MinimumApplied {
		t.Fatalf("expected minimum to be applied")
	}
}

func TestApplyMinimum_FloorProperty(t *testing.T) {
	quantities := []float64{0, 0.5, 1, 3, 7, 10, 40}
	rates := []float64{0, 1, 12.5, 25}
	minimums := []float64{0, 25, 100, 175}

	for _, q := range quantities {
		for _, r := range rates {
			for _, m := range minimums {
				got := ApplyMinimum(q, r, m)
				raw := q * r
				if q <= 0 {
					if got.Applied != 0 || got.MinimumApplied {
						t.Fatalf("q=%v r=%v m=%v: expected zero result, got %+v", q, r, m, got)
					}
					continue
				}
				nearlyEqual(t, "applied", got.Applied, math.Max(raw, m))
				wantFlag := raw > 0 && raw <= m
				if got.MinimumApplied != wantFlag {
					t.Fatalf("q=%v r=%v m=%v: MinimumApplied=%v, want %v", q, r, m, got.MinimumApplied, wantFlag)
				}
			}
		}
	}
}

func TestApplyMinimum_InvalidQuantityCoercesToZero(t *testing.T) {
	for _, q := range []float64{-3, math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := ApplyMinimum(q, 25, 175)
		if got != (MinimumResult{}) {
			t.Fatalf("ApplyMinimum(%v) = %+v, want zero", q, got)
		}
	}
}

func TestBlockPrice_QuantizedExample(t *testing.T) {
	b := Block{Unit: 500, FirstRate: 250, AdditionalRate: 125}

	nearlyEqual(t, "block price", BlockPrice(1300, b, false), 500)
	nearlyEqual(t, "exact price", BlockPrice(1300, b, true), 450)
}

func TestBlockPrice_WithinFirstBlock(t *testing.T) {
	b := Block{Unit: 500, FirstRate: 250, AdditionalRate: 125}

	nearlyEqual(t, "zero area", BlockPrice(0, b, false), 0)
	nearlyEqual(t, "small area", BlockPrice(10, b, false), 250)
	nearlyEqual(t, "exactly one block", BlockPrice(500, b, true), 250)
	nearlyEqual(t, "one over", BlockPrice(501, b, false), 375)
}

func TestBlockPrice_Monotonic(t *testing.T) {
	b := Block{Unit: 500, FirstRate: 250, AdditionalRate: 125}

	prevBlock, prevExact := 0.0, 0.0
	for area := 0.0; area <= 5000; area += 37 {
		block := BlockPrice(area, b, false)
		exact := BlockPrice(area, b, true)
		if block < prevBlock {
			t.Fatalf("block price decreased at area=%v: %v < %v", area, block, prevBlock)
		}
		if exact < prevExact {
			t.Fatalf("exact price decreased at area=%v: %v < %v", area, exact, prevExact)
		}
		if block < exact {
			t.Fatalf("block price %v undercharges exact price %v at area=%v", block, exact, area)
		}
		prevBlock, prevExact = block, exact
	}
}

func TestInstallationFee(t *testing.T) {
	m := InstallMultipliers{Elevated: 3, Standard: 1}

	nearlyEqual(t, "dirty", InstallationFee(300, true, m, true), 900)
	nearlyEqual(t, "clean", InstallationFee(300, false, m, true), 300)
	nearlyEqual(t, "not requested", InstallationFee(300, true, m, false), 0)
	nearlyEqual(t, "configured multiplier", InstallationFee(300, true, InstallMultipliers{Elevated: 2.5, Standard: 1}, true), 750)
}

func TestAmplify(t *testing.T) {
	nearlyEqual(t, "inactive", Amplify(100, false, 15), 100)
	nearlyEqual(t, "active", Amplify(100, true, 15), 185)
	nearlyEqual(t, "floored", Amplify(5, true, 15), 0)
}

func TestTierMultipliers(t *testing.T) {
	m := TierMultipliers{Standard: 1, Premium: 1.15}

	nearlyEqual(t, "standard", m.Apply(Standard, 200), 200)
	nearlyEqual(t, "premium", m.Apply(Premium, 200), 230)
	nearlyEqual(t, "unknown tier", m.Apply(Tier("gold"), 200), 200)
	nearlyEqual(t, "zero factor", TierMultipliers{}.Apply(Premium, 200), 200)
}

func TestResolveFrequency_Order(t *testing.T) {
	direct := 4.0
	cycle := 3.0
	meta := map[Frequency]FrequencyMeta{
		Weekly:    {MonthlyMultiplier: &direct, CycleMonths: &cycle},
		Quarterly: {CycleMonths: &cycle},
	}

	weekly := ResolveFrequency(Weekly, meta, nil)
	nearlyEqual(t, "weekly monthly", weekly.Monthly, 4)
	nearlyEqual(t, "weekly per year", weekly.PerYear, 48)

	quarterly := ResolveFrequency(Quarterly, meta, nil)
	nearlyEqual(t, "quarterly monthly", quarterly.Monthly, 1.0/3.0)
	nearlyEqual(t, "quarterly per year", quarterly.PerYear, 4)
	if quarterly.Class != VisitBased {
		t.Fatalf("quarterly class = %s, want %s", quarterly.Class, VisitBased)
	}

	biweekly := ResolveFrequency(Biweekly, meta, map[Frequency]float64{Biweekly: 2})
	nearlyEqual(t, "service fallback", biweekly.Monthly, 2)

	monthly := ResolveFrequency(Frequency("fortnightly"), nil, nil)
	if monthly.Frequency != Monthly {
		t.Fatalf("unknown frequency resolved to %s, want monthly", monthly.Frequency)
	}
	nearlyEqual(t, "unknown monthly", monthly.Monthly, 1)
}

func TestResolveFrequency_OneTime(t *testing.T) {
	v := ResolveFrequency(OneTime, nil, nil)
	nearlyEqual(t, "monthly", v.Monthly, 0)
	nearlyEqual(t, "per year", v.PerYear, 1)
	if v.Class != VisitBased {
		t.Fatalf("one_time class = %s", v.Class)
	}
}

func TestClampFrequency(t *testing.T) {
	allowed := []Frequency{Weekly, Monthly}

	if got := ClampFrequency(Weekly, allowed, Monthly); got != Weekly {
		t.Fatalf("got %s, want weekly", got)
	}
	if got := ClampFrequency(Quarterly, allowed, Monthly); got != Monthly {
		t.Fatalf("got %s, want monthly", got)
	}
	if got := ClampFrequency(Frequency(""), nil, Monthly); got != Monthly {
		t.Fatalf("got %s, want monthly", got)
	}
}

func TestPeriodTotals_WeeklyWithInstall(t *testing.T) {
	v := Visits{Frequency: Weekly, Class: CalendarBased, Monthly: 4.33, PerYear: 51.96}

	got := PeriodTotals(TotalsInput{
		Visits:           v,
		Install:          true,
		InstallFee:       900,
		PerVisit:         50,
		MonthlyRecurring: 4.33 * 50,
		ContractMonths:   12,
	})

	nearlyEqual(t, "first visit", got.FirstVisit, 900)
	if math.Abs(got.FirstPeriod-1066.5) > 1e-6 {
		t.Fatalf("first period = %v, want 1066.5", got.FirstPeriod)
	}
	if math.Abs(got.Contract-3447.5) > 1e-6 {
		t.Fatalf("contract = %v, want 3447.5", got.Contract)
	}
}

func TestPeriodTotals_CalendarContractConsistency(t *testing.T) {
	v := Visits{Frequency: Biweekly, Class: CalendarBased, Monthly: 2.165, PerYear: 25.98}
	base := TotalsInput{Visits: v, Install: true, InstallFee: 420, PerVisit: 80, MonthlyRecurring: 173.2}

	base.ContractMonths = 1
	first := PeriodTotals(base)
	nearlyEqual(t, "contract(1)", first.Contract, first.FirstPeriod)

	for n := 1; n <= 36; n++ {
		base.ContractMonths = n
		got := PeriodTotals(base)
		want := got.FirstPeriod + float64(n-1)*base.MonthlyRecurring
		if math.Abs(got.Contract-want) > 1e-6 {
			t.Fatalf("contract(%d) = %v, want %v", n, got.Contract, want)
		}
	}
}

func TestPeriodTotals_CalendarRemainderClampsToZero(t *testing.T) {
	v := Visits{Frequency: Monthly, Class: CalendarBased, Monthly: 1, PerYear: 12}

	got := PeriodTotals(TotalsInput{Visits: v, Install: true, InstallFee: 300, PerVisit: 100, MonthlyRecurring: 100, ContractMonths: 12})
	nearlyEqual(t, "first period", got.FirstPeriod, 300)
	nearlyEqual(t, "contract", got.Contract, 300+11*100)

	half := Visits{Frequency: Monthly, Class: CalendarBased, Monthly: 0.5, PerYear: 6}
	got = PeriodTotals(TotalsInput{Visits: half, Install: true, InstallFee: 300, PerVisit: 100, MonthlyRecurring: 50, ContractMonths: 2})
	nearlyEqual(t, "half first period", got.FirstPeriod, 300)
}

func TestPeriodTotals_CalendarNoInstall(t *testing.T) {
	v := Visits{Frequency: Weekly, Class: CalendarBased, Monthly: 4.33, PerYear: 51.96}

	got := PeriodTotals(TotalsInput{Visits: v, PerVisit: 50, MonthlyRecurring: 216.5, InstallFee: 900, ContractMonths: 6})
	nearlyEqual(t, "first visit", got.FirstVisit, 50)
	if math.Abs(got.FirstPeriod-216.5) > 1e-6 {
		t.Fatalf("first period = %v", got.FirstPeriod)
	}
	if math.Abs(got.Contract-6*216.5) > 1e-6 {
		t.Fatalf("contract = %v", got.Contract)
	}
}

func TestPeriodTotals_VisitBased(t *testing.T) {
	quarterly := ResolveFrequency(Quarterly, nil, nil)

	withInstall := PeriodTotals(TotalsInput{Visits: quarterly, Install: true, InstallFee: 750, PerVisit: 250, ContractMonths: 12})
	nearlyEqual(t, "visits", withInstall.TotalVisits, 4)
	nearlyEqual(t, "first period", withInstall.FirstPeriod, 750)
	nearlyEqual(t, "contract", withInstall.Contract, 750+3*250)

	noInstall := PeriodTotals(TotalsInput{Visits: quarterly, PerVisit: 250, ContractMonths: 24})
	nearlyEqual(t, "first period no install", noInstall.FirstPeriod, 250)
	nearlyEqual(t, "contract no install", noInstall.Contract, 8*250)

	annual := ResolveFrequency(Annual, nil, nil)
	short := PeriodTotals(TotalsInput{Visits: annual, PerVisit: 400, ContractMonths: 2})
	nearlyEqual(t, "short contract visits", short.TotalVisits, 1)
}

func TestPeriodTotals_OneTimeIgnoresContractLength(t *testing.T) {
	once := ResolveFrequency(OneTime, nil, nil)

	for _, install := range []bool{false, true} {
		for months := 1; months <= 36; months++ {
			got := PeriodTotals(TotalsInput{Visits: once, Install: install, InstallFee: 600, PerVisit: 200, ContractMonths: months})
			nearlyEqual(t, "one-shot contract", got.Contract, got.FirstPeriod)
		}
	}
}

func TestPerVisitFromAnnual_GuardsZero(t *testing.T) {
	nearlyEqual(t, "zero visits", PerVisitFromAnnual(1200, 0), 0)
	nearlyEqual(t, "nan visits", PerVisitFromAnnual(1200, math.NaN()), 0)
	nearlyEqual(t, "twelve visits", PerVisitFromAnnual(1200, 12), 100)
}

func TestRoundMoney(t *testing.T) {
	nearlyEqual(t, "half up", RoundMoney(216.505), 216.51)
	nearlyEqual(t, "float noise", RoundMoney(4.33*50), 216.5)
	nearlyEqual(t, "nan", RoundMoney(math.NaN()), 0)
	if got := Money(1066.5); got != "1066.50" {
		t.Fatalf("Money = %q", got)
	}
}
