// Package services wires the pricing primitives into one calculator per
// service line. Every calculator has the same shape: a charge function builds
// the per-visit service charge from the service's line items, and Compute turns
// that into a full multi-period quote.
package services

import (
	"github.com/Simplici0/sanquote/internal/pricing"
)

// ID identifies a service line.
type ID string

// AnnualRule selects how a service reports its annual total.
type AnnualRule int

const (
	// AnnualFromMonthly is monthlyTotal*12 plus the install fee.
	AnnualFromMonthly AnnualRule = iota
	// AnnualFromContract reports the contract total.
	AnnualFromContract
)

// charge is the pre-tier per-visit service charge of a service.
type charge struct {
	lines       []LineItem
	installBase float64
}

func (c *charge) add(li LineItem) {
	c.lines = append(c.lines, li)
}

func (c charge) service() float64 {
	total := 0.0
	for _, li := range c.lines {
		total += li.Applied
	}
	return total
}

// Definition is one service calculator.
type Definition struct {
	ID    ID
	Name  string
	Items []string

	annual   AnnualRule
	amplify  bool
	visits   map[pricing.Frequency]float64 // used when the config has no frequency metadata
	defaults func() pricing.Config
	price    func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge
}

// Defaults returns a fresh copy of the compiled-in config.
func (d *Definition) Defaults() pricing.Config {
	return d.defaults()
}

// VisitTable returns a copy of the service's default monthly visit counts.
func (d *Definition) VisitTable() map[pricing.Frequency]float64 {
	out := make(map[pricing.Frequency]float64, len(d.visits))
	for f, v := range d.visits {
		out[f] = v
	}
	return out
}

// Annual reports the annual total rule of the service.
func (d *Definition) Annual() AnnualRule {
	return d.annual
}

// Compute prices in against cfg. It is pure: the same inputs and config always
// produce the same outputs.
func (d *Definition) Compute(in Inputs, cfg pricing.Config) Outputs {
	freq := cfg.Frequency(in.Frequency)
	visits := pricing.ResolveFrequency(freq, cfg.Frequencies, d.visits)
	months := cfg.Contract.Clamp(in.ContractMonths)
	region, fees := cfg.Region(in.Region)
	tier := pricing.ClampTier(in.Tier)

	c := d.price(in, cfg, freq)

	service := pricing.RoundMoney(cfg.Tiers.Apply(tier, c.service()))
	passThrough := 0.0
	if in.TripCharge {
		passThrough += pricing.Sanitize(fees.TripCharge)
	}
	if in.Parking {
		passThrough += pricing.Sanitize(fees.Parking)
	}
	passThrough = pricing.RoundMoney(passThrough)
	perVisit := service + passThrough

	monthlyBase := service * visits.Monthly
	if d.amplify && freq == pricing.TwiceMonthly {
		single := service
		if !in.Bundle {
			single = monthlyBase
		}
		monthlyBase = pricing.Amplify(single, in.Bundle, cfg.Fee("bundleDiscount"))
	}
	monthlyBase = pricing.RoundMoney(monthlyBase)
	monthlyTrip := pricing.RoundMoney(passThrough * visits.Monthly)
	monthlyTotal := monthlyBase + monthlyTrip

	// Totals are derived from cent amounts so the exposed figures add up.
	installFee := pricing.RoundMoney(cfg.Tiers.Apply(tier, pricing.InstallationFee(c.installBase, in.Dirty, cfg.Install, in.Install)))

	totals := pricing.PeriodTotals(pricing.TotalsInput{
		Visits:           visits,
		Install:          in.Install,
		InstallFee:       installFee,
		PerVisit:         perVisit,
		MonthlyRecurring: monthlyTotal,
		ContractMonths:   months,
	})

	annual := totals.Contract
	if d.annual == AnnualFromMonthly {
		annual = monthlyTotal*12 + installFee
	}

	out := Outputs{
		Service:        d.ID,
		Frequency:      freq,
		Class:          visits.Class,
		Region:         region,
		Tier:           tier,
		ContractMonths: months,

		PerVisit:       pricing.RoundMoney(perVisit),
		FirstVisit:     pricing.RoundMoney(totals.FirstVisit),
		MonthlyBase:    pricing.RoundMoney(monthlyBase),
		MonthlyTrip:    pricing.RoundMoney(monthlyTrip),
		MonthlyTotal:   pricing.RoundMoney(monthlyTotal),
		InstallFee:     pricing.RoundMoney(installFee),
		FirstPeriod:    pricing.RoundMoney(totals.FirstPeriod),
		ContractTotal:  pricing.RoundMoney(totals.Contract),
		AnnualTotal:    pricing.RoundMoney(annual),
		VisitsPerYear:  visits.PerYear,
		VisitsPerMonth: visits.Monthly,
		TotalVisits:    totals.TotalVisits,

		Lines: c.lines,
	}
	for _, li := range c.lines {
		if li.MinimumApplied {
			out.MinimumApplied = true
		}
	}
	return out
}

// priced prices a quantity against a rate and its minimum.
func priced(name string, quantity float64, r pricing.Rate) LineItem {
	res := pricing.ApplyMinimum(quantity, r.UnitRate, r.Minimum)
	return LineItem{
		Name:           name,
		Quantity:       pricing.Sanitize(quantity),
		UnitRate:       r.UnitRate,
		Minimum:        r.Minimum,
		Raw:            res.Raw,
		Applied:        res.Applied,
		MinimumApplied: res.MinimumApplied,
	}
}

// flat records a computed amount as a single line without a floor.
func flat(name string, quantity, amount float64) LineItem {
	amount = pricing.Sanitize(amount)
	return LineItem{
		Name:     name,
		Quantity: pricing.Sanitize(quantity),
		Raw:      amount,
		Applied:  amount,
	}
}

// baseValue is the frequency-independent value of the named items, each priced
// at its default rate and minimum. It is the installation base of every service
// that has no dedicated install rate.
func baseValue(in Inputs, cfg pricing.Config, items ...string) float64 {
	total := 0.0
	for _, name := range items {
		total += priced(name, in.Quantity(name), cfg.Rates[name].Default).Applied
	}
	return total
}

// floored lifts a subtotal to a per-visit minimum, reusing the minimum pricer
// with a quantity of one visit. Zero subtotals stay zero.
func floored(c *charge, name string, minimum float64) {
	sub := c.service()
	if sub <= 0 || sub >= minimum {
		return
	}
	res := pricing.ApplyMinimum(1, sub, minimum)
	c.add(LineItem{
		Name:           name,
		Quantity:       1,
		Minimum:        minimum,
		Raw:            0,
		Applied:        res.Applied - sub,
		MinimumApplied: res.MinimumApplied,
	})
}

// baseConfig is the skeleton every compiled-in default starts from.
func baseConfig(allowed []pricing.Frequency, def pricing.Frequency) pricing.Config {
	return pricing.Config{
		Version:            "default",
		Rates:              map[string]pricing.RateTable{},
		Blocks:             map[string]pricing.Block{},
		AllowedFrequencies: allowed,
		DefaultFrequency:   def,
		Install:            pricing.InstallMultipliers{Elevated: 3, Standard: 1},
		Tiers:              pricing.TierMultipliers{Standard: 1, Premium: 1.15},
		Regions: map[pricing.Region]pricing.RegionFees{
			pricing.Inside:  {TripCharge: 8, Parking: 7},
			pricing.Outside: {TripCharge: 10, Parking: 10},
		},
		DefaultRegion: pricing.Inside,
		Fees:          map[string]float64{},
		Contract:      pricing.ContractTerms{MinMonths: 2, MaxMonths: 36, DefaultMonths: 12},
	}
}

func rate(unit, minimum float64) pricing.Rate {
	return pricing.Rate{UnitRate: unit, Minimum: minimum}
}
