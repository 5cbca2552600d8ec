package services

import "github.com/Simplici0/sanquote/internal/pricing"

const DrainFoam ID = "drain_foam"

var drainFoam = &Definition{
	ID:     DrainFoam,
	Name:   "Drain Foaming",
	Items:  []string{"drains", "largeDrains"},
	annual: AnnualFromMonthly,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{pricing.Weekly, pricing.Biweekly, pricing.Monthly}, pricing.Weekly)
		cfg.Rates["drains"] = pricing.RateTable{
			Default: rate(10, 40),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Biweekly: rate(12, 45),
				pricing.Monthly:  rate(15, 50),
			},
		}
		cfg.Rates["largeDrains"] = pricing.RateTable{
			Default: rate(18, 0),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Monthly: rate(25, 0),
			},
		}
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		drains := in.Quantity("drains")
		large := in.Quantity("largeDrains")
		c.add(priced("drains", drains, cfg.Rate("drains", f)))
		c.add(priced("largeDrains", large, cfg.Rate("largeDrains", f)))

		c.installBase = baseValue(in, cfg, "drains", "largeDrains")
		return c
	},
}
