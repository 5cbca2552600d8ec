package services

import "github.com/Simplici0/sanquote/internal/pricing"

const Restroom ID = "restroom"

var restroom = &Definition{
	ID:     Restroom,
	Name:   "Restroom Sanitation",
	Items:  []string{"fixtures", "airFresheners"},
	annual: AnnualFromMonthly,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{pricing.Weekly, pricing.Biweekly, pricing.Monthly}, pricing.Weekly)
		cfg.Rates["fixtures"] = pricing.RateTable{
			Default: rate(7, 40),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Biweekly: rate(8, 45),
				pricing.Monthly:  rate(10, 60),
			},
		}
		cfg.Rates["airFresheners"] = pricing.RateTable{Default: rate(3, 0)}
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		fixtures := in.Quantity("fixtures")
		c.add(priced("fixtures", fixtures, cfg.Rate("fixtures", f)))
		c.add(priced("airFresheners", in.Quantity("airFresheners"), cfg.Rate("airFresheners", f)))

		c.installBase = baseValue(in, cfg, "fixtures")
		return c
	},
}
