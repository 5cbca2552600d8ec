package services

import "github.com/Simplici0/sanquote/internal/pricing"

const GreaseTrap ID = "grease_trap"

var greaseTrap = &Definition{
	ID:     GreaseTrap,
	Name:   "Grease Trap Service",
	Items:  []string{"traps", "gallons"},
	annual: AnnualFromContract,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{
			pricing.OneTime,
			pricing.Monthly,
			pricing.Bimonthly,
			pricing.Quarterly,
			pricing.Biannual,
		}, pricing.Quarterly)
		cfg.Rates["traps"] = pricing.RateTable{
			Default: rate(125, 125),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.OneTime:  rate(175, 175),
				pricing.Monthly:  rate(110, 110),
				pricing.Biannual: rate(150, 150),
			},
		}
		cfg.Rates["gallons"] = pricing.RateTable{Default: rate(0.5, 0)}
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		traps := in.Quantity("traps")
		c.add(priced("traps", traps, cfg.Rate("traps", f)))
		c.add(priced("gallons", in.Quantity("gallons"), cfg.Rate("gallons", f)))

		c.installBase = baseValue(in, cfg, "traps")
		return c
	},
}
