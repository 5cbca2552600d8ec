package services

import "github.com/Simplici0/sanquote/internal/pricing"

const Janitorial ID = "janitorial"

// janitorial sells service hours with add-on tasks. The hours minimum is the
// minimum billable hours times the hourly rate.
var janitorial = &Definition{
	ID:     Janitorial,
	Name:   "Janitorial Add-ons",
	Items:  []string{"hours", "vacuum", "trash"},
	annual: AnnualFromContract,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{
			pricing.OneTime,
			pricing.Weekly,
			pricing.Biweekly,
			pricing.Monthly,
		}, pricing.Weekly)
		cfg.Rates["hours"] = pricing.RateTable{
			Default: rate(30, 60),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.OneTime: rate(35, 105),
			},
		}
		cfg.Rates["vacuum"] = pricing.RateTable{Default: rate(5, 0)}
		cfg.Rates["trash"] = pricing.RateTable{Default: rate(2, 0)}
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		hours := in.Quantity("hours")
		c.add(priced("hours", hours, cfg.Rate("hours", f)))
		c.add(priced("vacuum", in.Quantity("vacuum"), cfg.Rate("vacuum", f)))
		c.add(priced("trash", in.Quantity("trash"), cfg.Rate("trash", f)))

		c.installBase = baseValue(in, cfg, "hours")
		return c
	},
}
