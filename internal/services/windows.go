package services

import "github.com/Simplici0/sanquote/internal/pricing"

const Windows ID = "windows"

var windowSizes = []string{"smallWindows", "mediumWindows", "largeWindows"}

// windows prices panes by size class. The install multipliers price the
// first-time clean.
var windows = &Definition{
	ID:     Windows,
	Name:   "Window Cleaning",
	Items:  windowSizes,
	annual: AnnualFromMonthly,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{
			pricing.Weekly,
			pricing.Biweekly,
			pricing.Monthly,
			pricing.Quarterly,
		}, pricing.Weekly)
		cfg.Rates["smallWindows"] = pricing.RateTable{
			Default: rate(1.5, 0),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Monthly:   rate(2, 0),
				pricing.Quarterly: rate(3, 0),
			},
		}
		cfg.Rates["mediumWindows"] = pricing.RateTable{
			Default: rate(3, 0),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Monthly:   rate(4, 0),
				pricing.Quarterly: rate(6, 0),
			},
		}
		cfg.Rates["largeWindows"] = pricing.RateTable{
			Default: rate(7, 0),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Monthly:   rate(8, 0),
				pricing.Quarterly: rate(10, 0),
			},
		}
		cfg.Fees["visitMinimum"] = 50
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		for _, size := range windowSizes {
			c.add(priced(size, in.Quantity(size), cfg.Rate(size, f)))
		}
		floored(&c, "visitMinimum", cfg.Fee("visitMinimum"))

		c.installBase = baseValue(in, cfg, windowSizes...)
		return c
	},
}
