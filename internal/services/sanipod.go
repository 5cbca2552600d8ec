package services

import "github.com/Simplici0/sanquote/internal/pricing"

const SaniPod ID = "sanipod"

var saniPod = &Definition{
	ID:     SaniPod,
	Name:   "Feminine Hygiene Units",
	Items:  []string{"pods", "extraBags"},
	annual: AnnualFromMonthly,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{pricing.Weekly, pricing.Biweekly, pricing.Monthly}, pricing.Weekly)
		cfg.Rates["pods"] = pricing.RateTable{
			Default: rate(3, 8),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Biweekly: rate(4, 10),
				pricing.Monthly:  rate(8, 16),
			},
		}
		cfg.Rates["extraBags"] = pricing.RateTable{Default: rate(2, 0)}
		cfg.Fees["installPerPod"] = 25
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		pods := in.Quantity("pods")
		c.add(priced("pods", pods, cfg.Rate("pods", f)))
		c.add(priced("extraBags", in.Quantity("extraBags"), cfg.Rate("extraBags", f)))

		c.installBase = pods * cfg.Fee("installPerPod")
		return c
	},
}
