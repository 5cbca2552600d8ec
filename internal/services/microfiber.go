package services

import "github.com/Simplici0/sanquote/internal/pricing"

const Microfiber ID = "microfiber"

var microfiber = &Definition{
	ID:     Microfiber,
	Name:   "Microfiber Mopping",
	Items:  []string{"bathrooms", "area"},
	annual: AnnualFromMonthly,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{pricing.Weekly, pricing.Biweekly, pricing.Monthly}, pricing.Weekly)
		cfg.Rates["bathrooms"] = pricing.RateTable{
			Default: rate(10, 40),
			ByFrequency: map[pricing.Frequency]pricing.Rate{
				pricing.Monthly: rate(14, 50),
			},
		}
		cfg.Blocks["area"] = pricing.Block{Unit: 400, FirstRate: 40, AdditionalRate: 10}
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		bathrooms := in.Quantity("bathrooms")
		area := in.Quantity("area")
		c.add(priced("bathrooms", bathrooms, cfg.Rate("bathrooms", f)))
		if area > 0 {
			c.add(flat("area", area, pricing.BlockPrice(area, cfg.Block("area"), in.ExactArea)))
		}

		c.installBase = baseValue(in, cfg, "bathrooms") +
			pricing.BlockPrice(area, cfg.Block("area"), in.ExactArea)
		return c
	},
}
