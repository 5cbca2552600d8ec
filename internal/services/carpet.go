package services

import "github.com/Simplici0/sanquote/internal/pricing"

const Carpet ID = "carpet"

var carpet = &Definition{
	ID:     Carpet,
	Name:   "Carpet Cleaning",
	Items:  []string{"area"},
	annual: AnnualFromContract,
	defaults: func() pricing.Config {
		cfg := baseConfig([]pricing.Frequency{
			pricing.OneTime,
			pricing.Monthly,
			pricing.Bimonthly,
			pricing.Quarterly,
			pricing.Biannual,
			pricing.Annual,
		}, pricing.Quarterly)
		cfg.Blocks["area"] = pricing.Block{Unit: 500, FirstRate: 250, AdditionalRate: 125}
		cfg.Fees["visitMinimum"] = 250
		return cfg
	},
	price: func(in Inputs, cfg pricing.Config, f pricing.Frequency) charge {
		var c charge
		area := in.Quantity("area")
		block := pricing.BlockPrice(area, cfg.Block("area"), in.ExactArea)
		if area > 0 {
			c.add(flat("area", area, block))
		}
		floored(&c, "visitMinimum", cfg.Fee("visitMinimum"))

		c.installBase = block
		return c
	},
}
